package drawer

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/go-datarails/pkg/datarails/measure"
)

// DOTDrawer writes a Graphviz DOT file of the run.
type DOTDrawer struct {
	graph       graph.Graph[string, string]
	dotFileName string
}

// NewDOTDrawer creates a new DOT drawer writing to dotFileName.
func NewDOTDrawer(dotFileName string) *DOTDrawer {
	return &DOTDrawer{
		dotFileName: dotFileName,
		graph:       graph.New(graph.StringHash, graph.Directed()),
	}
}

// AddStep adds a node. Adding an existing node is a no-op.
func (d *DOTDrawer) AddStep(name, group string) error {
	opts := []func(*graph.VertexProperties){graph.VertexAttribute("shape", "box")}
	if group != "" {
		opts = append(opts, graph.VertexAttribute("group", group))
	}

	err := d.graph.AddVertex(name, opts...)
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

// AddLink adds a link between two nodes. Adding an existing link is a no-op.
func (d *DOTDrawer) AddLink(parentName, childName string) error {
	err := d.graph.AddEdge(parentName, childName)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childName)
	}

	return nil
}

// SetLabel sets the xlabel attribute of a node.
func (d *DOTDrawer) SetLabel(name, label string) error {
	_, properties, err := d.graph.VertexWithProperties(name)
	if err != nil {
		return errors.Wrapf(err, "unable to get vertex %s properties", name)
	}

	properties.Attributes["xlabel"] = label

	return nil
}

// Draw writes the DOT file, creating its directory if needed.
func (d *DOTDrawer) Draw() (err error) {
	err = os.MkdirAll(filepath.Dir(d.dotFileName), 0o755)
	if err != nil {
		return errors.Wrapf(err, "unable to create directory for %s", d.dotFileName)
	}

	file, err := os.Create(d.dotFileName)
	if err != nil {
		return errors.Wrapf(err, "unable to create file %s", d.dotFileName)
	}
	defer func() {
		closeErr := file.Close()
		if err == nil && closeErr != nil {
			err = errors.Wrapf(closeErr, "unable to close file %s", d.dotFileName)
		}
	}()

	err = draw.DOT(d.graph, file, draw.GraphAttribute("rankdir", "LR"))
	if err != nil {
		return errors.Wrapf(err, "unable to write dot file %s", d.dotFileName)
	}

	return nil
}

const maxRGB = 240

// AddMeasure labels every drawn node with its average duration, and its total
// duration when set. Links into a node are coloured from blue for the fastest
// node to red for the slowest.
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	metrics := make(map[string]measure.Metric)
	for name, mt := range msr.AllMetrics() {
		_, err := d.graph.Vertex(name)
		if err != nil {
			if errors.Is(err, graph.ErrVertexNotFound) {
				continue
			}

			return errors.Wrapf(err, "unable to get vertex %s", name)
		}
		metrics[name] = mt
	}

	palette, err := durationPalette(metrics)
	if err != nil {
		return err
	}

	predecessors, err := d.graph.PredecessorMap()
	if err != nil {
		return errors.Wrap(err, "unable to get predecessors")
	}

	for name, mt := range metrics {
		label := ""
		avg := mt.AVGDuration()
		if avg != 0 {
			label = avg.String()
		}
		if total := mt.GetTotalDuration(); total > 0 {
			if label != "" {
				label += ", "
			}
			label += "total: " + total.String()
		}
		if label != "" {
			err = d.SetLabel(name, label)
			if err != nil {
				return err
			}
		}

		if avg == 0 {
			continue
		}

		for parent := range predecessors[name] {
			err = d.graph.UpdateEdge(parent, name,
				graph.EdgeAttribute("label", avg.String()),
				graph.EdgeAttribute("fontcolor", "blue"),
				graph.EdgeAttribute("color", palette[avg]),
			)
			if err != nil {
				return errors.Wrapf(err, "unable to update edge from %s to %s", parent, name)
			}
		}
	}

	return nil
}

func durationPalette(metrics map[string]measure.Metric) (map[time.Duration]string, error) {
	palette := make(map[time.Duration]string)
	sorted := []time.Duration{}

	for _, mt := range metrics {
		avg := mt.AVGDuration()
		if avg == 0 {
			continue
		}
		if _, ok := palette[avg]; ok {
			continue
		}
		palette[avg] = ""
		sorted = append(sorted, avg)
	}

	if len(sorted) == 0 {
		return palette, nil
	}

	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] > sorted[j]
	})

	maxValue := sorted[0]
	minValue := sorted[len(sorted)-1]

	for _, curr := range sorted {
		fraction := 1.0
		if maxValue > minValue {
			fraction = float64(curr-minValue) / float64(maxValue-minValue)
		}

		red := maxRGB * fraction
		blue := maxRGB - red

		colour, err := colors.RGB(uint8(red), 0, uint8(blue)) //nolint
		if err != nil {
			return nil, errors.Wrap(err, "unable to get colour")
		}

		palette[curr] = colour.ToHEX().String()
	}

	return palette, nil
}

var _ Drawer = (*DOTDrawer)(nil)
