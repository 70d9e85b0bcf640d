package datarails

import (
	"strings"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
)

const (
	stepVertexPrefix    = "step:"
	datasetVertexPrefix = "dataset:"
)

// StepVertex and DatasetVertex name the vertices of a lineage graph.
func StepVertex(name string) string { return stepVertexPrefix + name }

func DatasetVertex(name string) string { return datasetVertexPrefix + name }

// Validate checks a step list before it runs:
//   - the list is not empty and step names are set,
//   - every step can be instantiated and has at least one action,
//   - action names are set and unique within their step, and every action has a function,
//   - every dataset a DatasetDeclarer reads is written by an earlier step or seeded.
//
// A step may appear more than once. Reads are only checked up to the first step
// that does not implement DatasetDeclarer: what it writes is unknown, so later
// reads are left to the run.
//
// Steps are instantiated without being bound, so Actions and Datasets must not
// touch the DataBox or Context. All problems are reported in a single ConfigError.
func Validate(defs []Definition, seeded ...string) error {
	if len(defs) == 0 {
		return configErrorf("", "no steps")
	}

	var errs []error

	probes := make([]Step, len(defs))

	for i, def := range defs {
		if def.Name == "" {
			errs = append(errs, configErrorf("", "step %d has no name", i))
		}

		step, err := instantiate(def)
		if err != nil {
			errs = append(errs, err)

			continue
		}
		probes[i] = step

		errs = append(errs, validateActions(def.Name, step.Actions())...)
	}

	if len(errs) > 0 {
		return joinConfigErrors(errs)
	}

	lineage, err := lineageOf(defs, probes)
	if err != nil {
		return errors.Wrap(err, "unable to build dataset lineage")
	}

	return joinConfigErrors(checkLineage(lineage, defs, probes, seeded))
}

// Lineage builds the dataset flow of the steps implementing DatasetDeclarer: an
// edge goes from each step to the datasets it writes and from each dataset to the
// steps reading it.
func Lineage(defs []Definition) (graph.Graph[string, string], error) {
	probes := make([]Step, len(defs))
	for i, def := range defs {
		step, err := instantiate(def)
		if err != nil {
			return nil, err
		}
		probes[i] = step
	}

	return lineageOf(defs, probes)
}

func lineageOf(defs []Definition, probes []Step) (graph.Graph[string, string], error) {
	g := graph.New(graph.StringHash, graph.Directed())

	for i, def := range defs {
		declarer, ok := probes[i].(DatasetDeclarer)
		if !ok {
			continue
		}

		stepVertex := StepVertex(def.Name)
		err := addVertex(g, stepVertex, "step")
		if err != nil {
			return nil, err
		}

		reads, writes := declarer.Datasets()
		for _, name := range reads {
			err = addLink(g, DatasetVertex(name), stepVertex)
			if err != nil {
				return nil, err
			}
		}
		for _, name := range writes {
			err = addLink(g, stepVertex, DatasetVertex(name))
			if err != nil {
				return nil, err
			}
		}
	}

	return g, nil
}

func checkLineage(g graph.Graph[string, string], defs []Definition, probes []Step, seeded []string) []error {
	predecessors, err := g.PredecessorMap()
	if err != nil {
		return []error{errors.Wrap(err, "unable to read dataset lineage")}
	}

	// first position of each step, a repeated step writes from there on
	position := make(map[string]int, len(defs))
	for i, def := range defs {
		if _, ok := position[StepVertex(def.Name)]; !ok {
			position[StepVertex(def.Name)] = i
		}
	}

	seededSet := make(map[string]struct{}, len(seeded))
	for _, name := range seeded {
		seededSet[name] = struct{}{}
	}

	var errs []error
	for i, def := range defs {
		declarer, ok := probes[i].(DatasetDeclarer)
		if !ok {
			break
		}

		reads, _ := declarer.Datasets()
		for _, name := range reads {
			if _, ok := seededSet[name]; ok {
				continue
			}
			if !writtenBefore(predecessors[DatasetVertex(name)], position, i) {
				errs = append(errs, configErrorf(def.Name, "reads dataset %q before any step writes it", name))
			}
		}
	}

	return errs
}

func writtenBefore(writers map[string]graph.Edge[string], position map[string]int, idx int) bool {
	for writer := range writers {
		if pos, ok := position[writer]; ok && pos < idx {
			return true
		}
	}

	return false
}

func validateActions(stepName string, actions []Action) []error {
	if len(actions) == 0 {
		return []error{configErrorf(stepName, "no actions")}
	}

	var errs []error
	seen := make(map[string]struct{}, len(actions))
	for i, action := range actions {
		switch {
		case action.Name == "":
			errs = append(errs, configErrorf(stepName, "action %d has no name", i))
		case action.Fn == nil:
			errs = append(errs, configErrorf(stepName, "action %q has no function", action.Name))
		}
		if _, ok := seen[action.Name]; ok && action.Name != "" {
			errs = append(errs, configErrorf(stepName, "duplicate action %q", action.Name))
		}
		seen[action.Name] = struct{}{}
	}

	return errs
}

func addVertex(g graph.Graph[string, string], name, kind string) error {
	err := g.AddVertex(name, graph.VertexAttribute("kind", kind))
	if err != nil && !errors.Is(err, graph.ErrVertexAlreadyExists) {
		return errors.Wrapf(err, "unable to add vertex %s", name)
	}

	return nil
}

func addLink(g graph.Graph[string, string], from, to string) error {
	err := addVertex(g, from, vertexKind(from))
	if err != nil {
		return err
	}

	err = addVertex(g, to, vertexKind(to))
	if err != nil {
		return err
	}

	err = g.AddEdge(from, to)
	if err != nil && !errors.Is(err, graph.ErrEdgeAlreadyExists) {
		return errors.Wrapf(err, "unable to add edge from %s to %s", from, to)
	}

	return nil
}

func vertexKind(vertex string) string {
	if strings.HasPrefix(vertex, stepVertexPrefix) {
		return "step"
	}

	return "dataset"
}
