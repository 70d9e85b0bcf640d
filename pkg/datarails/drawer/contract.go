package drawer

import (
	"github.com/askiada/go-datarails/pkg/datarails/measure"
)

// Drawer is an interface that defines the methods for drawing a run.
type Drawer interface {
	// AddStep adds a node to the drawing. Nodes sharing a group are kept aligned.
	AddStep(name, group string) error
	// AddLink adds a link between two nodes.
	AddLink(parentName, childName string) error
	// SetLabel sets the external label of a node.
	SetLabel(name, label string) error
	// AddMeasure labels nodes with their measured duration and colours the links
	// leading to them.
	AddMeasure(measure measure.Measure) error
	// Draw writes the drawing.
	Draw() error
}
