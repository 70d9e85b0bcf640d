package model

// StepInfo describes a step of a run.
type StepInfo struct {
	Name string
	// Actions holds the action names in execution order.
	Actions []string
	Index   int
}

// ActionInfo describes an action of a step.
type ActionInfo struct {
	Name  string
	Index int
}

// StartStep and EndStep are the pseudo-steps framing a run.
var (
	StartStep = &StepInfo{Name: "start"}
	EndStep   = &StepInfo{Name: "end"}
)

// ActionKey names an action uniquely within a run.
func ActionKey(stepName, actionName string) string {
	return stepName + "." + actionName
}
