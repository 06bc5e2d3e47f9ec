package domain

type AttributeDiff struct {
	AttributeName string
	ExpectedValue any
	ActualValue   any
	Details       string
}

type ReconcileResult struct {
	MountPoint  string
	Changed     bool
	Written     bool
	CheckMode   bool
	Before      CurrentState
	After       map[string]any
	Differences []AttributeDiff
}
