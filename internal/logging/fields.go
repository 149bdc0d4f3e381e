package logging

const (
	// FieldComponent names the emitting package; the console handler prints it as a prefix.
	FieldComponent = "component"
	// FieldEventType is a stable machine-readable event name.
	FieldEventType = "event_type"
	// FieldErrorHint tells the operator what to check next.
	FieldErrorHint = "error_hint"
	// FieldImpact describes the user-facing consequence of a warning.
	FieldImpact = "impact"
	// FieldRunID identifies one conversion run.
	FieldRunID = "run_id"
	FieldCode  = "code"
	FieldPath  = "path"
	FieldLine  = "line"
)
