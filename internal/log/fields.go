package log

// Field names shared by the workers' structured records.
const (
	FieldComponent  = "component"
	FieldError      = "error"
	FieldOperation  = "operation"
	FieldUserID     = "user_id"
	FieldCycleStart = "cycle_start"
	FieldGoalID     = "goal_id"
	FieldCategory   = "category"
	FieldStatus     = "status"
)

// ComponentWorker names the periodic budget worker.
const ComponentWorker = "worker"

// Operation names.
const (
	OpStartup  = "startup"
	OpShutdown = "shutdown"
	OpCheck    = "check"
)

// LogFields accumulates key/value pairs for one record.
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithError adds the error field; a nil error adds nothing.
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithBudget adds the fields identifying one budget goal evaluation.
func (f LogFields) WithBudget(goalID, category, status string) LogFields {
	f[FieldGoalID] = goalID
	f[FieldCategory] = category
	f[FieldStatus] = status
	return f
}

// ToSlice flattens the fields into the alternating key/value form slog takes.
func (f LogFields) ToSlice() []any {
	out := make([]any, 0, len(f)*2)
	for k, v := range f {
		out = append(out, k, v)
	}
	return out
}
