package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRunID      = "run_id"
	FieldFile       = "file"
	FieldExportPath = "export_path"
	FieldDateFrom   = "date_from"
	FieldDateTo     = "date_to"
	FieldProcessed  = "rows_processed"
	FieldSkipped    = "rows_skipped"
	FieldCategories = "categories"
	FieldTotal      = "total"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldErrorType  = "error_type"
	FieldOperation  = "operation"
	FieldExchange   = "exchange"
	FieldRoutingKey = "routing_key"
)

// Components defines standard component names
const (
	ComponentApp      = "app"
	ComponentAnalyzer = "analyzer"
	ComponentReport   = "report"
	ComponentAMQP     = "amqp"
	ComponentService  = "service"
)

// Operations defines standard operation names
const (
	OpAnalyze  = "analyze"
	OpPrint    = "print"
	OpExport   = "export"
	OpPublish  = "publish"
	OpValidate = "validate"
)

// LogFields provides a builder pattern for structured log fields
type LogFields map[string]any

// NewFields creates a new LogFields instance
func NewFields() LogFields {
	return make(LogFields)
}

// WithComponent adds component field
func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

// WithRunID adds run ID field
func (f LogFields) WithRunID(runID string) LogFields {
	f[FieldRunID] = runID
	return f
}

// WithError adds error field
func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

// WithErrorType adds the error category, if known
func (f LogFields) WithErrorType(errType string) LogFields {
	if errType != "" {
		f[FieldErrorType] = errType
	}
	return f
}

// WithOperation adds operation field
func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithCounts adds the processed and skipped row counts
func (f LogFields) WithCounts(processed, skipped int) LogFields {
	f[FieldProcessed] = processed
	f[FieldSkipped] = skipped
	return f
}

// ToSlice converts LogFields to a slice for slog
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
