package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields are attached to every record logged with a context that carries them.
type LogFields struct {
	RequestID string
	Endpoint  string
	Provider  string
}

// WithLogFields enriches ctx with fields. Non-empty values in fields replace
// the ones already present.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	merged := GetLogFields(ctx)
	if fields.RequestID != "" {
		merged.RequestID = fields.RequestID
	}
	if fields.Endpoint != "" {
		merged.Endpoint = fields.Endpoint
	}
	if fields.Provider != "" {
		merged.Provider = fields.Provider
	}
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields returns the fields carried by ctx, or the zero value.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

// RequestID is shorthand for GetLogFields(ctx).RequestID.
func RequestID(ctx context.Context) string {
	return GetLogFields(ctx).RequestID
}
