package logger

import (
	"strings"

	"go.uber.org/zap"
)

const (
	// FieldBuyer is the structured log field key for the buyer identity.
	FieldBuyer = "buyer_id"
	// FieldMethodology is the structured log field key for the scoring path
	// that produced a response (ml, hybrid or heuristic).
	FieldMethodology = "methodology"
)

// StringField describes a string-valued structured logging field.
type StringField struct {
	Key   string
	Value string
}

// StringFields converts the provided key/value pairs into zap fields, trimming
// whitespace and omitting entries with empty keys or values.
func StringFields(fields ...StringField) []zap.Field {
	result := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		key := strings.TrimSpace(field.Key)
		if key == "" {
			continue
		}

		value := strings.TrimSpace(field.Value)
		if value == "" {
			continue
		}

		result = append(result, zap.String(key, value))
	}

	return result
}

// WithFields safely attaches the provided fields to the logger.
// If the logger is nil or no fields are supplied, the input logger is returned
// unchanged, defaulting to a no-op logger when nil.
func WithFields(logger *zap.Logger, fields ...zap.Field) *zap.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}

	if len(fields) == 0 {
		return logger
	}

	return logger.With(fields...)
}

// MatchFields returns the standard zap fields that describe one match run.
// Empty values are ignored to keep log entries compact.
func MatchFields(buyerID, methodology string) []zap.Field {
	return StringFields(
		StringField{Key: FieldBuyer, Value: buyerID},
		StringField{Key: FieldMethodology, Value: methodology},
	)
}

// WithMatchFields attaches the common match-run fields to the provided
// logger, creating a no-op logger when nil to avoid panics.
func WithMatchFields(logger *zap.Logger, buyerID, methodology string) *zap.Logger {
	return WithFields(logger, MatchFields(buyerID, methodology)...)
}
