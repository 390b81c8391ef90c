package temporal

import (
	"go.temporal.io/sdk/log"
	"go.uber.org/zap"
)

// zapAdapter bridges the SDK's keyval logger onto the service's zap logger so
// Temporal client and worker output lands in the same stream as everything else
type zapAdapter struct {
	logger *zap.Logger
}

// NewZapLoggerAdapter wraps a zap logger for use as client.Options.Logger
func NewZapLoggerAdapter(logger *zap.Logger) log.Logger {
	return &zapAdapter{logger: logger}
}

func (a *zapAdapter) Debug(msg string, keyvals ...interface{}) {
	a.logger.Debug(msg, keyvalsToFields(keyvals...)...)
}

func (a *zapAdapter) Info(msg string, keyvals ...interface{}) {
	a.logger.Info(msg, keyvalsToFields(keyvals...)...)
}

func (a *zapAdapter) Warn(msg string, keyvals ...interface{}) {
	a.logger.Warn(msg, keyvalsToFields(keyvals...)...)
}

func (a *zapAdapter) Error(msg string, keyvals ...interface{}) {
	a.logger.Error(msg, keyvalsToFields(keyvals...)...)
}

// keyvalsToFields converts the SDK's key1, val1, key2, val2 form into zap
// fields. A trailing key without a value and non-string keys are dropped.
func keyvalsToFields(keyvals ...interface{}) []zap.Field {
	if len(keyvals)%2 != 0 {
		keyvals = keyvals[:len(keyvals)-1]
	}
	fields := make([]zap.Field, 0, len(keyvals)/2)
	for i := 0; i < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		fields = append(fields, zap.Any(key, keyvals[i+1]))
	}
	return fields
}
