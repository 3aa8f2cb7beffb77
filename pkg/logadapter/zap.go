package logadapter

import (
	"sort"

	"go.uber.org/zap"

	"github.com/starline-go/starline/pkg/starline"
)

type zapLogger struct {
	logger *zap.Logger
}

// Zap returns a starline.Logger writing to logger. A nil logger discards reports.
func Zap(logger *zap.Logger) starline.Logger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return zapLogger{logger: logger}
}

func (l zapLogger) LogError(message string, context map[string]interface{}) bool {
	keys := make([]string, 0, len(context))
	for key := range context {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	fields := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		fields = append(fields, zap.Any(key, context[key]))
	}
	l.logger.Error(message, fields...)
	return true
}
