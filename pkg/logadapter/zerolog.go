package logadapter

import (
	"github.com/rs/zerolog"

	"github.com/starline-go/starline/pkg/starline"
)

type zerologLogger struct {
	logger zerolog.Logger
}

// Zerolog returns a starline.Logger writing to logger.
func Zerolog(logger zerolog.Logger) starline.Logger {
	return zerologLogger{logger: logger}
}

func (l zerologLogger) LogError(message string, context map[string]interface{}) bool {
	l.logger.Error().Fields(context).Msg(message)
	return true
}
