package logadapter

import (
	"github.com/sirupsen/logrus"

	"github.com/starline-go/starline/pkg/starline"
)

type logrusLogger struct {
	logger logrus.FieldLogger
}

// Logrus returns a starline.Logger writing to logger, which may be a *logrus.Logger or a
// *logrus.Entry carrying request fields.
func Logrus(logger logrus.FieldLogger) starline.Logger {
	return logrusLogger{logger: logger}
}

func (l logrusLogger) LogError(message string, context map[string]interface{}) bool {
	l.logger.WithFields(logrus.Fields(context)).Error(message)
	return true
}
