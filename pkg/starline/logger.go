package starline

//go:generate mockgen -destination=../../mocks/logger.go -package=mocks github.com/starline-go/starline/pkg/starline Logger

// Logger receives a report for every operational failure of a [Client].
//
// The context always holds the "method" key naming the failed operation. Depending on the failure
// it also holds "response_object" (the decoded JSON body), "headers_object" (the response headers)
// or "content" (the raw body). The returned value is ignored by the Client.
//
// Implementations must be safe for concurrent use if the Client is.
type Logger interface {
	LogError(message string, context map[string]interface{}) bool
}

// LoggerFunc adapts an ordinary function to the Logger interface.
type LoggerFunc func(message string, context map[string]interface{}) bool

func (f LoggerFunc) LogError(message string, context map[string]interface{}) bool {
	return f(message, context)
}

// NopLogger discards every report. It is used when NewClient receives a nil Logger.
type NopLogger struct{}

func (NopLogger) LogError(string, map[string]interface{}) bool {
	return false
}
