// Package logadapter connects a starline.Client to the structured logger of its host
// application. Each adapter writes one error-level entry per report, with the report's context
// attached as fields.
//
//	client := starline.NewClient(config, logadapter.Zerolog(log.Logger))
package logadapter
