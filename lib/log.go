package lib

import (
	"bytes"
	"io"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// JsonLogFormatter renders gin request logs as single line JSON, in the same shape as the zerolog output.
func JsonLogFormatter(params gin.LogFormatterParams) string {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	ev := logger.Log().
		Str("time", params.TimeStamp.UTC().Format("2006-01-02T15:04:05.999")).
		Int("status", params.StatusCode).
		Str("latency", params.Latency.String()).
		Str("client", params.ClientIP).
		Str("method", params.Method).
		Str("path", params.Path).
		Int("bytes", params.BodySize)
	if params.ErrorMessage != "" {
		ev = ev.Str("error", params.ErrorMessage)
	}
	if len(params.Keys) > 0 {
		ev = ev.Interface("context", params.Keys)
	}
	ev.Send()
	return buf.String()
}

// UseConsoleLogger points the global zerolog logger at a human readable writer.
func UseConsoleLogger(w io.Writer) {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).With().Timestamp().Logger()
}
