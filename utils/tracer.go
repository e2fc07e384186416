package utils

import (
	"github.com/vibecheck/vibecheck/utils/dotenv"
	. "github.com/vibecheck/vibecheck/utils/flag"
	Logger "github.com/vibecheck/vibecheck/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"
)

func init() {
	// Datadog tracer, only against the real agent in prod
	if !dotenv.IsProdEnv() {
		return
	}

	tracer.Start(
		tracer.WithService(ServiceName),
		tracer.WithEnv("production"),
	)

	Logger.Log.Info("tracer initialized")
}

// CloseTracer stops the tracer, OK to be closed multiple times
func CloseTracer() {
	// Datadog tracer
	tracer.Stop()
}
