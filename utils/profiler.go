package utils

import (
	"github.com/vibecheck/vibecheck/utils/dotenv"
	. "github.com/vibecheck/vibecheck/utils/flag"
	Logger "github.com/vibecheck/vibecheck/utils/log"
	"gopkg.in/DataDog/dd-trace-go.v1/profiler"
)

func init() {
	// Datadog profiler, only against the real agent in prod
	if !dotenv.IsProdEnv() {
		return
	}

	if err := profiler.Start(
		profiler.WithService(ServiceName),
		profiler.WithEnv("production"),
		profiler.WithProfileTypes(
			profiler.CPUProfile,
			profiler.HeapProfile,
			// The profiles below are disabled by
			// default to keep overhead low, but
			// can be enabled as needed.
			// profiler.BlockProfile,
			// profiler.MutexProfile,
			// profiler.GoroutineProfile,
		),
	); err != nil {
		Logger.Log.Fatal(err)
	}
}

// CloseProfiler stops the profiler, OK to be closed multiple times
func CloseProfiler() {
	// Datadog profiler
	profiler.Stop()
}
