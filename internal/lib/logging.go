package lib

import (
	"bytes"
	"context"
	"sync"

	"github.com/bombsimon/logrusr/v4"
	"github.com/go-logr/logr"
	log "github.com/sirupsen/logrus"

	"github.com/seekbug-project/seek-bug/lit/artifacts"
)

// LogFilename is the artifact the library log is written to.
const LogFilename = "seekbug-lit.log"

// LogThroughArtifactWriterIfSet reconfigures the standard logger to buffer
// its output when an artifact writer is configured in ctx. The returned
// flush restores the logger's previous output, level and formatter, then
// writes the buffered log through that writer. Without a writer the logger
// is left alone and flush does nothing.
func LogThroughArtifactWriterIfSet(ctx context.Context) (flush func() error) {
	w := artifacts.WriterFromContext(ctx)

	if w == nil {
		return func() error { return nil }
	}

	std := log.StandardLogger()
	prevOut, prevLevel, prevFormatter := std.Out, std.GetLevel(), std.Formatter

	log.SetLevel(log.TraceLevel)
	log.SetFormatter(&log.TextFormatter{})
	b := bytes.NewBufferString("")
	log.SetOutput(b)

	var once sync.Once
	return func() error {
		var err error
		once.Do(func() {
			log.SetOutput(prevOut)
			log.SetLevel(prevLevel)
			log.SetFormatter(prevFormatter)
			_, err = w.WriteFile(LogFilename, b)
		})
		return err
	}
}

// ContextWithLogrus stores a logr.Logger backed by l in ctx, so library
// packages that log through logr end up in the same stream as the CLI.
func ContextWithLogrus(ctx context.Context, l *log.Logger) context.Context {
	return logr.NewContext(ctx, logrusr.New(l))
}

type contextKey string

var executionEnvIsCLI = contextKey("IsCLI")

func CallerIsCLI(ctx context.Context) bool {
	val := ctx.Value(executionEnvIsCLI)
	switch b := val.(type) {
	case bool:
		return b
	default:
		return false
	}
}

// SetCallerToCLI marks ctx as originating from the seekbug-lit CLI. The
// CLI owns stdout, so library paths only print there when this is set.
func SetCallerToCLI(ctx context.Context) context.Context {
	return context.WithValue(ctx, executionEnvIsCLI, true)
}
