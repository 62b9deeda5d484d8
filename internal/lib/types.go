package lib

import (
	"context"
	"io"

	"github.com/seekbug-project/seek-bug/lit"
)

// ResultWriter opens the file the formatted suite is written to.
type ResultWriter interface {
	OpenFile(name string) (io.WriteCloser, error)
	io.WriteCloser
}

// SiteEmitter publishes the configured suite for lit to consume.
type SiteEmitter interface {
	Emit(context.Context, lit.Suite) error
}
