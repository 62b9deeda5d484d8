package seekbug

import (
	"context"
	"errors"
	"io"

	"github.com/spf13/afero"

	"github.com/seekbug-project/seek-bug/internal/debugger"
	"github.com/seekbug-project/seek-bug/x/plugin"
)

var ErrProgramEmpty = errors.New("program is empty")

// Session is an interactive SeekBug debugging session for one program.
type Session struct {
	ctx     context.Context
	program string
	opts    plugin.Options

	aiOptional bool
	aiErr      error

	target *debugger.Target
	interp *debugger.Interpreter
}

type SessionOption = func(*Session)

// NewSession prepares a session debugging program. Nothing is validated
// until Start.
func NewSession(program string, opts ...SessionOption) *Session {
	s := &Session{
		ctx:     context.Background(),
		program: program,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start creates the target and loads the SeekBug commands.
func (s *Session) Start() error {
	if s.program == "" {
		return ErrProgramEmpty
	}

	fs := s.opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	target, err := debugger.CreateTarget(fs, s.program)
	if err != nil {
		return err
	}

	interp := debugger.NewInterpreter()
	if err := plugin.Initialize(s.ctx, interp, s.opts); err != nil {
		if !s.aiOptional {
			return err
		}
		s.aiErr = err
	}

	s.target = target
	s.interp = interp
	return nil
}

// Target returns the program being debugged, or nil before Start.
func (s *Session) Target() *debugger.Target {
	return s.target
}

// AIError returns why the AI commands did not load, when the session was
// started with WithAIOptional.
func (s *Session) AIError() error {
	return s.aiErr
}

// HandleCommand runs one command line in the session.
func (s *Session) HandleCommand(line string) (*debugger.ReturnObject, error) {
	if s.interp == nil {
		return nil, errors.New("session is not started")
	}
	return s.interp.HandleCommand(s.ctx, line), nil
}

// Run drives the interactive prompt until in is exhausted or the user quits.
func (s *Session) Run(in io.Reader, out io.Writer) error {
	if s.interp == nil {
		return errors.New("session is not started")
	}
	return s.interp.Run(s.ctx, in, out)
}

// WithSessionContext adds the provided context to the session.
func WithSessionContext(ctx context.Context) SessionOption {
	return func(s *Session) {
		s.ctx = ctx
	}
}

// WithPluginOptions sets the filesystem, environment lookup and model used
// to load the SeekBug commands.
func WithPluginOptions(opts plugin.Options) SessionOption {
	return func(s *Session) {
		s.opts = opts
	}
}

// WithAIOptional lets Start succeed when the AI commands cannot be loaded.
// The failure is available from AIError.
func WithAIOptional() SessionOption {
	return func(s *Session) {
		s.aiOptional = true
	}
}
