// Command seek-bug starts an interactive SeekBug session for a program.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bombsimon/logrusr/v4"
	"github.com/fatih/color"
	"github.com/go-logr/logr"
	log "github.com/sirupsen/logrus"

	seekbug "github.com/seekbug-project/seek-bug"
	"github.com/seekbug-project/seek-bug/internal/ai"
	"github.com/seekbug-project/seek-bug/x/plugin"
)

func main() {
	l := log.New()
	l.SetOutput(os.Stderr)
	if os.Getenv(ai.DebugEnv) == "1" {
		l.SetLevel(log.DebugLevel)
	} else {
		l.SetLevel(log.WarnLevel)
	}
	ctx := logr.NewContext(context.Background(), logrusr.New(l))

	os.Exit(run(ctx, os.Args, os.Stdin, os.Stdout, os.Stderr, plugin.Options{}))
}

// run is the whole program. It returns the process exit code.
func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer, opts plugin.Options) int {
	highlight := color.New(color.FgGreen)
	highlight.Fprintln(out, "=== SeekBug - Modern, Portable and Deep Debugger")

	if len(args) < 2 {
		fmt.Fprintf(errOut, "Usage: %s <program to debug> \n", filepath.Base(args[0]))
		return 1
	}
	program := args[1]

	session := seekbug.NewSession(program,
		seekbug.WithSessionContext(ctx),
		seekbug.WithPluginOptions(opts),
		seekbug.WithAIOptional(),
	)
	if err := session.Start(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(errOut, "error: ")
		fmt.Fprintf(errOut, "Failed to create target for program: %s: %v\n", program, err)
		return 1
	}
	if err := session.AIError(); err != nil {
		color.New(color.FgYellow, color.Bold).Fprint(errOut, "warning: ")
		fmt.Fprintf(errOut, "AI commands are unavailable: %v\n", err)
	}

	if err := session.Run(in, out); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(errOut, "error: ")
		fmt.Fprintln(errOut, err)
		return 1
	}

	highlight.Fprintln(out, "=== Happy Debugging! Bye!")
	return 0
}
