package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"

	"github.com/aretw0/wordgraph/internal/presentation/tui"
	"github.com/aretw0/wordgraph/pkg/domain"
)

// Stepper is the part of a walk session the interactive loop drives.
type Stepper interface {
	Step(ctx context.Context) (domain.StepResult, error)
}

// WalkOptions controls RunWalk.
type WalkOptions struct {
	In  io.Reader
	Out io.Writer
	// Auto steps until the walk ends without waiting for input.
	Auto bool
	// TracePath is shown when the walk ends, if known.
	TracePath string
}

// RunWalk drives one walk to completion. Interactively, Enter takes one more
// step and q stops early. The returned result is the last step taken; a walk
// stopped by the user or by input EOF is not an error.
func RunWalk(ctx context.Context, walker Stepper, opts WalkOptions) (domain.StepResult, error) {
	p := tui.NewPrinter(opts.Out)
	var scanner *bufio.Scanner
	if !opts.Auto {
		scanner = bufio.NewScanner(opts.In)
		p.Line("Press Enter for the next step, q to stop.")
	}

	var last domain.StepResult
	for {
		if err := ctx.Err(); err != nil {
			return last, nil
		}

		res, err := walker.Step(ctx)
		if err != nil && !errors.Is(err, domain.ErrTraceWrite) {
			return res, err
		}
		last = res
		p.Line("%s", tui.StepMessage(res))

		if res.Kind.Terminal() {
			if err != nil {
				return res, err
			}
			if opts.TracePath != "" {
				p.Line("Trace written to %s", opts.TracePath)
			}
			return res, nil
		}

		if scanner != nil {
			if !scanner.Scan() {
				return last, scanner.Err()
			}
			if isQuit(scanner.Text()) {
				p.Line("Walk stopped: %s", domain.Trace(last.Path))
				return last, nil
			}
		}
	}
}

func isQuit(line string) bool {
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "q", "quit", "exit":
		return true
	}
	return false
}
