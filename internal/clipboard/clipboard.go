package clipboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/aymanbagabas/go-osc52/v2"
	"github.com/desertthunder/pbin/internal/shared"
)

// Writer places text on a clipboard.
type Writer interface {
	Name() string
	Write(ctx context.Context, text string) error
}

// System writes through the operating system clipboard.
type System struct{}

func (System) Name() string { return "system" }

func (System) Write(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no system clipboard utility found", shared.ErrClipboardUnavailable)
	}
	return clipboard.WriteAll(text)
}

// Opener returns a handle to the terminal that receives the escape sequence.
type Opener func() (io.WriteCloser, error)

// OSC52 writes an OSC 52 escape sequence to the controlling terminal.
type OSC52 struct {
	Open Opener // defaults to opening /dev/tty
}

func (OSC52) Name() string { return "osc52" }

// Write opens the terminal, writes the sequence and closes the handle on every path.
func (o OSC52) Write(ctx context.Context, text string) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	open := o.Open
	if open == nil {
		open = openTTY
	}

	tty, err := open()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	defer func() {
		if cerr := tty.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close terminal: %w", cerr)
		}
	}()

	seq := osc52.New(text)
	if os.Getenv("TMUX") != "" {
		seq = seq.Tmux()
	} else if os.Getenv("STY") != "" {
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(tty); err != nil {
		return fmt.Errorf("failed to write escape sequence: %w", err)
	}
	return nil
}

func openTTY() (io.WriteCloser, error) {
	return os.OpenFile("/dev/tty", os.O_WRONLY, 0)
}

// Chain tries each writer in order and stops at the first success.
type Chain []Writer

// Default returns the system clipboard followed by the OSC 52 fallback.
func Default() Chain {
	return Chain{System{}, OSC52{}}
}

func (c Chain) Name() string { return "chain" }

// Write returns nil on the first successful attempt. When every attempt fails the result
// wraps [shared.ErrClipboardUnavailable] joined with each attempt's error.
func (c Chain) Write(ctx context.Context, text string) error {
	errs := []error{shared.ErrClipboardUnavailable}
	for _, w := range c {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		err := w.Write(ctx, text)
		if err == nil {
			return nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", w.Name(), err))
	}
	return errors.Join(errs...)
}

// Result is the outcome of an asynchronous copy.
type Result struct {
	Writer string
	Err    error
}

// CopyAsync runs w.Write on its own goroutine. The returned channel receives exactly one
// [Result] and is then closed; it is buffered so the goroutine never blocks on an absent reader.
func CopyAsync(ctx context.Context, w Writer, text string) <-chan Result {
	out := make(chan Result, 1)
	go func() {
		defer close(out)
		out <- Result{Writer: w.Name(), Err: w.Write(ctx, text)}
	}()
	return out
}
