package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// startSpinner animates msg on stderr until the returned stop func is called
// or ctx ends.
func startSpinner(ctx context.Context, msg string) (stop func()) {
	return startSpinnerTo(ctx, os.Stderr, msg)
}

// startSpinnerTo is startSpinner on an arbitrary writer. stop blocks until
// the line is cleared and is safe to call more than once.
func startSpinnerTo(ctx context.Context, w io.Writer, msg string) (stop func()) {
	quit := make(chan struct{})
	finished := make(chan struct{})

	go func() {
		defer close(finished)
		defer fmt.Fprintf(w, "\r%s\r", strings.Repeat(" ", len(msg)+4))

		tick := time.NewTicker(spinnerInterval)
		defer tick.Stop()
		for frame := 0; ; frame++ {
			fmt.Fprintf(w, "\r%s %s",
				styleIconSpinner.Render(spinnerFrames[frame%len(spinnerFrames)]),
				StyleDim.Render(msg))
			select {
			case <-ctx.Done():
				return
			case <-quit:
				return
			case <-tick.C:
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() { close(quit) })
		<-finished
	}
}
