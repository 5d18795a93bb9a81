package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// spinner animates a one-line status on out until stopped or until its
// context ends. The line is cleared on exit.
type spinner struct {
	out     io.Writer
	message string
	cancel  context.CancelFunc
	stopped chan struct{}

	mu     sync.Mutex
	frames int
}

// startSpinner draws the first frame immediately and then one per interval.
func startSpinner(ctx context.Context, out io.Writer, message string, interval time.Duration) *spinner {
	ctx, cancel := context.WithCancel(ctx)
	s := &spinner{out: out, message: message, cancel: cancel, stopped: make(chan struct{})}
	s.draw()
	go s.run(ctx, interval)
	return s
}

func (s *spinner) run(ctx context.Context, interval time.Duration) {
	defer close(s.stopped)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.clear()
			return
		case <-ticker.C:
			s.draw()
		}
	}
}

func (s *spinner) draw() {
	s.mu.Lock()
	defer s.mu.Unlock()
	frame := spinnerFrames[s.frames%len(spinnerFrames)]
	fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(s.message))
	s.frames++
}

func (s *spinner) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}

// Stop ends the animation and waits for the line to be cleared. Calling it
// again, or after the context ended, is a no-op.
func (s *spinner) Stop() {
	s.cancel()
	<-s.stopped
}

// Frames reports how many frames were drawn.
func (s *spinner) Frames() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
