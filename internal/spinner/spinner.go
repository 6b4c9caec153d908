// Package spinner provides a terminal progress indicator for the tally CLI
// tool, shown while a network source is being fetched. Output is
// terminal-aware: control sequences are only emitted on a real TTY.
package spinner

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// defaultFrames animate a filling tally; braille cells read well at small
// sizes and are widely supported
var defaultFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// defaultDelay is the interval between frames
const defaultDelay = 120 * time.Millisecond

// defaultMessage is shown when the caller supplies none
const defaultMessage = "Counting..."

// Spinner represents a spinning progress indicator.
type Spinner struct {
	frames  []string
	delay   time.Duration
	writer  io.Writer
	active  bool
	mu      sync.RWMutex
	ctx     context.Context
	cancel  context.CancelFunc
	message string
	wg      sync.WaitGroup
}

// New creates a new spinner writing to writer with the given message
// (empty string for the default). ctx allows for cancellation of the
// spinner goroutine.
func New(ctx context.Context, writer io.Writer, message string) *Spinner {
	if message == "" {
		message = defaultMessage
	}

	spinnerCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		frames:  defaultFrames,
		delay:   defaultDelay,
		writer:  writer,
		message: message,
		ctx:     spinnerCtx,
		cancel:  cancel,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return // already running
	}

	s.active = true

	s.wg.Add(1)
	go s.run()
}

// Stop stops the spinner animation and clears the line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return // not running
	}

	s.active = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()

	// clear the spinner line; only emit control sequences on a real terminal
	if f, ok := s.writer.(*os.File); ok && isTerminal(f) {
		fmt.Fprint(s.writer, "\r\033[2K")
	} else {
		fmt.Fprint(s.writer, "\r")
	}
}

// IsActive returns whether the spinner is currently running
func (s *Spinner) IsActive() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.active
}

// UpdateMessage updates the spinner message
func (s *Spinner) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
}

// run is the main spinner loop.
func (s *Spinner) run() {
	defer s.wg.Done()

	frameIndex := 0
	ticker := time.NewTicker(s.delay)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.mu.RLock()
			frame := s.frames[frameIndex%len(s.frames)]
			message := s.message
			s.mu.RUnlock()

			fmt.Fprintf(s.writer, "\r%s %s", frame, message)
			frameIndex++
		}
	}
}

// isTerminal reports whether f is attached to a terminal
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
