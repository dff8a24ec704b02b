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

// Spinner prints an animated "label n/total" line while a batch exports.
// It stops on Stop or when its context is done.
type Spinner struct {
	w      io.Writer
	label  string
	count  int
	total  int
	width  int // widest line drawn so far

	parent  context.Context
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	once    sync.Once
	exited  chan struct{}
	mu      sync.Mutex
}

// newSpinner returns a spinner on stderr that stops when ctx is done.
func newSpinner(ctx context.Context, label string, total int) *Spinner {
	return newSpinnerTo(ctx, os.Stderr, label, total)
}

func newSpinnerTo(ctx context.Context, w io.Writer, label string, total int) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		w:      w,
		label:  label,
		total:  total,
		parent: ctx,
		ctx:    sctx,
		cancel: cancel,
		exited: make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	s.started = true
	s.mu.Unlock()
	go func() {
		defer close(s.exited)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetProgress updates the finished count shown after the label.
func (s *Spinner) SetProgress(count int) {
	s.mu.Lock()
	s.count = count
	s.mu.Unlock()
}

func (s *Spinner) line() string {
	if s.total <= 0 {
		return s.label
	}
	return fmt.Sprintf("%s %d/%d", s.label, s.count, s.total)
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	line := s.line()
	fmt.Fprintf(s.w, "\r%s %s", styleIconSpinner.Render(frame), StyleDim.Render(line))
	s.width = max(s.width, len(line))
}

// Stop ends the animation and clears the line. It is safe to call more
// than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.cancel()
		s.mu.Lock()
		started := s.started
		s.mu.Unlock()
		if started {
			<-s.exited
		}
		s.mu.Lock()
		fmt.Fprintf(s.w, "\r%s\r", strings.Repeat(" ", s.width+4))
		s.mu.Unlock()
	})
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended the spinner.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}
