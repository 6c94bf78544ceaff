package logout

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// Indicator shows that a long-running step is in progress
type Indicator interface {
	Start(title string)
	Stop()
}

type noopIndicator struct{}

func (noopIndicator) Start(string) {}
func (noopIndicator) Stop()        {}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner is a terminal loading indicator. When animation is off it
// prints a single "<title>..." line instead.
type Spinner struct {
	out      io.Writer
	animate  bool
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner writing to out
func NewSpinner(out io.Writer, animate bool) *Spinner {
	return &Spinner{
		out:      out,
		animate:  animate,
		interval: 100 * time.Millisecond,
	}
}

// NewTerminalSpinner animates only when f is a terminal
func NewTerminalSpinner(f *os.File) *Spinner {
	return NewSpinner(f, term.IsTerminal(int(f.Fd())))
}

// Start shows the indicator. Starting a running spinner does nothing.
func (s *Spinner) Start(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		return
	}

	if !s.animate {
		fmt.Fprintf(s.out, "%s...\n", title)
		s.stop = make(chan struct{})
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(title, s.stop, s.done)
}

func (s *Spinner) run(title string, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 0; ; i++ {
		fmt.Fprintf(s.out, "\r%s %s", spinnerFrames[i%len(spinnerFrames)], title)
		select {
		case <-stop:
			fmt.Fprint(s.out, "\r\033[K")
			return
		case <-ticker.C:
		}
	}
}

// Stop hides the indicator and waits for the animation to finish
func (s *Spinner) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop == nil {
		return
	}
	close(s.stop)
	if s.done != nil {
		<-s.done
	}
	s.stop = nil
	s.done = nil
}
