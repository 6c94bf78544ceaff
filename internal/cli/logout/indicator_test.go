package logout

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// syncBuffer guards a bytes.Buffer shared with the spinner goroutine
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_Plain(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, false)

	s.Start(Title)
	s.Start(Title)
	s.Stop()
	s.Stop()

	assert.Equal(t, "logout...\n", out.String())
}

func TestSpinner_Animated(t *testing.T) {
	var out syncBuffer
	s := NewSpinner(&out, true)
	s.interval = 5 * time.Millisecond

	s.Start(Title)
	time.Sleep(30 * time.Millisecond)
	s.Stop()

	written := out.String()
	assert.True(t, strings.Contains(written, spinnerFrames[0]+" logout"), "output: %q", written)
	assert.True(t, strings.HasSuffix(written, "\r\033[K"), "line must be cleared on stop: %q", written)

	// Nothing is written once stopped
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, written, out.String())
}
