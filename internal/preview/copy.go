package preview

import (
	"sync"
	"time"

	"github.com/atotto/clipboard"
)

// CopyAckDelay is how long the "copied" acknowledgment stays visible.
const CopyAckDelay = 2 * time.Second

type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

type Timer interface {
	Stop() bool
}

// Clock schedules the reset of a copy acknowledgment.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

type CopyState int

const (
	CopyIdle CopyState = iota
	CopyCopied
)

func (s CopyState) String() string {
	if s == CopyCopied {
		return "copied"
	}
	return "idle"
}

type CopyOption func(*CopyAck)

func WithClock(c Clock) CopyOption {
	return func(a *CopyAck) { a.clock = c }
}

func WithDelay(d time.Duration) CopyOption {
	return func(a *CopyAck) { a.delay = d }
}

// WithStateListener is called on every state change, outside the lock.
func WithStateListener(fn func(CopyState)) CopyOption {
	return func(a *CopyAck) { a.listener = fn }
}

// CopyAck copies text to a clipboard and tracks the transient "copied"
// acknowledgment. Only one reset timer is ever pending.
type CopyAck struct {
	clip     Clipboard
	clock    Clock
	delay    time.Duration
	listener func(CopyState)

	mu    sync.Mutex
	state CopyState
	timer Timer
	gen   uint64
}

func NewCopyAck(clip Clipboard, opts ...CopyOption) *CopyAck {
	a := &CopyAck{
		clip:  clip,
		clock: realClock{},
		delay: CopyAckDelay,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Copy writes text to the clipboard and enters the copied state. On a
// clipboard error the state is left unchanged.
func (a *CopyAck) Copy(text string) error {
	if err := a.clip.WriteAll(text); err != nil {
		return err
	}

	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
	}
	a.gen++
	gen := a.gen
	a.state = CopyCopied
	a.timer = a.clock.AfterFunc(a.delay, func() { a.reset(gen) })
	a.mu.Unlock()

	a.notify(CopyCopied)
	return nil
}

func (a *CopyAck) reset(gen uint64) {
	a.mu.Lock()
	if gen != a.gen || a.state != CopyCopied {
		a.mu.Unlock()
		return
	}
	a.state = CopyIdle
	a.timer = nil
	a.mu.Unlock()

	a.notify(CopyIdle)
}

func (a *CopyAck) State() CopyState {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Close cancels a pending reset and returns to idle.
func (a *CopyAck) Close() {
	a.mu.Lock()
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.gen++
	a.state = CopyIdle
	a.mu.Unlock()
}

func (a *CopyAck) notify(s CopyState) {
	if a.listener != nil {
		a.listener(s)
	}
}
