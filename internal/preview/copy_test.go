package preview

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type fakeClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (c *fakeClipboard) WriteAll(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text
}

type fakeTimer struct {
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type fakeClock struct {
	timers []*fakeTimer
	delays []time.Duration
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) Timer {
	t := &fakeTimer{fn: f}
	c.timers = append(c.timers, t)
	c.delays = append(c.delays, d)
	return t
}

func TestCopyAckTransitions(t *testing.T) {
	clip := &fakeClipboard{}
	clock := &fakeClock{}
	var seen []CopyState
	ack := NewCopyAck(clip, WithClock(clock), WithStateListener(func(s CopyState) { seen = append(seen, s) }))

	assert.Equal(t, CopyIdle, ack.State())
	require.NoError(t, ack.Copy("hello"))

	assert.Equal(t, "hello", clip.Text())
	assert.Equal(t, CopyCopied, ack.State())
	require.Len(t, clock.timers, 1)
	assert.Equal(t, CopyAckDelay, clock.delays[0])

	clock.timers[0].fn()
	assert.Equal(t, CopyIdle, ack.State())
	assert.Equal(t, []CopyState{CopyCopied, CopyIdle}, seen)
}

func TestCopyAckRestartsSingleTimer(t *testing.T) {
	clock := &fakeClock{}
	ack := NewCopyAck(&fakeClipboard{}, WithClock(clock))

	require.NoError(t, ack.Copy("one"))
	require.NoError(t, ack.Copy("two"))
	require.Len(t, clock.timers, 2)
	assert.True(t, clock.timers[0].stopped)

	// A stale reset must not cut the newer acknowledgment short.
	clock.timers[0].fn()
	assert.Equal(t, CopyCopied, ack.State())

	clock.timers[1].fn()
	assert.Equal(t, CopyIdle, ack.State())
}

func TestCopyAckClipboardError(t *testing.T) {
	clock := &fakeClock{}
	clip := &fakeClipboard{err: errors.New("no display")}
	ack := NewCopyAck(clip, WithClock(clock))

	err := ack.Copy("hello")
	require.Error(t, err)
	assert.Equal(t, CopyIdle, ack.State())
	assert.Empty(t, clock.timers)
}

func TestCopyAckClose(t *testing.T) {
	clock := &fakeClock{}
	ack := NewCopyAck(&fakeClipboard{}, WithClock(clock))

	require.NoError(t, ack.Copy("x"))
	ack.Close()
	assert.Equal(t, CopyIdle, ack.State())
	assert.True(t, clock.timers[0].stopped)

	clock.timers[0].fn()
	assert.Equal(t, CopyIdle, ack.State())
}

func TestCopyAckRealClockReturnsToIdle(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ack := NewCopyAck(&fakeClipboard{}, WithDelay(10*time.Millisecond))
	require.NoError(t, ack.Copy("x"))
	assert.Equal(t, CopyCopied, ack.State())

	assert.Eventually(t, func() bool { return ack.State() == CopyIdle }, time.Second, 5*time.Millisecond)
}
