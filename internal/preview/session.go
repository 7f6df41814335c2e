package preview

import (
	"errors"
	"sync"

	"github.com/Juicern/remagik/internal/channel"
	"github.com/Juicern/remagik/internal/editor"
)

var ErrNotEditing = errors.New("preview is not in edit mode")

// Session is one live preview: the displayed content, whether the post is
// expanded and an optional inline editor bound to the same content.
type Session struct {
	renderer *Renderer
	ack      *CopyAck

	mu       sync.Mutex
	channel  channel.Channel
	opts     Options
	content  string
	original string
	editor   editor.Editor
	onChange func(string)
}

type SessionOption func(*Session)

// WithCopyAck enables Copy on the session.
func WithCopyAck(a *CopyAck) SessionOption {
	return func(s *Session) { s.ack = a }
}

// WithContentListener is called with the new content whenever an inline edit
// is committed.
func WithContentListener(fn func(string)) SessionOption {
	return func(s *Session) { s.onChange = fn }
}

func NewSession(r *Renderer, ch channel.Channel, content string, opts Options, sopts ...SessionOption) *Session {
	s := &Session{
		renderer: r,
		channel:  ch,
		opts:     opts,
		content:  content,
	}
	for _, opt := range sopts {
		opt(s)
	}
	return s
}

// Render draws the current content. While editing it reflects the editor's
// live content.
func (s *Session) Render() Preview {
	s.mu.Lock()
	ch, content, opts, editing := s.channel, s.content, s.opts, s.editor != nil
	s.mu.Unlock()

	p := s.renderer.Render(ch, content, opts)
	if editing {
		p.Editing = true
		p.HTML = s.renderer.execute(p)
	}
	return p
}

func (s *Session) Content() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.content
}

// Expand shows a truncated post in full.
func (s *Session) Expand() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Expanded = true
}

// SetVariant switches the platform look. Unknown variants fall back to the
// channel default when rendering.
func (s *Session) SetVariant(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opts.Variant = v
}

// BeginEdit swaps the static rendering for an editor bound to the content.
// Calling it while already editing returns the existing editor.
func (s *Session) BeginEdit() editor.Editor {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor != nil {
		return s.editor
	}
	buf := editor.NewBuffer(s.content)
	s.original = s.content
	buf.OnChange(func(html string) {
		s.mu.Lock()
		defer s.mu.Unlock()
		// A detached editor no longer drives the preview.
		if s.editor == editor.Editor(buf) {
			s.content = html
		}
	})
	s.editor = buf
	return buf
}

func (s *Session) Editing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor != nil
}

// Commit leaves edit mode keeping the edited content.
func (s *Session) Commit() (string, error) {
	s.mu.Lock()
	if s.editor == nil {
		s.mu.Unlock()
		return "", ErrNotEditing
	}
	s.editor = nil
	content := s.content
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn(content)
	}
	return content, nil
}

// Cancel leaves edit mode restoring the content from before BeginEdit.
func (s *Session) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.editor == nil {
		return ErrNotEditing
	}
	s.editor = nil
	s.content = s.original
	return nil
}

// Copy puts the plain text of the full content on the clipboard.
func (s *Session) Copy() error {
	if s.ack == nil {
		return errors.New("copy is not available")
	}
	return s.ack.Copy(plainText(s.Content()))
}

// CopyState reports the copy acknowledgment state.
func (s *Session) CopyState() CopyState {
	if s.ack == nil {
		return CopyIdle
	}
	return s.ack.State()
}

// Editor returns the inline editor while editing.
func (s *Session) Editor() (editor.Editor, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editor, s.editor != nil
}
