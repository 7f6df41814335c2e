// Package preview renders rewritten text the way it would look on the target
// platform. Rendering is a pure function of its inputs.
package preview

import (
	"bytes"
	"html/template"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Juicern/remagik/internal/channel"
	"github.com/Juicern/remagik/internal/domain"
)

// TruncateLength is the number of characters a professional post shows
// before the "see more" control.
const TruncateLength = 210

type Layout string

const (
	LayoutChat        Layout = "chat"
	LayoutPost        Layout = "post"
	LayoutEmailClient Layout = "email_client"
	LayoutEmailSimple Layout = "email_simple"
	LayoutMemo        Layout = "memo"
	LayoutArticle     Layout = "article"
	LayoutGeneric     Layout = "generic"
)

type Options struct {
	Variant  string                 `json:"variant,omitempty"`
	Metadata domain.PreviewMetadata `json:"metadata"`
	Expanded bool                   `json:"expanded,omitempty"`
}

type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type Header struct {
	Chrome      string  `json:"chrome"`
	ChromeColor string  `json:"chromeColor"`
	ChromeBadge string  `json:"chromeBadge,omitempty"`
	Name        string  `json:"name"`
	Subtitle    string  `json:"subtitle,omitempty"`
	Meta        string  `json:"meta,omitempty"`
	Avatar      string  `json:"avatar,omitempty"`
	Title       string  `json:"title,omitempty"`
	Fields      []Field `json:"fields,omitempty"`
}

type LinkCard struct {
	Title  string `json:"title"`
	Domain string `json:"domain"`
}

// Preview is the structured rendering of one message on one platform.
type Preview struct {
	Channel     channel.Channel `json:"channel"`
	Variant     string          `json:"variant"`
	Layout      Layout          `json:"layout"`
	Header      Header          `json:"header"`
	Greeting    string          `json:"greeting,omitempty"`
	Body        template.HTML   `json:"body"`
	DisplayText string          `json:"displayText"`
	Text        string          `json:"text"`
	Truncated   bool            `json:"truncated"`
	Expandable  bool            `json:"expandable"`
	LinkCard    *LinkCard       `json:"linkCard,omitempty"`
	Signature   template.HTML   `json:"signature,omitempty"`
	Reactions   []string        `json:"reactions,omitempty"`
	Affordances []string        `json:"affordances,omitempty"`
	Editing     bool            `json:"editing"`
	HTML        template.HTML   `json:"html"`
}

// Frame is what a ChannelRenderer receives: the content, the resolved
// variant and metadata, plus the text helpers bound to the renderer's
// sanitizer.
type Frame struct {
	Channel  channel.Channel
	Content  string
	Variant  string
	Metadata domain.PreviewMetadata
	Expanded bool
	text     *textKit
}

// RichBody returns the sanitized content with line breaks preserved.
func (f Frame) RichBody() template.HTML {
	return f.text.richBody(f.Content)
}

// PlainText returns the content with markup removed.
func (f Frame) PlainText() string {
	return plainText(f.Content)
}

// ChannelRenderer lays out one platform. It fills the structured fields of
// Preview; the HTML is produced by the Renderer from the layout.
type ChannelRenderer interface {
	Render(f Frame) Preview
}

type RenderFunc func(f Frame) Preview

func (fn RenderFunc) Render(f Frame) Preview { return fn(f) }

type Renderer struct {
	mu        sync.RWMutex
	renderers map[channel.Channel]ChannelRenderer
	fallback  ChannelRenderer
	text      *textKit
	tmpl      *template.Template
}

// NewRenderer returns a renderer with every catalog channel registered.
func NewRenderer() *Renderer {
	r := &Renderer{
		renderers: make(map[channel.Channel]ChannelRenderer),
		fallback:  RenderFunc(renderGeneric),
		text:      &textKit{policy: bluemonday.UGCPolicy()},
		tmpl:      template.Must(template.New("preview").Parse(layoutTemplates)),
	}
	r.Register(channel.Slack, RenderFunc(renderChat))
	r.Register(channel.LinkedInPost, RenderFunc(renderPost))
	r.Register(channel.Email, RenderFunc(renderEmail))
	r.Register(channel.CompanyCommunication, RenderFunc(renderMemo))
	r.Register(channel.Article, RenderFunc(renderArticle))
	return r
}

// Register adds or replaces the renderer for ch.
func (r *Renderer) Register(ch channel.Channel, cr ChannelRenderer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renderers[ch] = cr
}

func (r *Renderer) Render(ch channel.Channel, content string, opts Options) Preview {
	r.mu.RLock()
	cr, ok := r.renderers[ch]
	r.mu.RUnlock()
	if !ok {
		cr = r.fallback
	}

	variant := opts.Variant
	if !channel.HasVariant(ch, variant) {
		variant = channel.Describe(ch).DefaultVariant
	}

	p := cr.Render(Frame{
		Channel:  ch,
		Content:  content,
		Variant:  variant,
		Metadata: opts.Metadata,
		Expanded: opts.Expanded,
		text:     r.text,
	})
	p.Channel = ch
	p.Variant = variant
	if p.Text == "" {
		p.Text = plainText(content)
	}
	if p.DisplayText == "" {
		p.DisplayText = p.Text
	}
	p.HTML = r.execute(p)
	return p
}

func (r *Renderer) execute(p Preview) template.HTML {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, string(p.Layout), p); err != nil {
		// Layouts are compiled in; a failure here is a programming error
		// surfaced as an inline notice rather than a broken page.
		return template.HTML(`<div class="preview-error">` + template.HTMLEscapeString(err.Error()) + `</div>`)
	}
	return template.HTML(buf.String())
}
