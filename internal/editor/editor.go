// Package editor describes the rich-text editing surface used for inline
// preview edits. The real editing engine is external; Buffer is a minimal
// whole-document implementation of the same contract.
package editor

import (
	"errors"
	"strings"
	"sync"
)

type Command string

const (
	Bold       Command = "bold"
	Italic     Command = "italic"
	BulletList Command = "bulletList"
	Undo       Command = "undo"
	Redo       Command = "redo"
)

var ErrUnknownCommand = errors.New("unknown editor command")

// Editor edits an HTML fragment and notifies listeners on every change.
type Editor interface {
	Content() string
	SetContent(html string)
	OnChange(fn func(html string))
	Exec(cmd Command) error
}

type Buffer struct {
	mu        sync.Mutex
	content   string
	undo      []string
	redo      []string
	listeners []func(string)
}

func NewBuffer(html string) *Buffer {
	return &Buffer{content: html}
}

func (b *Buffer) Content() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.content
}

func (b *Buffer) SetContent(html string) {
	b.mu.Lock()
	if html == b.content {
		b.mu.Unlock()
		return
	}
	b.undo = append(b.undo, b.content)
	b.redo = nil
	b.content = html
	listeners := b.snapshotListeners()
	b.mu.Unlock()

	notify(listeners, html)
}

func (b *Buffer) OnChange(fn func(string)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

func (b *Buffer) Exec(cmd Command) error {
	b.mu.Lock()
	var next string
	switch cmd {
	case Bold:
		next = toggleWrap(b.content, "strong")
	case Italic:
		next = toggleWrap(b.content, "em")
	case BulletList:
		next = toggleList(b.content)
	case Undo:
		if len(b.undo) == 0 {
			b.mu.Unlock()
			return nil
		}
		next = b.undo[len(b.undo)-1]
		b.undo = b.undo[:len(b.undo)-1]
		b.redo = append(b.redo, b.content)
		b.content = next
		listeners := b.snapshotListeners()
		b.mu.Unlock()
		notify(listeners, next)
		return nil
	case Redo:
		if len(b.redo) == 0 {
			b.mu.Unlock()
			return nil
		}
		next = b.redo[len(b.redo)-1]
		b.redo = b.redo[:len(b.redo)-1]
		b.undo = append(b.undo, b.content)
		b.content = next
		listeners := b.snapshotListeners()
		b.mu.Unlock()
		notify(listeners, next)
		return nil
	default:
		b.mu.Unlock()
		return ErrUnknownCommand
	}
	b.mu.Unlock()

	b.SetContent(next)
	return nil
}

func (b *Buffer) snapshotListeners() []func(string) {
	return append([]func(string){}, b.listeners...)
}

func notify(listeners []func(string), html string) {
	for _, fn := range listeners {
		fn(html)
	}
}

func toggleWrap(html, tag string) string {
	open, closing := "<"+tag+">", "</"+tag+">"
	trimmed := strings.TrimSpace(html)
	if strings.HasPrefix(trimmed, open) && strings.HasSuffix(trimmed, closing) {
		return trimmed[len(open) : len(trimmed)-len(closing)]
	}
	return open + html + closing
}

func toggleList(html string) string {
	trimmed := strings.TrimSpace(html)
	if strings.HasPrefix(trimmed, "<ul>") && strings.HasSuffix(trimmed, "</ul>") {
		inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "<ul>"), "</ul>")
		inner = strings.ReplaceAll(inner, "</li><li>", "\n")
		inner = strings.TrimPrefix(inner, "<li>")
		return strings.TrimSuffix(inner, "</li>")
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, line := range strings.Split(html, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		b.WriteString("<li>")
		b.WriteString(line)
		b.WriteString("</li>")
	}
	b.WriteString("</ul>")
	return b.String()
}
