package preview

import (
	"html"
	"html/template"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	blockBreak  = regexp.MustCompile(`(?i)<br\s*/?>|</p>|</li>|</div>|</h[1-6]>`)
	anyTag      = regexp.MustCompile(`<[^>]*>`)
	listItem    = regexp.MustCompile(`(?i)<li[^>]*>`)
	manyNewline = regexp.MustCompile(`\n{3,}`)
	dashBullet  = regexp.MustCompile(`(?m)^([ \t]*)[-*] `)
	highlights  = regexp.MustCompile(`https?://[^\s<>"]+|@\w+|#\w+`)
	firstURL    = regexp.MustCompile(`https?://([^/\s<>"]+)`)
	boldMark    = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicMark  = regexp.MustCompile(`\*(.+?)\*`)
)

type textKit struct {
	policy *bluemonday.Policy
}

// richBody sanitizes content and keeps plain line breaks visible.
func (k *textKit) richBody(content string) template.HTML {
	clean := k.policy.Sanitize(content)
	clean = strings.ReplaceAll(clean, "\r\n", "\n")
	return template.HTML(strings.ReplaceAll(clean, "\n", "<br>"))
}

// plainText strips markup while keeping block boundaries as newlines.
func plainText(content string) string {
	s := strings.ReplaceAll(content, "\r\n", "\n")
	s = listItem.ReplaceAllString(s, "• ")
	s = blockBreak.ReplaceAllString(s, "\n")
	s = anyTag.ReplaceAllString(s, "")
	s = html.UnescapeString(s)
	s = manyNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}

// truncate cuts s to limit characters and appends an ellipsis. It reports
// whether anything was cut.
func truncate(s string, limit int) (string, bool) {
	if utf8.RuneCountInString(s) <= limit {
		return s, false
	}
	runes := []rune(s)
	return string(runes[:limit]) + "...", true
}

// highlightPlain escapes s and wraps mentions, hashtags and links.
func highlightPlain(s string) template.HTML {
	var b strings.Builder
	last := 0
	for _, loc := range highlights.FindAllStringIndex(s, -1) {
		b.WriteString(template.HTMLEscapeString(s[last:loc[0]]))
		token := s[loc[0]:loc[1]]
		escaped := template.HTMLEscapeString(token)
		switch token[0] {
		case '@':
			b.WriteString(`<span class="mention">` + escaped + `</span>`)
		case '#':
			b.WriteString(`<span class="hashtag">` + escaped + `</span>`)
		default:
			b.WriteString(`<a class="link" href="` + escaped + `">` + escaped + `</a>`)
		}
		last = loc[1]
	}
	b.WriteString(template.HTMLEscapeString(s[last:]))
	return template.HTML(strings.ReplaceAll(b.String(), "\n", "<br>"))
}

func linkDomain(s string) (string, bool) {
	m := firstURL.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimPrefix(strings.ToLower(m[1]), "www."), true
}

// bulletize turns leading dashes into bullet glyphs.
func bulletize(s string) string {
	return dashBullet.ReplaceAllString(s, "${1}• ")
}

// Signature renders an email signature template. Literal "\n" sequences
// become line breaks, **text** is bold and *text* is italic. Everything else
// is escaped.
func Signature(tmpl string) template.HTML {
	if strings.TrimSpace(tmpl) == "" {
		return ""
	}
	s := strings.ReplaceAll(tmpl, `\\n`, "\n")
	s = strings.ReplaceAll(s, `\n`, "\n")
	s = template.HTMLEscapeString(s)
	s = boldMark.ReplaceAllString(s, "<strong>$1</strong>")
	s = italicMark.ReplaceAllString(s, "<em>$1</em>")
	return template.HTML(strings.ReplaceAll(s, "\n", "<br>"))
}
