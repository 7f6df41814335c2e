package preview

import (
	"fmt"
	"hash/fnv"
	"strings"

	"github.com/Juicern/remagik/internal/channel"
)

var variantChrome = map[string]string{
	"Slack":                 "#4A154B",
	"Microsoft Teams":       "#6264A7",
	"Discord":               "#5865F2",
	"Microsoft Viva Engage": "#0078D4",
	"Gmail":                 "#EA4335",
	"Outlook":               "#0078D4",
	"Apple Mail":            "#1D9BF0",
	"Medium":                "#000000",
	"Substack":              "#FF6719",
	"LinkedIn":              "#0A66C2",
	"LinkedIn Newsletter":   "#0A66C2",
}

func chromeColor(ch channel.Channel, variant string) string {
	if c, ok := variantChrome[variant]; ok {
		return c
	}
	return channel.Describe(ch).AccentColor
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// placeholderAvatar picks a stock portrait from seed so that repeated renders
// of the same input agree.
func placeholderAvatar(seed string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	return fmt.Sprintf("/portraits/%d.jpg", h.Sum32()%6+1)
}

func renderChat(f Frame) Preview {
	m := f.Metadata
	name := firstNonEmpty(m.SlackUsername, m.SenderName, "Your Name")
	chrome := "# general"
	if f.Variant != "Slack" {
		chrome = f.Variant + " · general"
	}
	meta := "1:35 PM"
	if m.SlackStatus != "" {
		meta = m.SlackStatus + " · " + meta
	}
	return Preview{
		Layout: LayoutChat,
		Header: Header{
			Chrome:      chrome,
			ChromeColor: chromeColor(f.Channel, f.Variant),
			Name:        name,
			Meta:        meta,
			Avatar:      firstNonEmpty(m.SlackAvatarURL, m.ProfileImageURL, placeholderAvatar(name)),
		},
		Body:        f.RichBody(),
		Reactions:   []string{"👍 5", "🎯 2"},
		Affordances: []string{"6 replies"},
	}
}

func renderPost(f Frame) Preview {
	m := f.Metadata
	name := firstNonEmpty(m.SenderName, "Alex Johnson")
	text := f.PlainText()

	shown, cut := text, false
	if !f.Expanded {
		shown, cut = truncate(text, TruncateLength)
	}
	p := Preview{
		Layout: LayoutPost,
		Header: Header{
			Chrome:      f.Variant,
			ChromeColor: chromeColor(f.Channel, f.Variant),
			Name:        name,
			Subtitle:    fmt.Sprintf("%s at %s", firstNonEmpty(m.LinkedInTitle, "Product Manager"), firstNonEmpty(m.LinkedInCompany, "TechCorp")),
			Meta:        "2h · 🌐",
			Avatar:      firstNonEmpty(m.ProfileImageURL, placeholderAvatar(name)),
		},
		Body:        highlightPlain(shown),
		DisplayText: shown,
		Text:        text,
		Truncated:   cut,
		Expandable:  cut,
		Reactions:   []string{"👍❤️💡 Sarah Chen and 127 others", "3 comments · 1 repost"},
		Affordances: []string{"Like", "Comment", "Repost", "Send"},
	}
	if domain, ok := linkDomain(text); ok {
		p.LinkCard = &LinkCard{Title: "Article Preview", Domain: domain}
	}
	return p
}

func renderEmail(f Frame) Preview {
	m := f.Metadata
	name := firstNonEmpty(m.SenderName, "Your Name")
	p := Preview{
		Signature:   Signature(m.EmailSignature),
		Affordances: []string{"Reply", "Forward"},
	}

	switch f.Variant {
	case "Outlook":
		p.Layout = LayoutEmailClient
		p.Header = Header{
			Chrome:      "Outlook",
			ChromeColor: chromeColor(f.Channel, f.Variant),
			ChromeBadge: "O",
			Name:        name,
			Meta:        "Draft saved at 1:34 PM",
			Fields: []Field{
				{Label: "To", Value: firstNonEmpty(m.EmailRecipients, "jane@example.com")},
				{Label: "Subject", Value: firstNonEmpty(m.EmailSubject, "Add a subject")},
			},
		}
		p.Greeting = "Hi Jane,"
		p.Body = f.RichBody()
		p.Affordances = []string{"Send", "Discard"}
	case "Apple Mail":
		from := name
		if m.SenderEmail != "" {
			from = fmt.Sprintf("%s <%s>", name, m.SenderEmail)
		}
		p.Layout = LayoutEmailSimple
		p.Header = Header{
			Chrome:      "Apple Mail",
			ChromeColor: chromeColor(f.Channel, f.Variant),
			Name:        name,
			Fields: []Field{
				{Label: "From", Value: from},
				{Label: "To", Value: firstNonEmpty(m.EmailRecipients, "recipient@example.com")},
				{Label: "Subject", Value: firstNonEmpty(m.EmailSubject, "Your Email Subject")},
			},
		}
		p.Body = f.text.richBody(bulletize(f.Content))
	default:
		p.Layout = LayoutEmailClient
		p.Header = Header{
			Chrome:      "Gmail",
			ChromeColor: chromeColor(f.Channel, f.Variant),
			ChromeBadge: "G",
			Name:        name,
			Subtitle:    "to " + firstNonEmpty(m.EmailRecipients, "recipients"),
			Meta:        "10:42 AM",
			Avatar:      firstNonEmpty(m.ProfileImageURL, placeholderAvatar(name)),
			Title:       firstNonEmpty(m.EmailSubject, "Email Subject"),
		}
		p.Greeting = "Hi everyone,"
		p.Body = f.RichBody()
	}
	return p
}

func renderMemo(f Frame) Preview {
	m := f.Metadata
	name := firstNonEmpty(m.TeamsDisplayName, m.SenderName, "Your Name")
	meta := "2:34 PM"
	if m.TeamsStatus != "" {
		meta = m.TeamsStatus + " · " + meta
	}
	return Preview{
		Layout: LayoutMemo,
		Header: Header{
			Chrome:      f.Variant,
			ChromeColor: chromeColor(f.Channel, f.Variant),
			Name:        name,
			Subtitle:    firstNonEmpty(m.Department, "Department"),
			Meta:        meta,
			Avatar:      firstNonEmpty(m.ProfileImageURL, placeholderAvatar(name)),
		},
		Body:        f.RichBody(),
		Reactions:   []string{"👍 3", "❤️ 1"},
		Affordances: []string{"Reply"},
	}
}

func renderArticle(f Frame) Preview {
	m := f.Metadata
	name := firstNonEmpty(m.AuthorName, m.SenderName, "Author Name")
	return Preview{
		Layout: LayoutArticle,
		Header: Header{
			Chrome:      f.Variant,
			ChromeColor: chromeColor(f.Channel, f.Variant),
			Name:        name,
			Subtitle:    firstNonEmpty(m.AuthorBio, "Author bio and credentials"),
			Meta:        fmt.Sprintf("%s · Published on %s · 5 min read", firstNonEmpty(m.ArticleCategory, "Technology"), f.Variant),
			Avatar:      firstNonEmpty(m.ProfileImageURL, placeholderAvatar(name)),
			Title:       "Your Article Title Here",
		},
		Body:        f.text.richBody(bulletize(f.Content)),
		Reactions:   []string{"👏 42", "💬 3"},
		Affordances: []string{"Bookmark", "Share"},
	}
}

// renderGeneric is used for channels without a dedicated renderer.
func renderGeneric(f Frame) Preview {
	d := channel.Describe(f.Channel)
	return Preview{
		Layout: LayoutGeneric,
		Header: Header{
			Chrome:      d.DisplayName,
			ChromeColor: d.AccentColor,
			ChromeBadge: d.Icon,
			Name:        firstNonEmpty(f.Metadata.SenderName, "Your Name"),
		},
		Body: f.RichBody(),
	}
}
