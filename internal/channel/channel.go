// Package channel is the static catalog of target platforms a message can be
// rewritten for.
package channel

import "strings"

// Channel is the wire identifier of a target platform. The string values are
// forwarded to the upstream backend unchanged.
type Channel string

const (
	Slack                Channel = "Slack"
	Email                Channel = "Email"
	CompanyCommunication Channel = "Company Communication"
	Article              Channel = "Article"
	LinkedInPost         Channel = "LinkedIn Post"
)

// Descriptor holds the display metadata of a channel.
type Descriptor struct {
	Channel        Channel  `json:"channel"`
	DisplayName    string   `json:"displayName"`
	ShortName      string   `json:"shortName"`
	Icon           string   `json:"icon"`
	AccentColor    string   `json:"accentColor"`
	Variants       []string `json:"variants"`
	DefaultVariant string   `json:"defaultVariant"`
	Known          bool     `json:"known"`
}

var order = []Channel{LinkedInPost, Slack, Email, CompanyCommunication, Article}

var catalog = map[Channel]Descriptor{
	Slack: {
		DisplayName: "Slack",
		ShortName:   "Slack",
		Icon:        "#",
		AccentColor: "#4A154B",
		Variants:    []string{"Slack", "Microsoft Teams", "Discord"},
	},
	Email: {
		DisplayName: "Email",
		ShortName:   "Email",
		Icon:        "✉",
		AccentColor: "#EA4335",
		Variants:    []string{"Gmail", "Outlook", "Apple Mail"},
	},
	CompanyCommunication: {
		DisplayName: "Company Communication",
		ShortName:   "Teams",
		Icon:        "▤",
		AccentColor: "#0078D4",
		Variants:    []string{"Microsoft Teams", "Slack", "Microsoft Viva Engage"},
	},
	Article: {
		DisplayName: "Article",
		ShortName:   "Article",
		Icon:        "◉",
		AccentColor: "#00AB6C",
		Variants:    []string{"Medium", "Substack", "LinkedIn Newsletter"},
	},
	LinkedInPost: {
		DisplayName: "LinkedIn Post",
		ShortName:   "LinkedIn",
		Icon:        "in",
		AccentColor: "#0A66C2",
		Variants:    []string{"LinkedIn", "LinkedIn Newsletter"},
	},
}

var aliases = map[string]Channel{
	"slack":                 Slack,
	"chat":                  Slack,
	"email":                 Email,
	"mail":                  Email,
	"company communication": CompanyCommunication,
	"company":               CompanyCommunication,
	"teams":                 CompanyCommunication,
	"memo":                  CompanyCommunication,
	"article":               Article,
	"medium":                Article,
	"linkedin post":         LinkedInPost,
	"linkedin":              LinkedInPost,
	"post":                  LinkedInPost,
}

// Describe returns the display metadata for ch. Unknown channels get a
// neutral descriptor instead of an error.
func Describe(ch Channel) Descriptor {
	d, ok := catalog[ch]
	if !ok {
		name := string(ch)
		return Descriptor{
			Channel:        ch,
			DisplayName:    name,
			ShortName:      name,
			Icon:           "▢",
			AccentColor:    "#4B5563",
			Variants:       []string{name},
			DefaultVariant: name,
		}
	}
	d.Channel = ch
	d.Known = true
	d.DefaultVariant = d.Variants[0]
	d.Variants = append([]string(nil), d.Variants...)
	return d
}

// All lists the supported channels in display order.
func All() []Channel {
	return append([]Channel(nil), order...)
}

// Parse accepts a wire name or a short alias, case-insensitively.
func Parse(s string) (Channel, bool) {
	ch, ok := aliases[strings.ToLower(strings.TrimSpace(s))]
	return ch, ok
}

// Valid reports whether ch belongs to the enumerated set.
func (ch Channel) Valid() bool {
	_, ok := catalog[ch]
	return ok
}

func (ch Channel) String() string {
	return string(ch)
}

// HasVariant reports whether variant is one of the look-and-feel variants of
// ch.
func HasVariant(ch Channel, variant string) bool {
	for _, v := range Describe(ch).Variants {
		if v == variant {
			return true
		}
	}
	return false
}
