package domain

import (
	"strings"
	"time"

	"github.com/Juicern/remagik/internal/channel"
)

// UserID identifies a signed-in user to the tone store. It is obtained from
// the auth gateway and never derived from display data.
type UserID string

func (id UserID) String() string { return string(id) }

func (id UserID) Empty() bool { return strings.TrimSpace(string(id)) == "" }

type ToneConfig struct {
	ID        string          `json:"id,omitempty" db:"id"`
	UserID    string          `json:"user_id,omitempty" db:"user_id"`
	Channel   channel.Channel `json:"channel" db:"channel"`
	Prompt    string          `json:"prompt" db:"prompt"`
	Example   string          `json:"example" db:"example"`
	CreatedAt *time.Time      `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}

type RewriteRequest struct {
	Text    string          `json:"text"`
	Channel channel.Channel `json:"channel"`
	Prompt  string          `json:"prompt"`
	Example string          `json:"example"`
}

// Blank reports whether the text to rewrite is empty once trimmed.
func (r RewriteRequest) Blank() bool {
	return strings.TrimSpace(r.Text) == ""
}

type RewriteResult struct {
	RewrittenText string          `json:"rewrittenText"`
	Channel       channel.Channel `json:"-"`
}

// PreviewMetadata carries optional display attributes for previews. Empty
// fields are replaced by presentable defaults when rendering.
type PreviewMetadata struct {
	LinkedInTitle    string `json:"linkedin_title,omitempty" yaml:"linkedin_title"`
	LinkedInCompany  string `json:"linkedin_company,omitempty" yaml:"linkedin_company"`
	ProfileImageURL  string `json:"profile_image_url,omitempty" yaml:"profile_image_url"`
	EmailSignature   string `json:"email_signature,omitempty" yaml:"email_signature"`
	EmailSubject     string `json:"email_subject,omitempty" yaml:"email_subject"`
	EmailRecipients  string `json:"email_recipients,omitempty" yaml:"email_recipients"`
	SenderName       string `json:"sender_name,omitempty" yaml:"sender_name"`
	SenderEmail      string `json:"sender_email,omitempty" yaml:"sender_email"`
	SlackUsername    string `json:"slack_username,omitempty" yaml:"slack_username"`
	SlackAvatarURL   string `json:"slack_avatar_url,omitempty" yaml:"slack_avatar_url"`
	SlackStatus      string `json:"slack_status,omitempty" yaml:"slack_status"`
	AuthorName       string `json:"author_name,omitempty" yaml:"author_name"`
	AuthorBio        string `json:"author_bio,omitempty" yaml:"author_bio"`
	ArticleCategory  string `json:"article_category,omitempty" yaml:"article_category"`
	TeamsDisplayName string `json:"teams_display_name,omitempty" yaml:"teams_display_name"`
	TeamsStatus      string `json:"teams_status,omitempty" yaml:"teams_status"`
	Department       string `json:"department,omitempty" yaml:"department"`
}
