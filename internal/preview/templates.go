package preview

const layoutTemplates = `
{{define "body"}}<div class="preview-body"{{if .Editing}} contenteditable="true"{{end}}>{{.Body}}</div>{{end}}

{{define "avatar"}}{{if .Header.Avatar}}<img class="avatar" src="{{.Header.Avatar}}" alt="{{.Header.Name}}">{{end}}{{end}}

{{define "reactions"}}{{if or .Reactions .Affordances}}<div class="preview-actions">{{range .Reactions}}<span class="reaction">{{.}}</span>{{end}}{{range .Affordances}}<button type="button">{{.}}</button>{{end}}</div>{{end}}{{end}}

{{define "chat"}}<section class="preview preview-chat">
<header class="chrome" style="background: {{.Header.ChromeColor}}">{{.Header.Chrome}}</header>
<div class="message">{{template "avatar" .}}
<div class="sender"><strong>{{.Header.Name}}</strong> <time>{{.Header.Meta}}</time></div>
{{template "body" .}}</div>
{{template "reactions" .}}</section>{{end}}

{{define "post"}}<section class="preview preview-post">
<header class="author">{{template "avatar" .}}<div><strong>{{.Header.Name}}</strong><div class="subtitle">{{.Header.Subtitle}}</div><div class="meta">{{.Header.Meta}}</div></div></header>
{{template "body" .}}{{if .Expandable}}<button type="button" class="see-more">see more</button>{{end}}
{{with .LinkCard}}<div class="link-card"><div class="link-title">{{.Title}}</div><div class="link-domain">{{.Domain}}</div></div>{{end}}
{{template "reactions" .}}</section>{{end}}

{{define "email_client"}}<section class="preview preview-email">
<header class="chrome" style="color: {{.Header.ChromeColor}}"><span class="badge">{{.Header.ChromeBadge}}</span> {{.Header.Chrome}}</header>
{{with .Header.Title}}<h2 class="subject">{{.}}</h2>{{end}}
<div class="sender">{{template "avatar" .}}<strong>{{.Header.Name}}</strong> <span class="subtitle">{{.Header.Subtitle}}</span> <time>{{.Header.Meta}}</time></div>
{{range .Header.Fields}}<div class="field"><span class="label">{{.Label}}:</span> {{.Value}}</div>{{end}}
{{with .Greeting}}<p class="greeting">{{.}}</p>{{end}}
{{template "body" .}}
{{with .Signature}}<div class="signature">{{.}}</div>{{end}}
{{template "reactions" .}}</section>{{end}}

{{define "email_simple"}}<section class="preview preview-email-simple">
{{range .Header.Fields}}<div class="field"><span class="label">{{.Label}}:</span> {{.Value}}</div>{{end}}
<hr>
{{template "body" .}}
{{with .Signature}}<div class="signature">{{.}}</div>{{end}}
</section>{{end}}

{{define "memo"}}<section class="preview preview-memo">
<header class="chrome" style="background: {{.Header.ChromeColor}}">{{.Header.Chrome}}</header>
<div class="message">{{template "avatar" .}}
<div class="sender"><strong>{{.Header.Name}}</strong> <span class="subtitle">{{.Header.Subtitle}}</span> <time>{{.Header.Meta}}</time></div>
{{template "body" .}}</div>
{{template "reactions" .}}</section>{{end}}

{{define "article"}}<article class="preview preview-article">
<h1>{{.Header.Title}}</h1>
<header class="author">{{template "avatar" .}}<div><strong>{{.Header.Name}}</strong><div class="subtitle">{{.Header.Subtitle}}</div><div class="meta">{{.Header.Meta}}</div></div></header>
{{template "body" .}}
{{template "reactions" .}}</article>{{end}}

{{define "generic"}}<section class="preview preview-generic">
<header class="chrome" style="color: {{.Header.ChromeColor}}">{{.Header.ChromeBadge}} {{.Header.Chrome}}</header>
<div class="sender"><strong>{{.Header.Name}}</strong></div>
{{template "body" .}}</section>{{end}}
`
