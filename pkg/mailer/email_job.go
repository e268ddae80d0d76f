package mailer

import (
	"strings"

	mailtpl "github.com/oksasatya/go-ddd-supply-chain/pkg/mailer/templates"
)

// EmailJob is one outgoing email. Template and Data take precedence over
// the literal Subject, Text and HTML fields.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "custody_event"
	Data     map[string]any `json:"data,omitempty"`
}

// Render resolves the job's template, if any, into subject, text and html.
func (j EmailJob) Render() (subject, text, html string, err error) {
	if strings.TrimSpace(j.Template) == "" {
		return j.Subject, j.Text, j.HTML, nil
	}
	return mailtpl.Render(j.Template, j.Data)
}
