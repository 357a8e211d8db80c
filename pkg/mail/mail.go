// Package mail renders and sends the registrar's transactional emails.
package mail

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

// Template names. Each one is a file under templates/ defining a "subject"
// and a "body" template.
const (
	TemplateSubmissionConfirmation = "submission_confirmation"
	TemplateStatusInReview         = "status_in_review"
	TemplateStatusActionNeeded     = "status_action_needed"
	TemplateStatusApproved         = "status_approved"
	TemplateStatusRejected         = "status_rejected"
	TemplateStatusWithdrawn        = "status_withdrawn"
	TemplateDomainInvitation       = "domain_invitation"
	TemplateDomainManagerAdded     = "domain_manager_added"
	TemplateTransitionDomains      = "transition_domains"
)

//go:embed templates/*.txt
var templatesFS embed.FS

var templates = map[string]*template.Template{} //nolint: gochecknoglobals

func init() { //nolint: gochecknoinits
	entries, err := templatesFS.ReadDir("templates")
	if err != nil {
		panic(err)
	}
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".txt")
		templates[name] = template.Must(template.New(name).ParseFS(templatesFS, "templates/"+e.Name()))
	}
}

// Message is a plain text email.
type Message struct {
	To      []string `json:"to"`
	CC      []string `json:"cc,omitempty"`
	Subject string   `json:"subject"`
	Body    string   `json:"body"`
}

// Sender delivers rendered messages.
//
//go:generate mockgen -package mockmail -source=mail.go -destination=mock/mockmail.go *
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Render executes the named template with data and returns a message
// addressed to the given recipients.
func Render(name string, data any, to ...string) (Message, error) {
	tmpl, ok := templates[name]
	if !ok {
		return Message{}, fmt.Errorf("unknown email template %q", name)
	}

	var subject, body bytes.Buffer
	if err := tmpl.ExecuteTemplate(&subject, "subject", data); err != nil {
		return Message{}, fmt.Errorf("could not render subject of %s: %w", name, err)
	}
	if err := tmpl.ExecuteTemplate(&body, "body", data); err != nil {
		return Message{}, fmt.Errorf("could not render body of %s: %w", name, err)
	}

	return Message{
		To:      to,
		Subject: strings.TrimSpace(subject.String()),
		Body:    strings.TrimSpace(body.String()) + "\n",
	}, nil
}
