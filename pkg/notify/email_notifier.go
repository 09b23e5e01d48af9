package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/dmitrymomot/sessionguard/pkg/inactivity"
)

// EmailNotifier delivers notices through an EmailSender. Notices without a
// recipient address are skipped silently, so it can sit behind sessions that
// never resolved to a user.
type EmailNotifier struct {
	sender  EmailSender
	appName string
}

// EmailNotifierOption configures an EmailNotifier.
type EmailNotifierOption func(*EmailNotifier)

// WithAppName sets the product name used in subjects and bodies.
func WithAppName(name string) EmailNotifierOption {
	return func(n *EmailNotifier) {
		if name != "" {
			n.appName = name
		}
	}
}

// NewEmailNotifier creates a notifier sending through the given sender.
func NewEmailNotifier(sender EmailSender, opts ...EmailNotifierOption) *EmailNotifier {
	if sender == nil {
		panic("notify: email sender cannot be nil")
	}

	n := &EmailNotifier{
		sender:  sender,
		appName: "the application",
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

var warningTemplate = template.Must(template.New("warning").Parse(`<!DOCTYPE html>
<html>
<body>
  <p>Hi{{if .UserName}} {{.UserName}}{{end}},</p>
  <p>Your session on {{.AppName}} will expire in <strong>{{.Remaining}}</strong> due to inactivity.</p>
  <p>Any action in the application keeps your session alive.</p>
</body>
</html>`))

var timeoutTemplate = template.Must(template.New("timeout").Parse(`<!DOCTYPE html>
<html>
<body>
  <p>Hi{{if .UserName}} {{.UserName}}{{end}},</p>
  <p>You were signed out of {{.AppName}} because of inactivity.{{if .LastSeen}} We last saw you at {{.LastSeen}}.{{end}}</p>
  <p>Sign in again to continue where you left off.</p>
</body>
</html>`))

// NotifyWarning sends an "about to expire" email.
func (n *EmailNotifier) NotifyWarning(ctx context.Context, notice WarningNotice) error {
	if notice.Email == "" {
		return nil
	}

	body, err := renderTemplate(warningTemplate, map[string]string{
		"UserName":  notice.UserName,
		"AppName":   n.appName,
		"Remaining": inactivity.FormatRemaining(notice.Remaining),
	})
	if err != nil {
		return err
	}

	return n.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   notice.Email,
		Subject:  fmt.Sprintf("Your session on %s is about to expire", n.appName),
		BodyHTML: body,
		Tag:      "session-warning",
	})
}

// NotifyTimeout sends a "signed out" email.
func (n *EmailNotifier) NotifyTimeout(ctx context.Context, notice TimeoutNotice) error {
	if notice.Email == "" {
		return nil
	}

	var lastSeen string
	if !notice.LastActivity.IsZero() {
		lastSeen = notice.LastActivity.Format(time.RFC1123)
	}

	body, err := renderTemplate(timeoutTemplate, map[string]string{
		"UserName": notice.UserName,
		"AppName":  n.appName,
		"LastSeen": lastSeen,
	})
	if err != nil {
		return err
	}

	return n.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   notice.Email,
		Subject:  fmt.Sprintf("You were signed out of %s", n.appName),
		BodyHTML: body,
		Tag:      "session-timeout",
	})
}

func renderTemplate(tmpl *template.Template, data map[string]string) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: render body: %v", ErrFailedToSendEmail, err)
	}
	return buf.String(), nil
}

var _ Notifier = (*EmailNotifier)(nil)
