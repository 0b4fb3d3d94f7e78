// Package notifications tells the sales team about new leads
package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"offsite/internal/domain"
)

// EmailNotification represents an email to send
type EmailNotification struct {
	To      string
	Subject string
	Body    string
}

// EmailProvider defines the interface for email providers
type EmailProvider interface {
	Send(ctx context.Context, notification EmailNotification) error
}

// Notifier is told about every stored lead
type Notifier interface {
	LeadReceived(ctx context.Context, lead domain.Lead) error
}

// LeadNotifier emails new leads to one inbox
type LeadNotifier struct {
	email EmailProvider
	to    string
}

// NewLeadNotifier creates a notifier. With no provider or recipient it is a no-op.
func NewLeadNotifier(email EmailProvider, to string) *LeadNotifier {
	return &LeadNotifier{email: email, to: to}
}

func (n *LeadNotifier) LeadReceived(ctx context.Context, lead domain.Lead) error {
	if n.email == nil || n.to == "" {
		return nil
	}
	return n.email.Send(ctx, EmailNotification{
		To:      n.to,
		Subject: fmt.Sprintf("New outing enquiry from %s", lead.Name),
		Body:    leadBody(lead),
	})
}

func leadBody(l domain.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Reference: %s\n", l.Reference)
	fmt.Fprintf(&b, "Name: %s\n", l.Name)
	fmt.Fprintf(&b, "Email: %s\n", l.Email)
	if l.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", l.Phone)
	}
	if l.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", l.Company)
	}
	if l.TeamSize > 0 {
		fmt.Fprintf(&b, "Team size: %d\n", l.TeamSize)
	}
	if l.SourcePath != "" {
		fmt.Fprintf(&b, "Page: %s\n", l.SourcePath)
	}
	if l.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", l.Message)
	}
	return b.String()
}

// LogEmailProvider writes emails to the log instead of sending them
type LogEmailProvider struct {
	log *slog.Logger
}

func NewLogEmailProvider(log *slog.Logger) *LogEmailProvider {
	return &LogEmailProvider{log: log}
}

func (p *LogEmailProvider) Send(ctx context.Context, n EmailNotification) error {
	p.log.InfoContext(ctx, "email notification",
		slog.String("to", n.To),
		slog.String("subject", n.Subject),
	)
	return nil
}
