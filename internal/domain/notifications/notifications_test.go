package notifications

import (
	"context"
	"testing"

	"offsite/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureProvider struct {
	sent []EmailNotification
}

func (c *captureProvider) Send(_ context.Context, n EmailNotification) error {
	c.sent = append(c.sent, n)
	return nil
}

func TestLeadNotifier_Sends(t *testing.T) {
	p := &captureProvider{}
	n := NewLeadNotifier(p, "sales@offsite.test")

	err := n.LeadReceived(context.Background(), domain.Lead{
		Reference:  "ref-1",
		Name:       "Asha",
		Email:      "asha@acme.test",
		TeamSize:   25,
		SourcePath: "/destinations/goa",
		Message:    "Three days in March",
	})
	require.NoError(t, err)
	require.Len(t, p.sent, 1)

	msg := p.sent[0]
	assert.Equal(t, "sales@offsite.test", msg.To)
	assert.Contains(t, msg.Subject, "Asha")
	assert.Contains(t, msg.Body, "Team size: 25")
	assert.Contains(t, msg.Body, "Page: /destinations/goa")
	assert.NotContains(t, msg.Body, "Company:")
}

func TestLeadNotifier_NoRecipientIsNoop(t *testing.T) {
	p := &captureProvider{}
	require.NoError(t, NewLeadNotifier(p, "").LeadReceived(context.Background(), domain.Lead{Name: "x"}))
	require.NoError(t, NewLeadNotifier(nil, "sales@offsite.test").LeadReceived(context.Background(), domain.Lead{Name: "x"}))
	assert.Empty(t, p.sent)
}
