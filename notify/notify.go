// Package notify posts build and release announcements to a Discord webhook.
package notify

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

// Notifier sends messages to one configured webhook. A nil Notifier is valid
// and sends nothing, so callers don't have to special-case disabled
// notifications.
type Notifier struct {
	webhookID    string
	webhookToken string
	session      *discordgo.Session
}

// New returns a Notifier for the given webhook, or nil when disabled.
func New(enable bool, webhookID, webhookToken string) (*Notifier, error) {
	if !enable {
		return nil, nil
	}

	// webhook execution needs no bot token
	session, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}

	return &Notifier{
		webhookID:    webhookID,
		webhookToken: webhookToken,
		session:      session,
	}, nil
}

// Send posts msg to the configured webhook.
func (n *Notifier) Send(msg string) error {
	if n == nil {
		return nil
	}

	_, err := n.session.WebhookExecute(
		n.webhookID,
		n.webhookToken,
		true,
		&discordgo.WebhookParams{Content: msg},
	)
	if err != nil {
		return fmt.Errorf("error executing webhook: %w", err)
	}

	return nil
}
