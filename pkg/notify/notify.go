package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/handtracker/pkg/repositories/hand"
)

// Embed colors
const (
	colorClean    = 0x2ecc71
	colorRejected = 0xe67e22
)

// Notifier announces the outcome of an import batch
type Notifier interface {
	NotifyBatch(ctx context.Context, batch *hand.Batch) error
}

// Noop discards every notification
type Noop struct{}

// NotifyBatch implements Notifier
func (Noop) NotifyBatch(ctx context.Context, batch *hand.Batch) error {
	return nil
}

// WebhookSession defines the Discord operation the notifier needs
type WebhookSession interface {
	WebhookExecute(webhookID, token string, wait bool, data *discordgo.WebhookParams, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Ensure discordgo.Session implements WebhookSession
var _ WebhookSession = (*discordgo.Session)(nil)

// DiscordNotifier posts batch summaries to a Discord webhook
type DiscordNotifier struct {
	session   WebhookSession
	webhookID string
	token     string
}

// NewDiscordNotifier creates a notifier for the webhook identified by id and token
func NewDiscordNotifier(webhookID, token string) (*DiscordNotifier, error) {
	// webhooks authenticate through their token, so the session carries none
	s, err := discordgo.New("")
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}
	return NewDiscordNotifierWithSession(s, webhookID, token), nil
}

// NewDiscordNotifierWithSession creates a notifier on an existing session
func NewDiscordNotifierWithSession(session WebhookSession, webhookID, token string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		webhookID: webhookID,
		token:     token,
	}
}

// NotifyBatch implements Notifier
func (n *DiscordNotifier) NotifyBatch(ctx context.Context, batch *hand.Batch) error {
	params := &discordgo.WebhookParams{
		Username: "handtracker",
		Embeds:   []*discordgo.MessageEmbed{BatchEmbed(batch)},
	}
	if _, err := n.session.WebhookExecute(n.webhookID, n.token, false, params, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("error posting batch %s to Discord: %w", batch.ID, err)
	}
	return nil
}

// BatchEmbed renders a batch summary
func BatchEmbed(batch *hand.Batch) *discordgo.MessageEmbed {
	color := colorClean
	if batch.Quarantined > 0 {
		color = colorRejected
	}

	return &discordgo.MessageEmbed{
		Title:       "Hand import finished",
		Description: fmt.Sprintf("%d hands processed", batch.Total()),
		Color:       color,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Imported", Value: fmt.Sprintf("%d", batch.Imported), Inline: true},
			{Name: "Duplicates", Value: fmt.Sprintf("%d", batch.Duplicates), Inline: true},
			{Name: "Quarantined", Value: fmt.Sprintf("%d", batch.Quarantined), Inline: true},
			{Name: "Duration", Value: batch.FinishedAt.Sub(batch.StartedAt).Round(time.Millisecond).String(), Inline: true},
		},
		Footer:    &discordgo.MessageEmbedFooter{Text: "batch " + batch.ID},
		Timestamp: batch.FinishedAt.Format(time.RFC3339),
	}
}
