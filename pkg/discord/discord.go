package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const webhookURLFormat = "https://discord.com/api/webhooks/%s/%s"

// colors for embed messages (Discord decimal color codes).
const (
	colorInfo    = 3447003  // blue
	colorSuccess = 3066993  // green
	colorWarning = 16776960 // yellow
	colorError   = 15158332 // red
)

// SendMessage sends a plain content message to the webhook.
func (d *discordImpl) SendMessage(ctx context.Context, content string) error {
	return d.send(ctx, WebhookPayload{
		Content:  content,
		Username: d.config.DefaultUsername,
	})
}

// SendEmbed sends a rich embed message to the webhook.
func (d *discordImpl) SendEmbed(ctx context.Context, options MessageOptions) error {
	username := options.Username
	if username == "" {
		username = d.config.DefaultUsername
	}

	ts := options.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	embed := Embed{
		Title:       options.Title,
		Description: options.Description,
		Color:       colorForType(options.Type),
		Timestamp:   ts.UTC().Format(time.RFC3339),
		Footer:      options.Footer,
		Fields:      options.Fields,
	}

	return d.send(ctx, WebhookPayload{
		Username: username,
		Embeds:   []Embed{embed},
	})
}

// SendError sends an error embed including the error message.
func (d *discordImpl) SendError(ctx context.Context, title, description string, err error) error {
	fields := []EmbedField{}
	if err != nil {
		fields = append(fields, EmbedField{Name: "Error", Value: err.Error()})
	}
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeError,
		Title:       title,
		Description: description,
		Fields:      fields,
	})
}

// SendSuccess sends a success embed.
func (d *discordImpl) SendSuccess(ctx context.Context, title, description string) error {
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeSuccess,
		Title:       title,
		Description: description,
	})
}

// SendWarning sends a warning embed.
func (d *discordImpl) SendWarning(ctx context.Context, title, description string) error {
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeWarning,
		Title:       title,
		Description: description,
	})
}

// SendInfo sends an info embed.
func (d *discordImpl) SendInfo(ctx context.Context, title, description string) error {
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeInfo,
		Title:       title,
		Description: description,
	})
}

// SendNotification sends an info embed with key/value fields.
func (d *discordImpl) SendNotification(ctx context.Context, title, description string, fields map[string]string) error {
	embedFields := make([]EmbedField, 0, len(fields))
	for name, value := range fields {
		embedFields = append(embedFields, EmbedField{Name: name, Value: value, Inline: true})
	}
	return d.SendEmbed(ctx, MessageOptions{
		Type:        MessageTypeInfo,
		Title:       title,
		Description: description,
		Fields:      embedFields,
	})
}

// GetWebhookURL returns the full webhook URL.
func (d *discordImpl) GetWebhookURL() string {
	return fmt.Sprintf(webhookURLFormat, d.webhook.ID, d.webhook.Token)
}

// Close releases resources held by the service.
func (d *discordImpl) Close() error {
	d.client.CloseIdleConnections()
	return nil
}

// send posts the payload to the webhook with bounded retries.
func (d *discordImpl) send(ctx context.Context, payload WebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= d.config.RetryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d.config.RetryDelay):
			}
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.GetWebhookURL(), bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("failed to create webhook request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := d.client.Do(req)
		if err != nil {
			lastErr = err
			continue
		}
		resp.Body.Close()

		if resp.StatusCode >= 200 && resp.StatusCode < 300 {
			return nil
		}
		lastErr = fmt.Errorf("discord webhook returned status %d", resp.StatusCode)
	}

	return fmt.Errorf("failed to send discord webhook: %w", lastErr)
}

func colorForType(t MessageType) int {
	switch t {
	case MessageTypeSuccess:
		return colorSuccess
	case MessageTypeWarning:
		return colorWarning
	case MessageTypeError:
		return colorError
	default:
		return colorInfo
	}
}
