package delivery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
)

// WebhookSender posts the payload as multipart form data to the configured
// webhook URL.
type WebhookSender struct {
	client *resty.Client
}

func NewWebhookSender(client *resty.Client) *WebhookSender {
	if client == nil {
		client = resty.New().
			SetTimeout(2*time.Minute).
			SetHeader("User-Agent", "story-scheduler-webhook")
	}
	return &WebhookSender{client: client}
}

func (s *WebhookSender) Send(ctx context.Context, p *transfer.Payload) (*Result, error) {
	if p.WebhookURL == "" {
		return nil, errors.New("webhook url is empty")
	}

	fields, err := p.Fields()
	if err != nil {
		return nil, err
	}

	req := s.client.R().
		SetContext(ctx).
		SetFormData(fields)
	if p.VideoContent != nil {
		name := "video"
		if p.Video != nil && p.Video.FileName != "" {
			name = p.Video.FileName
		}
		req.SetFileReader("video", name, p.VideoContent)
	}

	resp, err := req.Post(p.WebhookURL)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("error sending webhook: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("webhook responded %s: %s", resp.Status(), resp.String())
	}

	return &Result{
		Mode:        ModeWebhook,
		StatusCode:  resp.StatusCode(),
		DeliveredAt: time.Now(),
	}, nil
}
