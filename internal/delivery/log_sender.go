package delivery

import (
	"context"
	"log/slog"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/transfer"
)

// LogSender stands in for the webhook: it waits for a fixed delay and logs
// the payload instead of transmitting it.
type LogSender struct {
	delay time.Duration
}

func NewLogSender(delay time.Duration) *LogSender {
	return &LogSender{delay: delay}
}

func (s *LogSender) Send(ctx context.Context, p *transfer.Payload) (*Result, error) {
	fields, err := p.Fields()
	if err != nil {
		return nil, err
	}

	if s.delay > 0 {
		timer := time.NewTimer(s.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	attrs := []any{"webhook_url", p.WebhookURL}
	if p.Video != nil {
		attrs = append(attrs, "video", p.Video.FileName, "video_size", p.Video.FileSize)
	}
	for k, v := range fields {
		attrs = append(attrs, k, v)
	}
	slog.Info("post payload", attrs...)

	return &Result{Mode: ModeLog, DeliveredAt: time.Now()}, nil
}
