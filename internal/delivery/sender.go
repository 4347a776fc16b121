// Package delivery hands submitted posts to the automation webhook.
package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/transfer"
)

const (
	ModeLog     = "log"
	ModeWebhook = "webhook"
)

type Result struct {
	Mode        string    `json:"mode"`
	StatusCode  int       `json:"status_code,omitempty"`
	DeliveredAt time.Time `json:"delivered_at"`
}

type Sender interface {
	Send(ctx context.Context, p *transfer.Payload) (*Result, error)
}

// New returns the sender for mode. delay only applies to the log sender.
func New(mode string, delay time.Duration) (Sender, error) {
	switch mode {
	case "", ModeLog:
		return NewLogSender(delay), nil
	case ModeWebhook:
		return NewWebhookSender(nil), nil
	}
	return nil, fmt.Errorf("unknown delivery mode %q", mode)
}
