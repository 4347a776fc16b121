package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	v "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/maheshrc27/story-scheduler/internal/repository"
	"github.com/maheshrc27/story-scheduler/pkg/utils"
)

var (
	ErrSettingsLoad = errors.New("there was a problem loading your settings")
	ErrSettingsSave = errors.New("there was a problem saving your settings")
)

// SettingsService gives components access to the webhook URL without
// knowing where it is stored.
type SettingsService interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, webhookURL string) error
}

type settingsService struct {
	sr     repository.SettingsRepository
	secret string
}

// NewSettingsService stores the webhook URL through sr. A non-empty secret
// encrypts the value at rest.
func NewSettingsService(sr repository.SettingsRepository, secret string) SettingsService {
	return &settingsService{
		sr:     sr,
		secret: secret,
	}
}

type webhookSettings struct {
	WebhookURL string
}

func (s webhookSettings) Validate() error {
	return v.ValidateStruct(&s,
		v.Field(&s.WebhookURL, is.URL),
	)
}

// Get returns the stored webhook URL, or "" when none was ever saved.
func (s *settingsService) Get(ctx context.Context) (string, error) {
	value, ok, err := s.sr.Get(ctx, repository.WebhookURLKey)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSettingsLoad, err)
	}
	if !ok || value == "" || s.secret == "" {
		return value, nil
	}

	plain, err := utils.Decrypt(value, s.secret)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSettingsLoad, err)
	}
	return plain, nil
}

// Set validates and persists the webhook URL. An empty value clears it.
func (s *settingsService) Set(ctx context.Context, webhookURL string) error {
	webhookURL = strings.TrimSpace(webhookURL)

	if err := (webhookSettings{WebhookURL: webhookURL}).Validate(); err != nil {
		slog.Info(err.Error())
		return err
	}

	value := webhookURL
	if s.secret != "" && value != "" {
		sealed, err := utils.Encrypt(value, s.secret)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrSettingsSave, err)
		}
		value = sealed
	}

	if err := s.sr.Set(ctx, repository.WebhookURLKey, value); err != nil {
		return fmt.Errorf("%w: %v", ErrSettingsSave, err)
	}
	return nil
}
