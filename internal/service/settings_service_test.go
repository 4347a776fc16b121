package service

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type memSettings struct {
	values map[string]string
	err    error
}

func newMemSettings() *memSettings {
	return &memSettings{values: map[string]string{}}
}

func (m *memSettings) Get(ctx context.Context, name string) (string, bool, error) {
	if m.err != nil {
		return "", false, m.err
	}
	v, ok := m.values[name]
	return v, ok, nil
}

func (m *memSettings) Set(ctx context.Context, name, value string) error {
	if m.err != nil {
		return m.err
	}
	m.values[name] = value
	return nil
}

func TestSettingsDefaultIsEmpty(t *testing.T) {
	s := NewSettingsService(newMemSettings(), "")

	got, err := s.Get(context.Background())
	if err != nil || got != "" {
		t.Errorf("Get() = %q, %v", got, err)
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	for _, secret := range []string{"", "top-secret"} {
		repo := newMemSettings()
		s := NewSettingsService(repo, secret)
		ctx := context.Background()

		url := "https://hooks.example.com/stories"
		if err := s.Set(ctx, "  "+url+" "); err != nil {
			t.Fatal(err)
		}
		got, err := s.Get(ctx)
		if err != nil || got != url {
			t.Errorf("secret %q: Get() = %q, %v", secret, got, err)
		}

		stored := repo.values["webhookUrl"]
		if secret != "" && strings.Contains(stored, "hooks.example.com") {
			t.Errorf("webhook stored in the clear: %q", stored)
		}
	}
}

func TestSettingsClear(t *testing.T) {
	s := NewSettingsService(newMemSettings(), "top-secret")
	ctx := context.Background()

	_ = s.Set(ctx, "https://hooks.example.com")
	if err := s.Set(ctx, ""); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(ctx); got != "" {
		t.Errorf("Get() = %q after clearing", got)
	}
}

func TestSettingsRejectsInvalidURL(t *testing.T) {
	repo := newMemSettings()
	s := NewSettingsService(repo, "")

	if err := s.Set(context.Background(), "not a url"); err == nil {
		t.Error("expected validation error")
	}
	if len(repo.values) != 0 {
		t.Error("invalid url was stored")
	}
}

func TestSettingsStorageErrors(t *testing.T) {
	repo := newMemSettings()
	repo.err = errors.New("database is locked")
	s := NewSettingsService(repo, "")

	if _, err := s.Get(context.Background()); !errors.Is(err, ErrSettingsLoad) {
		t.Errorf("Get: %v", err)
	}
	if err := s.Set(context.Background(), "https://hooks.example.com"); !errors.Is(err, ErrSettingsSave) {
		t.Errorf("Set: %v", err)
	}
}
