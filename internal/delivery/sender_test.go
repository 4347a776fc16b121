package delivery

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/models"
	"github.com/maheshrc27/story-scheduler/internal/transfer"
	"github.com/maheshrc27/story-scheduler/pkg/utils"
)

func samplePayload(url string) *transfer.Payload {
	return &transfer.Payload{
		WebhookURL:        url,
		Video:             &models.Video{ID: "v1", FileName: "clip.mp4", FileType: "video/mp4", FileSize: 11},
		VideoContent:      strings.NewReader("video-bytes"),
		Caption:           "hello",
		Platforms:         []string{"instagram", "youtube"},
		ScheduledDate:     time.Date(2025, 5, 18, 0, 0, 0, 0, time.UTC),
		ScheduledTime:     "14:30",
		IsRecurring:       true,
		RecurrencePattern: utils.RecurrenceCustom,
		SelectedDays:      []time.Weekday{time.Monday, time.Friday},
	}
}

func TestNewSelectsMode(t *testing.T) {
	if s, err := New("", 0); err != nil {
		t.Fatal(err)
	} else if _, ok := s.(*LogSender); !ok {
		t.Errorf("default mode gave %T", s)
	}
	if s, err := New(ModeWebhook, 0); err != nil {
		t.Fatal(err)
	} else if _, ok := s.(*WebhookSender); !ok {
		t.Errorf("webhook mode gave %T", s)
	}
	if _, err := New("carrier-pigeon", 0); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestLogSenderWaitsAndSucceeds(t *testing.T) {
	s := NewLogSender(20 * time.Millisecond)

	started := time.Now()
	res, err := s.Send(context.Background(), samplePayload("https://hook.example.com"))
	if err != nil {
		t.Fatal(err)
	}
	if res.Mode != ModeLog {
		t.Errorf("mode = %q", res.Mode)
	}
	if elapsed := time.Since(started); elapsed < 20*time.Millisecond {
		t.Errorf("returned after %v, before the delay", elapsed)
	}
}

func TestLogSenderHonoursCancellation(t *testing.T) {
	s := NewLogSender(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Send(ctx, samplePayload("https://hook.example.com")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestWebhookSenderPostsMultipart(t *testing.T) {
	got := make(chan *http.Request, 1)
	var video string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		f, _, err := r.FormFile("video")
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		b, _ := io.ReadAll(f)
		f.Close()
		video = string(b)
		got <- r
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	res, err := NewWebhookSender(nil).Send(context.Background(), samplePayload(srv.URL))
	if err != nil {
		t.Fatal(err)
	}
	if res.StatusCode != http.StatusAccepted || res.Mode != ModeWebhook {
		t.Errorf("unexpected result %+v", res)
	}

	r := <-got
	want := map[string]string{
		"caption":           "hello",
		"platforms":         `["instagram","youtube"]`,
		"scheduledDate":     "2025-05-18T00:00:00Z",
		"scheduledTime":     "14:30",
		"isRecurring":       "true",
		"recurrencePattern": "custom",
		"selectedDays":      "[1,5]",
	}
	for k, v := range want {
		if r.FormValue(k) != v {
			t.Errorf("%s = %q, want %q", k, r.FormValue(k), v)
		}
	}
	if video != "video-bytes" {
		t.Errorf("video = %q", video)
	}
}

func TestWebhookSenderReportsHTTPErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewWebhookSender(nil).Send(context.Background(), samplePayload(srv.URL)); err == nil {
		t.Error("expected error for 500 response")
	}
	if _, err := NewWebhookSender(nil).Send(context.Background(), samplePayload("")); err == nil {
		t.Error("expected error for empty url")
	}
}

func TestPayloadFieldsOmitRecurrenceWhenNotRecurring(t *testing.T) {
	p := samplePayload("https://hook.example.com")
	p.IsRecurring = false
	p.Platforms = nil

	fields, err := p.Fields()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := fields["recurrencePattern"]; ok {
		t.Error("recurrencePattern present for non-recurring post")
	}
	if _, ok := fields["selectedDays"]; ok {
		t.Error("selectedDays present for non-recurring post")
	}
	if fields["isRecurring"] != "false" || fields["platforms"] != "[]" {
		t.Errorf("unexpected fields %v", fields)
	}
}
