package service

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0x0D, 'I', 'H', 'D', 'R'}

func TestAcceptStoresPreview(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewVideoService(fs, 1024)

	video, err := s.Accept("clip.mp4", "video/mp4", 10, strings.NewReader("0123456789"))
	if err != nil {
		t.Fatal(err)
	}
	if video.ID == "" || video.PreviewURL != "/api/videos/"+video.ID || video.FileSize != 10 {
		t.Errorf("unexpected video %+v", video)
	}
	if ok, _ := afero.Exists(fs, video.StoragePath); !ok {
		t.Errorf("preview not written to %s", video.StoragePath)
	}

	f, err := s.Open(video.ID)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	b, _ := io.ReadAll(f)
	if string(b) != "0123456789" {
		t.Errorf("content = %q", b)
	}
}

func TestAcceptRejectsNonVideo(t *testing.T) {
	s := NewVideoService(nil, 0)

	tests := []struct {
		name        string
		contentType string
		content     []byte
	}{
		{"declared image", "image/png", []byte("whatever")},
		{"missing type", "", []byte("whatever")},
		{"png posing as video", "video/mp4", pngHeader},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Accept("file", tt.contentType, int64(len(tt.content)), bytes.NewReader(tt.content))
			if !errors.Is(err, ErrNotVideo) {
				t.Errorf("got %v, want ErrNotVideo", err)
			}
		})
	}
}

func TestAcceptEnforcesMaxSize(t *testing.T) {
	s := NewVideoService(nil, 4)

	if _, err := s.Accept("clip.mp4", "video/mp4", 10, strings.NewReader("0123456789")); !errors.Is(err, ErrVideoTooLarge) {
		t.Errorf("declared size: %v", err)
	}
	if _, err := s.Accept("clip.mp4", "video/mp4", 0, strings.NewReader("0123456789")); !errors.Is(err, ErrVideoTooLarge) {
		t.Errorf("actual size: %v", err)
	}
	if _, err := s.Accept("clip.mp4", "video/mp4", 4, strings.NewReader("0123")); err != nil {
		t.Errorf("at limit: %v", err)
	}
}

func TestRemoveAndPrune(t *testing.T) {
	s := NewVideoService(nil, 0)

	a, _ := s.Accept("a.mp4", "video/mp4", 1, strings.NewReader("a"))
	b, _ := s.Accept("b.mp4", "video/mp4", 1, strings.NewReader("b"))

	if err := s.Remove(a.ID); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(a.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("Get after remove: %v", err)
	}
	if err := s.Remove(a.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("double remove: %v", err)
	}

	if n, err := s.PruneOlderThan(time.Now().Add(-time.Hour)); err != nil || n != 0 {
		t.Errorf("pruned %d, %v", n, err)
	}
	if n, err := s.PruneOlderThan(time.Now().Add(time.Hour)); err != nil || n != 1 {
		t.Errorf("pruned %d, %v", n, err)
	}
	if _, err := s.Open(b.ID); !errors.Is(err, ErrVideoNotFound) {
		t.Errorf("Open after prune: %v", err)
	}
}
