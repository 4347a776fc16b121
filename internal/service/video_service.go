package service

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/h2non/filetype"
	"github.com/h2non/filetype/types"
	"github.com/maheshrc27/story-scheduler/internal/models"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/afero"
)

const previewDir = "/previews"

var (
	ErrNotVideo      = errors.New("please select a video file")
	ErrVideoTooLarge = errors.New("video exceeds the maximum upload size")
	ErrVideoNotFound = errors.New("video not found")
)

type VideoService interface {
	Accept(name, contentType string, size int64, r io.Reader) (*models.Video, error)
	AcceptFile(fh *multipart.FileHeader) (*models.Video, error)
	Get(id string) (*models.Video, error)
	Open(id string) (afero.File, error)
	Remove(id string) error
	PruneOlderThan(cutoff time.Time) (int, error)
}

type videoService struct {
	fs      afero.Fs
	maxSize int64

	mu     sync.RWMutex
	videos map[string]*models.Video
}

// NewVideoService keeps accepted uploads in fs. A nil fs means memory.
func NewVideoService(fs afero.Fs, maxSize int64) VideoService {
	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	return &videoService{
		fs:      fs,
		maxSize: maxSize,
		videos:  make(map[string]*models.Video),
	}
}

func (s *videoService) AcceptFile(fh *multipart.FileHeader) (*models.Video, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	return s.Accept(fh.Filename, fh.Header.Get("Content-Type"), fh.Size, f)
}

func (s *videoService) Accept(name, contentType string, size int64, r io.Reader) (*models.Video, error) {
	if !strings.HasPrefix(strings.ToLower(contentType), "video/") {
		slog.Info("rejected upload", "file", name, "content_type", contentType)
		return nil, ErrNotVideo
	}
	if s.maxSize > 0 && size > s.maxSize {
		return nil, s.tooLarge()
	}

	limit := s.maxSize
	if limit <= 0 {
		limit = 1<<63 - 1
	} else {
		limit++
	}
	content, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("error reading file content: %w", err)
	}
	if s.maxSize > 0 && int64(len(content)) > s.maxSize {
		return nil, s.tooLarge()
	}

	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	kind, _ := filetype.Match(content)
	if kind != types.Unknown {
		if !filetype.IsVideo(content) {
			slog.Info("rejected upload", "file", name, "detected", kind.MIME.Value)
			return nil, ErrNotVideo
		}
		contentType = kind.MIME.Value
		ext = kind.Extension
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	storagePath := path.Join(previewDir, id)
	if ext != "" {
		storagePath += "." + ext
	}
	if err := s.fs.MkdirAll(previewDir, 0o755); err != nil {
		return nil, err
	}
	if err := afero.WriteFile(s.fs, storagePath, content, 0o644); err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	video := &models.Video{
		ID:          id,
		FileName:    name,
		FileType:    contentType,
		FileSize:    int64(len(content)),
		PreviewURL:  "/api/videos/" + id,
		UploadedAt:  time.Now(),
		StoragePath: storagePath,
	}

	s.mu.Lock()
	s.videos[id] = video
	s.mu.Unlock()

	slog.Info("video accepted", "id", id, "file", name, "size", humanize.IBytes(uint64(video.FileSize)))
	return cloneVideo(video), nil
}

func (s *videoService) tooLarge() error {
	return fmt.Errorf("%w (max: %s)", ErrVideoTooLarge, humanize.IBytes(uint64(s.maxSize)))
}

func (s *videoService) Get(id string) (*models.Video, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	video, ok := s.videos[id]
	if !ok {
		return nil, ErrVideoNotFound
	}
	return cloneVideo(video), nil
}

func (s *videoService) Open(id string) (afero.File, error) {
	video, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	f, err := s.fs.Open(video.StoragePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrVideoNotFound
		}
		return nil, err
	}
	return f, nil
}

func (s *videoService) Remove(id string) error {
	s.mu.Lock()
	video, ok := s.videos[id]
	delete(s.videos, id)
	s.mu.Unlock()

	if !ok {
		return ErrVideoNotFound
	}
	if err := s.fs.Remove(video.StoragePath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// PruneOlderThan drops previews uploaded before cutoff and reports how many
// were removed.
func (s *videoService) PruneOlderThan(cutoff time.Time) (int, error) {
	s.mu.RLock()
	var expired []string
	for id, video := range s.videos {
		if video.UploadedAt.Before(cutoff) {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	removed := 0
	for _, id := range expired {
		if err := s.Remove(id); err != nil && !errors.Is(err, ErrVideoNotFound) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

func cloneVideo(v *models.Video) *models.Video {
	c := *v
	return &c
}
