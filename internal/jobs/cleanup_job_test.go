package job

import (
	"strings"
	"testing"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/composer"
	"github.com/maheshrc27/story-scheduler/internal/service"
	"github.com/robfig/cron/v3"
)

func TestCleanupPrunesExpired(t *testing.T) {
	vs := service.NewVideoService(nil, 0)
	drafts := composer.NewRegistry(composer.Deps{Platforms: service.NewPlatformService()})

	video, err := vs.Accept("clip.mp4", "video/mp4", 4, strings.NewReader("clip"))
	if err != nil {
		t.Fatal(err)
	}
	id, _, err := drafts.Open(time.Time{})
	if err != nil {
		t.Fatal(err)
	}

	job := NewCleanupJob(vs, drafts, time.Hour)
	job.Cleanup()
	if _, err := vs.Get(video.ID); err != nil {
		t.Error("fresh preview was pruned")
	}
	if _, err := drafts.Get(id); err != nil {
		t.Error("fresh draft was pruned")
	}

	job.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	job.Cleanup()
	if _, err := vs.Get(video.ID); err == nil {
		t.Error("expired preview survived")
	}
	if _, err := drafts.Get(id); err == nil {
		t.Error("expired draft survived")
	}
}

func TestSchedule(t *testing.T) {
	c := cron.New()
	job := NewCleanupJob(service.NewVideoService(nil, 0), composer.NewRegistry(composer.Deps{}), time.Hour)

	if _, err := job.Schedule(c); err != nil {
		t.Fatal(err)
	}
	if len(c.Entries()) != 1 {
		t.Errorf("got %d entries", len(c.Entries()))
	}
}
