package job

import (
	"log/slog"
	"sync"
	"time"

	"github.com/maheshrc27/story-scheduler/internal/composer"
	"github.com/maheshrc27/story-scheduler/internal/service"
	"github.com/robfig/cron/v3"
)

const CleanupSchedule = "@every 10m"

// CleanupJob drops video previews and abandoned drafts older than ttl.
type CleanupJob struct {
	vs     service.VideoService
	drafts *composer.Registry
	ttl    time.Duration
	now    func() time.Time
}

func NewCleanupJob(vs service.VideoService, drafts *composer.Registry, ttl time.Duration) *CleanupJob {
	return &CleanupJob{
		vs:     vs,
		drafts: drafts,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Schedule registers the job on c.
func (j *CleanupJob) Schedule(c *cron.Cron) (cron.EntryID, error) {
	return c.AddFunc(CleanupSchedule, j.Cleanup)
}

func (j *CleanupJob) Cleanup() {
	cutoff := j.now().Add(-j.ttl)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		n, err := j.vs.PruneOlderThan(cutoff)
		if err != nil {
			slog.Info(err.Error())
		}
		if n > 0 {
			slog.Info("pruned video previews", "count", n)
		}
	}()

	go func() {
		defer wg.Done()
		if n := j.drafts.PruneOlderThan(cutoff); n > 0 {
			slog.Info("pruned abandoned drafts", "count", n)
		}
	}()

	wg.Wait()
}
