package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/technexus/blog-server/internal/metrics"
	"github.com/technexus/blog-server/internal/repo"
)

// Run starts a background cron that publishes articles whose scheduled
// publish time has arrived. The sweep runs every minute; articles created
// with a future publishedAt go live without an author action. Blocks, so
// call it in a goroutine.
func Run(articles *repo.ArticleRepo) {
	c := cron.New()

	sweep := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		n, err := articles.PublishDue(ctx, time.Now())
		if err != nil {
			slog.Error("publish sweep failed", "error", err)
			metrics.IncPublishSweepErrors()
			return
		}
		if n > 0 {
			slog.Info("publish sweep", "published", n)
			metrics.AddScheduledPublishes(n)
		}
	}

	if _, err := c.AddFunc("* * * * *", sweep); err != nil {
		slog.Error("scheduler: invalid cron expression", "error", err)
		return
	}

	sweep() // catch up on anything due before the first tick
	c.Run()
}
