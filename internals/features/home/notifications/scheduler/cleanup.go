package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"university_backend/internals/features/home/notifications/service"
	"university_backend/internals/helpers/metrics"
)

// Cleanup menghapus notifikasi yang lebih tua dari retensi.
type Cleanup struct {
	Svc       *service.NotificationService
	Retention time.Duration
	now       func() time.Time
}

func NewCleanup(svc *service.NotificationService, retentionDays int) *Cleanup {
	if retentionDays <= 0 {
		retentionDays = 30
	}
	return &Cleanup{
		Svc:       svc,
		Retention: time.Duration(retentionDays) * 24 * time.Hour,
		now:       time.Now,
	}
}

func (c *Cleanup) Run(ctx context.Context) (int64, error) {
	log.Println("[CLEANUP] Menjalankan pembersihan notifikasi...")

	cutoff := c.now().Add(-c.Retention)
	n, err := c.Svc.PurgeBefore(ctx, cutoff)
	if n > 0 {
		metrics.NotificationsPurged.Add(float64(n))
	}
	if err != nil {
		log.Printf("[CLEANUP ERROR] Gagal hapus notifikasi: %v", err)
		return n, err
	}
	if n == 0 {
		log.Println("[CLEANUP] Tidak ada notifikasi yang memenuhi syarat dihapus")
	} else {
		log.Printf("[CLEANUP] %d notifikasi lama dihapus", n)
	}
	return n, nil
}

// Start mendaftarkan job ke cron; panggil Stop() dari *cron.Cron saat shutdown.
func Start(cleanup *Cleanup, spec string) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cron.DefaultLogger)))
	if _, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		defer cancel()
		_, _ = cleanup.Run(ctx)
	}); err != nil {
		return nil, err
	}
	c.Start()
	return c, nil
}
