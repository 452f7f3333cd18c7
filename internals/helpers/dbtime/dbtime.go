package dbtime

import (
	"strings"
	"sync"
	"time"

	"university_backend/internals/configs"
)

var (
	locOnce sync.Once
	loc     *time.Location
)

// CampusLocation: zona waktu kampus dari APP_TIMEZONE.
// Fallback: Asia/Jakarta, lalu UTC.
func CampusLocation() *time.Location {
	locOnce.Do(func() {
		loc = loadLocation(configs.GetEnv("APP_TIMEZONE", "Asia/Jakarta"))
	})
	return loc
}

func loadLocation(name string) *time.Location {
	if l, err := time.LoadLocation(strings.TrimSpace(name)); err == nil {
		return l
	}
	if l, err := time.LoadLocation("Asia/Jakarta"); err == nil {
		return l
	}
	return time.UTC
}

// ParseDay: "YYYY-MM-DD" → awal hari di loc. String kosong → nil.
func ParseDay(raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
