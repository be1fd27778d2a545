package latefee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/chama/internal/chama"
	"github.com/MrJamesThe3rd/chama/internal/member"
	"github.com/MrJamesThe3rd/chama/internal/snapshot"
)

//go:generate mockgen -source=sweeper.go -destination=sweeper_mock.go -package=latefee
type Loader interface {
	Load(ctx context.Context) (*snapshot.Snapshot, error)
}

type Poster interface {
	ApplyLatePenalty(ctx context.Context, m *chama.Member, month time.Time, fee int64) (*member.Receipt, error)
}

type Sweeper struct {
	loader Loader
	poster Poster
	now    func() time.Time
}

func NewSweeper(loader Loader, poster Poster) *Sweeper {
	return &Sweeper{loader: loader, poster: poster, now: time.Now}
}

// WithClock returns a copy of the sweeper reading time from now.
func (s *Sweeper) WithClock(now func() time.Time) *Sweeper {
	c := *s
	c.now = now

	return &c
}

// Result summarizes a sweep.
type Result struct {
	Posted  []Penalty
	Skipped int // Already posted by a concurrent or earlier sweep
}

// Run loads a fresh snapshot and posts every due penalty, each in its own unit
// of work. It stops at the first store error and returns what was posted up to
// that point; running it again picks up where it stopped.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	var res Result

	snap, err := s.loader.Load(ctx)
	if err != nil {
		return res, fmt.Errorf("loading snapshot: %w", err)
	}

	for _, p := range Plan(snap, s.now()) {
		if _, err := s.poster.ApplyLatePenalty(ctx, p.Member, p.Month, p.Fee); err != nil {
			if errors.Is(err, chama.ErrDuplicatePosting) {
				res.Skipped++
				continue
			}

			return res, fmt.Errorf("posting late fee for %s %s: %w", p.Member.Name, chama.PeriodKey(p.Month), err)
		}

		res.Posted = append(res.Posted, p)
	}

	return res, nil
}

// Start runs the sweep once immediately, then every interval until ctx is
// cancelled.
func (s *Sweeper) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.sweep(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *Sweeper) sweep(ctx context.Context) {
	res, err := s.Run(ctx)
	if err != nil {
		slog.Error("late fee sweep failed", "error", err, "posted", len(res.Posted))
		return
	}

	if len(res.Posted) > 0 || res.Skipped > 0 {
		slog.Info("late fee sweep", "posted", len(res.Posted), "skipped", res.Skipped)
	}
}
