// Package trends aggregates recent competitor updates into named trends.
package trends

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/kova98/rivalwatch/data"
	"github.com/kova98/rivalwatch/enums"
	"github.com/kova98/rivalwatch/metrics"
)

const (
	DefaultWindowDays = 30

	minCategoryUpdates   = 3
	minCompetitorUpdates = 5

	// confidence reaches 1 at this many updates
	categoryConfidenceScale   = 10.0
	competitorConfidenceScale = 15.0
)

type UpdateSource interface {
	GetUpdatesSince(since time.Time) ([]data.CompetitorUpdate, error)
}

type TrendStore interface {
	UpsertTrend(trend data.Trend) (data.Trend, error)
	SetTrendUpdates(trendID int64, updateIDs []int64) error
}

type Analyzer struct {
	logger  *slog.Logger
	updates UpdateSource
	trends  TrendStore
	now     func() time.Time
}

func NewAnalyzer(logger *slog.Logger, updates UpdateSource, trends TrendStore) *Analyzer {
	return &Analyzer{
		logger:  logger,
		updates: updates,
		trends:  trends,
		now:     time.Now,
	}
}

func (a *Analyzer) Start(ctx context.Context, tick time.Duration, windowDays int) {
	a.logger.Info("trend analyzer started", "tick", tick.String(), "window_days", windowDays)
	a.detectLogged(windowDays)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			a.logger.Info("trend analyzer stopped")
			return
		case <-ticker.C:
			a.detectLogged(windowDays)
		}
	}
}

func (a *Analyzer) detectLogged(windowDays int) {
	if _, err := a.DetectTrends(windowDays); err != nil {
		a.logger.Error("detect trends", "error", err)
	}
}

// WindowDays returns the window DetectTrends will use for days.
func WindowDays(days int) int {
	if days <= 0 {
		return DefaultWindowDays
	}
	return days
}

type group struct {
	name        string
	description string
	trendType   string
	confidence  float64
	updateIDs   []int64
}

// DetectTrends groups the updates of the last windowDays by category and by
// competitor and upserts a trend for every group that is large enough. A
// non-positive window falls back to DefaultWindowDays. Trends are returned
// category trends first, in category order, then competitor trends by name.
func (a *Analyzer) DetectTrends(windowDays int) ([]data.Trend, error) {
	windowDays = WindowDays(windowDays)

	now := a.now()
	updates, err := a.updates.GetUpdatesSince(now.AddDate(0, 0, -windowDays))
	if err != nil {
		return nil, fmt.Errorf("detect trends: %w", err)
	}

	groups := append(categoryGroups(updates, windowDays), competitorGroups(updates, windowDays)...)

	detected := make([]data.Trend, 0, len(groups))
	for _, g := range groups {
		saved, err := a.trends.UpsertTrend(data.Trend{
			Name:            g.name,
			Description:     g.description,
			TrendType:       g.trendType,
			Frequency:       len(g.updateIDs),
			ConfidenceScore: g.confidence,
			FirstDetected:   now,
			LastDetected:    now,
		})
		if err != nil {
			return detected, fmt.Errorf("detect trends: %w", err)
		}

		if err := a.trends.SetTrendUpdates(saved.ID, g.updateIDs); err != nil {
			return detected, fmt.Errorf("detect trends: %w", err)
		}
		saved.UpdateIDs = g.updateIDs

		metrics.TrendsTouched.WithLabelValues(saved.TrendType).Inc()
		detected = append(detected, saved)
	}

	a.logger.Info("trends detected", "window_days", windowDays, "updates", len(updates), "trends", len(detected))
	return detected, nil
}

func categoryGroups(updates []data.CompetitorUpdate, windowDays int) []group {
	ids := make(map[enums.Category][]int64)
	for _, u := range updates {
		ids[u.Category] = append(ids[u.Category], u.ID)
	}

	var groups []group
	for _, category := range enums.Categories {
		count := len(ids[category])
		if count < minCategoryUpdates {
			continue
		}
		groups = append(groups, group{
			name:        fmt.Sprintf("Increase in %s updates", category),
			description: fmt.Sprintf("Detected %d %s updates in the last %d days", count, category, windowDays),
			trendType:   string(category),
			confidence:  confidence(count, categoryConfidenceScale),
			updateIDs:   ids[category],
		})
	}
	return groups
}

func competitorGroups(updates []data.CompetitorUpdate, windowDays int) []group {
	ids := make(map[string][]int64)
	for _, u := range updates {
		ids[u.CompetitorName] = append(ids[u.CompetitorName], u.ID)
	}

	names := make([]string, 0, len(ids))
	for name := range ids {
		names = append(names, name)
	}
	sort.Strings(names)

	var groups []group
	for _, name := range names {
		count := len(ids[name])
		if count < minCompetitorUpdates {
			continue
		}
		groups = append(groups, group{
			name:        fmt.Sprintf("High activity from %s", name),
			description: fmt.Sprintf("%s has %d updates in the last %d days", name, count, windowDays),
			trendType:   enums.TrendTypeCompetitorActivity,
			confidence:  confidence(count, competitorConfidenceScale),
			updateIDs:   ids[name],
		})
	}
	return groups
}

func confidence(count int, scale float64) float64 {
	c := float64(count) / scale
	if c > 1 {
		return 1
	}
	return c
}
