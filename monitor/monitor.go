// Package monitor runs monitoring passes over active competitors: it gates each
// competitor on its config, scrapes its website, scores the candidates and
// stores the ones that were not seen before.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/kova98/rivalwatch/data"
	"github.com/kova98/rivalwatch/enums"
	"github.com/kova98/rivalwatch/metrics"
	"github.com/kova98/rivalwatch/scoring"
	"github.com/kova98/rivalwatch/sources"
)

// dedupPrefixChars is how much of a candidate title is used to look for an
// already stored update.
const dedupPrefixChars = 50

type Outcome string

const (
	OutcomeDisabled Outcome = "disabled"
	OutcomeTooSoon  Outcome = "too_soon"
	OutcomeBusy     Outcome = "busy"
	OutcomeChecked  Outcome = "checked"
	OutcomeFailed   Outcome = "failed"
)

type CompetitorStore interface {
	ListActiveCompetitors() ([]data.Competitor, error)
}

type ConfigStore interface {
	GetConfigByCompetitorID(competitorID int64) (*data.MonitoringConfig, error)
	TouchLastChecked(configID int64, prev *time.Time, now time.Time) (bool, error)
}

type UpdateStore interface {
	FindUpdateByTitlePrefix(competitorID int64, prefix string) (*data.Update, error)
	CreateUpdate(update data.Update) (data.Update, error)
}

type Scraper interface {
	Scrape(ctx context.Context, website string) ([]sources.Candidate, error)
}

// Dispatcher receives the updates created by a pass once the pass is over.
type Dispatcher interface {
	Dispatch(ctx context.Context, updates []data.CompetitorUpdate) int
}

type Monitor struct {
	logger      *slog.Logger
	competitors CompetitorStore
	configs     ConfigStore
	updates     UpdateStore
	scraper     Scraper
	dispatcher  Dispatcher
	now         func() time.Time

	mu     sync.Mutex
	claims map[int64]struct{}
}

func NewMonitor(
	logger *slog.Logger,
	competitors CompetitorStore,
	configs ConfigStore,
	updates UpdateStore,
	scraper Scraper,
	dispatcher Dispatcher,
) *Monitor {
	return &Monitor{
		logger:      logger,
		competitors: competitors,
		configs:     configs,
		updates:     updates,
		scraper:     scraper,
		dispatcher:  dispatcher,
		now:         time.Now,
		claims:      make(map[int64]struct{}),
	}
}

func (m *Monitor) Start(ctx context.Context, tick time.Duration) {
	m.logger.Info("monitor started", "tick", tick.String())
	m.runLogged(ctx)

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return
		case <-ticker.C:
			m.runLogged(ctx)
		}
	}
}

func (m *Monitor) runLogged(ctx context.Context) {
	if _, err := m.RunPass(ctx); err != nil {
		m.logger.Error("monitoring pass failed", "error", err)
	}
}

// RunPass checks every active competitor once, in id order, and returns the
// updates it created. A failure on one competitor is logged and the pass moves
// on. High-impact updates are handed to the dispatcher after the whole batch.
func (m *Monitor) RunPass(ctx context.Context) ([]data.Update, error) {
	start := time.Now()

	competitors, err := m.competitors.ListActiveCompetitors()
	if err != nil {
		return nil, fmt.Errorf("run pass: %w", err)
	}

	var created []data.CompetitorUpdate
	for i, competitor := range competitors {
		if ctx.Err() != nil {
			m.logger.Info("monitoring pass interrupted", "remaining", len(competitors)-i)
			break
		}

		outcome, updates, err := m.CheckCompetitor(ctx, competitor)
		metrics.CompetitorChecks.WithLabelValues(string(outcome)).Inc()
		if err != nil {
			m.logger.Error("check competitor",
				"competitor_id", competitor.ID,
				"competitor", competitor.Name,
				"error", err)
		}
		created = append(created, updates...)
	}

	if m.dispatcher != nil && len(created) > 0 {
		m.dispatcher.Dispatch(ctx, created)
	}

	metrics.MonitorPasses.Inc()
	metrics.MonitorPassDuration.Observe(time.Since(start).Seconds())
	m.logger.Info("monitoring pass finished",
		"competitors", len(competitors),
		"new_updates", len(created),
		"elapsed_ms", time.Since(start).Milliseconds())

	result := make([]data.Update, 0, len(created))
	for _, u := range created {
		result = append(result, u.Update)
	}
	return result, nil
}

// CheckCompetitor runs the ingestion gate for a single competitor. A fetch
// failure still advances last_checked; a storage failure does not. Updates
// created before an error are still returned.
func (m *Monitor) CheckCompetitor(ctx context.Context, competitor data.Competitor) (Outcome, []data.CompetitorUpdate, error) {
	log := m.logger.With("competitor_id", competitor.ID, "competitor", competitor.Name)

	if !m.claim(competitor.ID) {
		log.Debug("competitor is being checked by another pass")
		return OutcomeBusy, nil, nil
	}
	defer m.release(competitor.ID)

	cfg, err := m.configs.GetConfigByCompetitorID(competitor.ID)
	if err != nil {
		return OutcomeFailed, nil, err
	}
	if cfg == nil || !cfg.IsEnabled {
		log.Debug("monitoring disabled")
		return OutcomeDisabled, nil, nil
	}

	now := m.now()
	if cfg.LastChecked != nil && now.Sub(*cfg.LastChecked) < cfg.Interval() {
		log.Debug("checked recently", "last_checked", cfg.LastChecked)
		return OutcomeTooSoon, nil, nil
	}

	candidates, err := m.scraper.Scrape(ctx, competitor.Website)
	if err != nil {
		metrics.FetchFailures.Inc()
		log.Warn("scrape website", "website", competitor.Website, "error", err)
		candidates = nil
	}

	var created []data.CompetitorUpdate
	for _, candidate := range candidates {
		update, isNew, err := m.ingest(competitor, candidate, now)
		if err != nil {
			// last_checked stays put so the next tick retries this competitor
			return OutcomeFailed, created, fmt.Errorf("ingest candidate %q: %w", candidate.Title, err)
		}
		if !isNew {
			continue
		}
		created = append(created, data.CompetitorUpdate{Update: update, CompetitorName: competitor.Name})
	}

	touched, err := m.configs.TouchLastChecked(cfg.ID, cfg.LastChecked, now)
	if err != nil {
		return OutcomeFailed, created, err
	}
	if !touched {
		log.Warn("last_checked was advanced concurrently")
	}

	log.Info("competitor checked", "candidates", len(candidates), "new_updates", len(created))
	return OutcomeChecked, created, nil
}

func (m *Monitor) ingest(competitor data.Competitor, candidate sources.Candidate, now time.Time) (data.Update, bool, error) {
	existing, err := m.updates.FindUpdateByTitlePrefix(competitor.ID, titlePrefix(candidate.Title))
	if err != nil {
		return data.Update{}, false, err
	}
	if existing != nil {
		return data.Update{}, false, nil
	}

	assessment := scoring.Assess(candidate.Title, candidate.Content)

	url := candidate.URL
	if url == "" {
		url = competitor.Website
	}

	update, err := m.updates.CreateUpdate(data.Update{
		CompetitorID: competitor.ID,
		Title:        candidate.Title,
		Content:      candidate.Content,
		URL:          url,
		Category:     assessment.Category,
		DetectedAt:   now,
		ImpactScore:  assessment.ImpactScore,
		IsHighImpact: assessment.IsHighImpact,
		Source:       enums.SourceWebsite,
	})
	if err != nil {
		return data.Update{}, false, err
	}

	metrics.UpdatesIngested.WithLabelValues(string(update.Category)).Inc()
	return update, true, nil
}

func (m *Monitor) claim(competitorID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, busy := m.claims[competitorID]; busy {
		return false
	}
	m.claims[competitorID] = struct{}{}
	return true
}

func (m *Monitor) release(competitorID int64) {
	m.mu.Lock()
	delete(m.claims, competitorID)
	m.mu.Unlock()
}

func titlePrefix(title string) string {
	if utf8.RuneCountInString(title) <= dedupPrefixChars {
		return title
	}
	return string([]rune(title)[:dedupPrefixChars])
}
