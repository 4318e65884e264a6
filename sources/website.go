package sources

import (
	"context"
	"log/slog"
)

// WebsiteScraper fetches a competitor's site and extracts update candidates from it.
type WebsiteScraper struct {
	logger  *slog.Logger
	fetcher *Fetcher
}

func NewWebsiteScraper(logger *slog.Logger, fetcher *Fetcher) *WebsiteScraper {
	return &WebsiteScraper{
		logger:  logger,
		fetcher: fetcher,
	}
}

func (s *WebsiteScraper) Scrape(ctx context.Context, website string) ([]Candidate, error) {
	body, err := s.fetcher.Fetch(ctx, website)
	if err != nil {
		return nil, err
	}

	candidates, err := ExtractCandidates(body, website)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("scraped website", "website", website, "bytes", len(body), "candidates", len(candidates))
	return candidates, nil
}
