// Package dashboard assembles the landing-page market summary from
// provider payloads. The quotation and topic payload shapes are owned
// by the provider, so fields are plucked with tolerant jsonpath lookups
// instead of rigid structs.
package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rs/zerolog"

	"github.com/quantedu/fundboard/pkg/provider"
)

// maxTopics bounds the hot-topic list on the landing page.
const maxTopics = 5

// IndexQuote is one market index reading.
type IndexQuote struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Change float64 `json:"change"`
}

// Topic is one market hot topic headline.
type Topic struct {
	Title       string `json:"title"`
	Summary     string `json:"summary,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// Summary is the landing-page market snapshot. Degraded is true when
// either underlying fetch served a substitute payload.
type Summary struct {
	Indices   []IndexQuote `json:"indices"`
	Topics    []Topic      `json:"topics"`
	Degraded  bool         `json:"degraded"`
	Message   string       `json:"message,omitempty"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// Service builds market summaries through the gateway client.
type Service struct {
	gateway *provider.Client
	logger  zerolog.Logger
}

// New creates a dashboard service.
func New(gateway *provider.Client, logger zerolog.Logger) (*Service, error) {
	if gateway == nil {
		return nil, fmt.Errorf("gateway client is required")
	}
	return &Service{
		gateway: gateway,
		logger:  logger.With().Str("component", "dashboard").Logger(),
	}, nil
}

// Snapshot fetches the latest quotations and hot topics and condenses
// them. Upstream trouble degrades the summary, it never fails it.
func (s *Service) Snapshot(ctx context.Context) (Summary, error) {
	quotes, err := s.gateway.LatestQuotations(ctx, provider.QuotationsRequest{})
	if err != nil {
		return Summary{}, fmt.Errorf("failed to fetch quotations: %w", err)
	}

	topics, err := s.gateway.HotTopics(ctx, provider.HotTopicRequest{})
	if err != nil {
		return Summary{}, fmt.Errorf("failed to fetch hot topics: %w", err)
	}

	summary := Summary{
		Indices:   s.indices(quotes.Data),
		Topics:    s.topics(topics.Data),
		Degraded:  quotes.Degraded || topics.Degraded,
		FetchedAt: olderOf(quotes.FetchedAt, topics.FetchedAt),
	}
	if quotes.Message != "" {
		summary.Message = quotes.Message
	} else {
		summary.Message = topics.Message
	}

	s.logger.Debug().
		Int("indices", len(summary.Indices)).
		Int("topics", len(summary.Topics)).
		Bool("degraded", summary.Degraded).
		Msg("Market snapshot assembled")

	return summary, nil
}

func (s *Service) indices(raw json.RawMessage) []IndexQuote {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.logger.Warn().Err(err).Msg("Undecodable quotations payload")
		return nil
	}

	entries := pluckList(payload, "$.quotations", "$.indexList", "$.list", "$.items")
	var out []IndexQuote
	for _, entry := range entries {
		name, ok := pluckString(entry, "$.indexName", "$.name")
		if !ok {
			continue
		}
		value, ok := pluckNumber(entry, "$.currentPoint", "$.point", "$.close", "$.value")
		if !ok {
			continue
		}
		change, _ := pluckNumber(entry, "$.changePercent", "$.changePct", "$.change")
		out = append(out, IndexQuote{Name: name, Value: value, Change: change})
	}
	return out
}

func (s *Service) topics(raw json.RawMessage) []Topic {
	var payload any
	if err := json.Unmarshal(raw, &payload); err != nil {
		s.logger.Warn().Err(err).Msg("Undecodable hot topic payload")
		return nil
	}

	entries := pluckList(payload, "$.topics", "$.list", "$.items")
	var out []Topic
	for _, entry := range entries {
		title, ok := pluckString(entry, "$.title", "$.topicTitle", "$.name")
		if !ok {
			continue
		}
		summary, _ := pluckString(entry, "$.summary", "$.digest")
		published, _ := pluckString(entry, "$.publishedDate", "$.publishDate", "$.date")
		out = append(out, Topic{Title: title, Summary: summary, PublishedAt: published})
		if len(out) == maxTopics {
			break
		}
	}
	return out
}

// pluckList finds the first path holding a list. A payload that already
// is a list passes through unchanged.
func pluckList(payload any, paths ...string) []any {
	if list, ok := payload.([]any); ok {
		return list
	}
	for _, path := range paths {
		jval, err := jsonpath.Get(path, payload)
		if err != nil {
			continue
		}
		if list, ok := jval.([]any); ok {
			return list
		}
	}
	return nil
}

func pluckString(obj any, paths ...string) (string, bool) {
	for _, path := range paths {
		jval, err := jsonpath.Get(path, obj)
		if err != nil {
			continue
		}
		if s, ok := jval.(string); ok && s != "" {
			return s, true
		}
	}
	return "", false
}

// pluckNumber reads a numeric field. Providers ship numbers as strings
// often enough that "3245.6" and "1.2%" both count.
func pluckNumber(obj any, paths ...string) (float64, bool) {
	for _, path := range paths {
		jval, err := jsonpath.Get(path, obj)
		if err != nil {
			continue
		}
		switch v := jval.(type) {
		case float64:
			return v, true
		case string:
			s := strings.TrimSuffix(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), "%")
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

func olderOf(a, b time.Time) time.Time {
	if a.IsZero() {
		return b
	}
	if b.IsZero() || a.Before(b) {
		return a
	}
	return b
}
