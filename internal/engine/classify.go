package engine

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/glowgo/scheduler/internal/model"
	"github.com/glowgo/scheduler/internal/scorer"
)

// Classifier decides which events warrant appearance preparation beforehand.
// Implementations never fail the analysis: a broken capability degrades to an
// empty result.
type Classifier interface {
	DetectImportant(ctx context.Context, events []model.CalendarEvent) []model.ImportantEvent
}

// keywordCategory pairs a keyword set with the reason reported on a match.
// Categories are checked in order; the first match wins.
type keywordCategory struct {
	Keywords []string
	Reason   string
}

// Keywords is the rule table for the keyword classifier. Injected at
// construction so tests can substitute alternate tables.
type Keywords struct {
	Categories []keywordCategory

	// Broad catch-all set; a match here without a category match yields the
	// generic reason.
	Important     []string
	GenericReason string
}

// DefaultKeywords returns the built-in rule table.
func DefaultKeywords() Keywords {
	return Keywords{
		Categories: []keywordCategory{
			{
				Keywords: []string{"wedding", "bridal", "engagement"},
				Reason:   "Special celebration where you'll want to look your absolute best",
			},
			{
				Keywords: []string{"interview", "pitch", "client", "board"},
				Reason:   "Professional event where first impressions matter",
			},
			{
				Keywords: []string{"date", "anniversary"},
				Reason:   "Romantic occasion where looking great is a must",
			},
			{
				Keywords: []string{"photo", "video", "performance"},
				Reason:   "You'll be photographed or on camera",
			},
			{
				Keywords: []string{"party", "gala", "dinner"},
				Reason:   "Social event with many people",
			},
			{
				Keywords: []string{"meeting", "conference", "presentation"},
				Reason:   "Professional gathering where you'll meet important people",
			},
		},
		Important: []string{
			// Professional
			"meeting", "interview", "presentation", "conference", "pitch",
			"client", "networking", "board meeting", "review", "demo",
			// Social - high visibility
			"wedding", "baby shower", "bridal shower", "birthday party",
			"engagement", "anniversary", "graduation", "gala", "fundraiser",
			"date", "date night", "dinner party", "reception",
			// Competitive/Performance
			"competition", "recital", "performance", "photoshoot", "photo",
			"video", "recording", "audition", "show",
			// Family/Important gatherings
			"family dinner", "reunion", "holiday", "thanksgiving", "christmas",
			"easter", "passover", "new year", "party",
		},
		GenericReason: "Important event where looking polished matters",
	}
}

// KeywordClassifier flags events by rule-based keyword membership on the
// lower-cased event name.
type KeywordClassifier struct {
	rules Keywords
}

func NewKeywordClassifier(rules Keywords) *KeywordClassifier {
	return &KeywordClassifier{rules: rules}
}

// Classify reports whether a single event name is important and why.
func (c *KeywordClassifier) Classify(name string) (bool, string) {
	lower := strings.ToLower(name)

	for _, cat := range c.rules.Categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				return true, cat.Reason
			}
		}
	}
	for _, kw := range c.rules.Important {
		if strings.Contains(lower, kw) {
			return true, c.rules.GenericReason
		}
	}
	return false, ""
}

func (c *KeywordClassifier) DetectImportant(_ context.Context, events []model.CalendarEvent) []model.ImportantEvent {
	out := make([]model.ImportantEvent, 0)
	for _, e := range events {
		if ok, reason := c.Classify(e.Name); ok {
			out = append(out, model.ImportantEvent{Event: e, Reason: reason})
		}
	}
	return out
}

// ScoreClassifier delegates to an importance-scoring capability for a batch
// of upcoming events. Any capability failure, timeout, or malformed response
// degrades to an empty result; it is never propagated.
type ScoreClassifier struct {
	scorer    scorer.ImportanceScorer
	maxEvents int
	log       zerolog.Logger
}

func NewScoreClassifier(s scorer.ImportanceScorer, maxEvents int, log zerolog.Logger) *ScoreClassifier {
	if maxEvents <= 0 {
		maxEvents = 10
	}
	return &ScoreClassifier{scorer: s, maxEvents: maxEvents, log: log}
}

func (c *ScoreClassifier) DetectImportant(ctx context.Context, events []model.CalendarEvent) []model.ImportantEvent {
	if len(events) == 0 || c.scorer == nil {
		return nil
	}

	batch := events
	if len(batch) > c.maxEvents {
		batch = batch[:c.maxEvents]
	}

	summaries := make([]scorer.EventSummary, 0, len(batch))
	for _, e := range batch {
		summaries = append(summaries, scorer.EventSummary{
			Name: e.Name,
			Date: formatDate(e.Start),
			Time: formatClock(e.Start),
		})
	}

	scores, err := c.scorer.ScoreEvents(ctx, summaries)
	if err != nil {
		c.log.Warn().Err(err).Msg("importance scoring failed; continuing without scored events")
		return nil
	}

	byName := make(map[string]model.ScoredEvent, len(scores))
	for _, s := range scores {
		byName[strings.ToLower(s.Name)] = s
	}

	out := make([]model.ImportantEvent, 0, len(scores))
	for _, e := range batch {
		s, ok := byName[strings.ToLower(e.Name)]
		if !ok {
			continue
		}
		out = append(out, model.ImportantEvent{
			Event:  e,
			Reason: s.Reason,
			Score:  s.ImportanceScore,
		})
	}
	return out
}
