// Package scorer defines the optional importance-scoring capability: a text
// model asked to rate which upcoming events warrant looking one's best.
package scorer

import (
	"context"
	"fmt"
	"strings"

	"github.com/glowgo/scheduler/internal/model"
)

// EventSummary is the per-event tuple sent to the capability.
type EventSummary struct {
	Name string
	Date string
	Time string
}

// ImportanceScorer rates a batch of upcoming events. Implementations return
// an error on any transport or parse failure; callers degrade to an empty
// result rather than failing the analysis.
type ImportanceScorer interface {
	ScoreEvents(ctx context.Context, events []EventSummary) ([]model.ScoredEvent, error)
}

// BuildPrompt renders the scoring instruction for a batch of events.
func BuildPrompt(events []EventSummary) string {
	var lines []string
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("- %s on %s at %s", e.Name, e.Date, e.Time))
	}

	return fmt.Sprintf(`Analyze these upcoming calendar events and identify which ones are "important appearance events"
where the person would want to look their best (get a haircut, nails done, etc. beforehand).

Events:
%s

For each important event, return a JSON array with objects containing:
- "name": the event name
- "importance_score": 1-10 (10 = most important to look good)
- "reason": why this event matters for appearance

Consider events like:
- Weddings, parties, galas (9-10)
- Client meetings, interviews, presentations (8-9)
- Dates, romantic dinners (8-9)
- Photo shoots, videos, performances (9-10)
- Family gatherings, reunions (7-8)
- Regular work meetings (5-6)

Return ONLY the JSON array, no other text. If no important events, return [].
Example: [{"name": "Wedding", "importance_score": 10, "reason": "Special celebration where looking your best matters"}]`,
		strings.Join(lines, "\n"))
}
