package engine

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowgo/scheduler/internal/model"
	"github.com/glowgo/scheduler/internal/scorer"
)

func TestKeywordClassifier_Categories(t *testing.T) {
	c := NewKeywordClassifier(DefaultKeywords())

	cases := []struct {
		name       string
		important  bool
		wantReason string
	}{
		{"Wedding Reception", true, "Special celebration where you'll want to look your absolute best"},
		{"Client Pitch", true, "Professional event where first impressions matter"},
		{"Anniversary Dinner", true, "Romantic occasion where looking great is a must"},
		{"Photoshoot for portfolio", true, "You'll be photographed or on camera"},
		{"Holiday Gala", true, "Social event with many people"},
		{"Quarterly Conference", true, "Professional gathering where you'll meet important people"},
		{"Family Reunion", true, "Important event where looking polished matters"},
		{"Team Standup", false, ""},
		{"Grocery run", false, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, reason := c.Classify(tc.name)
			assert.Equal(t, tc.important, got)
			assert.Equal(t, tc.wantReason, reason)
		})
	}
}

func TestKeywordClassifier_DetectImportant(t *testing.T) {
	c := NewKeywordClassifier(DefaultKeywords())
	loc := testLocation(t)
	events := []model.CalendarEvent{
		{Name: "Wedding Reception", Start: time.Date(2026, 9, 4, 17, 0, 0, 0, loc)},
		{Name: "Team Standup", Start: time.Date(2026, 9, 2, 9, 30, 0, 0, loc)},
	}

	important := c.DetectImportant(context.Background(), events)
	require.Len(t, important, 1)
	assert.Equal(t, "Wedding Reception", important[0].Event.Name)
	assert.Contains(t, important[0].Reason, "look your absolute best")
}

// --- Fakes ---

type fakeScorer struct {
	scores []model.ScoredEvent
	err    error
	batch  []scorer.EventSummary
}

func (f *fakeScorer) ScoreEvents(_ context.Context, events []scorer.EventSummary) ([]model.ScoredEvent, error) {
	f.batch = events
	return f.scores, f.err
}

func TestScoreClassifier_MapsScoresBack(t *testing.T) {
	loc := testLocation(t)
	fs := &fakeScorer{scores: []model.ScoredEvent{
		{Name: "Wedding Reception", ImportanceScore: 10, Reason: "Special celebration where looking your best matters"},
	}}
	c := NewScoreClassifier(fs, 10, zerolog.Nop())

	events := []model.CalendarEvent{
		{Name: "Wedding Reception", Start: time.Date(2026, 9, 4, 17, 0, 0, 0, loc)},
		{Name: "Team Standup", Start: time.Date(2026, 9, 2, 9, 30, 0, 0, loc)},
	}

	important := c.DetectImportant(context.Background(), events)
	require.Len(t, important, 1)
	assert.Equal(t, 10, important[0].Score)
	assert.Equal(t, "Wedding Reception", important[0].Event.Name)
}

func TestScoreClassifier_CapsBatchAtTen(t *testing.T) {
	loc := testLocation(t)
	fs := &fakeScorer{}
	c := NewScoreClassifier(fs, 10, zerolog.Nop())

	events := make([]model.CalendarEvent, 14)
	for i := range events {
		events[i] = model.CalendarEvent{Name: "Event", Start: time.Date(2026, 9, 2, 9+0, 0, 0, 0, loc)}
	}

	c.DetectImportant(context.Background(), events)
	assert.Len(t, fs.batch, 10)
}

func TestScoreClassifier_DegradesToEmptyOnFailure(t *testing.T) {
	loc := testLocation(t)
	fs := &fakeScorer{err: errors.New("model returned prose instead of JSON")}
	c := NewScoreClassifier(fs, 10, zerolog.Nop())

	events := []model.CalendarEvent{
		{Name: "Wedding Reception", Start: time.Date(2026, 9, 4, 17, 0, 0, 0, loc)},
	}

	important := c.DetectImportant(context.Background(), events)
	assert.Empty(t, important)
}

func TestScoreClassifier_EmptyInput(t *testing.T) {
	c := NewScoreClassifier(&fakeScorer{}, 10, zerolog.Nop())
	assert.Empty(t, c.DetectImportant(context.Background(), nil))
}
