package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedStat struct {
	UserID     string
	Restaurant string
	Amount     Money
	Items      []string
	WasCallee  bool
}

type fakeStats struct {
	records []recordedStat
	err     error
}

func (s *fakeStats) Record(ctx context.Context, userID, restaurant string, amount Money, items []string, wasCallee bool) error {
	s.records = append(s.records, recordedStat{userID, restaurant, amount, items, wasCallee})
	return s.err
}

func newTestRunner(surface *fakeSurface, users fakeDirectory, stats StatsRecorder, maxAttempts int) *Runner {
	p := NewPipeline(surface, users, NewCalleeSelector(firstPicker), defaultConfig())
	return NewRunner(NewRetrier(p, maxAttempts), stats, time.Millisecond)
}

func TestRunnerOneResultPerBatchInOrder(t *testing.T) {
	surface := pizzaPlaceSurface()
	users := fakeDirectory{"a": {ID: "a", DisplayName: "Alice", Phone: "555-0100"}}
	r := newTestRunner(surface, users, nil, 1)

	batches := []Batch{
		{Restaurant: "Pizza Place", Participants: []ParticipantOrder{{UserID: "a", Items: []ItemSelection{{Name: "Cheese Pizza"}}}}},
		{Restaurant: "Sushi Boat", Participants: []ParticipantOrder{{UserID: "a", Items: []ItemSelection{{Name: "Dragon Roll"}}}}},
		{Restaurant: "Osha Thai", Participants: []ParticipantOrder{{UserID: "a", Items: []ItemSelection{{Name: "Garden Salad"}}}}},
	}
	result := r.Run(context.Background(), batches)

	require.Len(t, result.Batches, len(batches))
	assert.NotEmpty(t, result.RunID)
	assert.Equal(t, "Pizza Place", result.Batches[0].Restaurant)
	assert.Equal(t, "Sushi Boat", result.Batches[1].Restaurant)
	assert.Equal(t, "Osha Thai", result.Batches[2].Restaurant)

	assert.True(t, result.Batches[0].OK)
	assert.False(t, result.Batches[1].OK, "restaurant is not on the site")
	assert.True(t, result.Batches[2].OK)
}

func TestRunnerRecordsStatsForNonDonorsOnly(t *testing.T) {
	surface := pizzaPlaceSurface()
	surface.allocations = map[string]Money{"Alice": 1200, "Bob": 700}
	users := fakeDirectory{
		"a":     {ID: "a", DisplayName: "Alice", Phone: "555-0100"},
		"b":     {ID: "b", DisplayName: "Bob", Phone: "555-0101"},
		"donor": {ID: "donor", DisplayName: "Don", Phone: "555-0199"},
	}
	stats := &fakeStats{}
	r := newTestRunner(surface, users, stats, 1)

	batches := []Batch{{
		Restaurant: "Pizza Place",
		Participants: []ParticipantOrder{
			{UserID: "a", Items: []ItemSelection{{Name: "Cheese Pizza"}}},
			{UserID: "donor", Donor: true},
			{UserID: "b", Items: []ItemSelection{{Name: "Garden Salad"}}},
		},
	}}
	result := r.Run(context.Background(), batches)

	require.True(t, result.Batches[0].OK)
	require.Len(t, stats.records, 2)
	assert.Equal(t, "a", stats.records[0].UserID)
	assert.Equal(t, Money(1200), stats.records[0].Amount)
	assert.True(t, stats.records[0].WasCallee)
	assert.Equal(t, "b", stats.records[1].UserID)
	assert.Equal(t, Money(700), stats.records[1].Amount)
	assert.False(t, stats.records[1].WasCallee)
}

func TestRunnerStatsFailureDoesNotFailBatch(t *testing.T) {
	surface := pizzaPlaceSurface()
	users := fakeDirectory{"a": {ID: "a", DisplayName: "Alice", Phone: "555-0100"}}
	stats := &fakeStats{err: errors.New("db down")}
	r := newTestRunner(surface, users, stats, 1)

	batches := []Batch{{
		Restaurant:   "Pizza Place",
		Participants: []ParticipantOrder{{UserID: "a", Items: []ItemSelection{{Name: "Cheese Pizza"}}}},
	}}
	result := r.Run(context.Background(), batches)

	assert.True(t, result.Batches[0].OK)
}

func TestRunnerNoStatsForFailedBatch(t *testing.T) {
	surface := pizzaPlaceSurface()
	surface.allocations = map[string]Money{"Alice": 3000}
	users := fakeDirectory{"a": {ID: "a", DisplayName: "Alice", Phone: "555-0100"}}
	stats := &fakeStats{}
	r := newTestRunner(surface, users, stats, 1)

	batches := []Batch{{
		Restaurant:   "Pizza Place",
		Participants: []ParticipantOrder{{UserID: "a", Items: []ItemSelection{{Name: "Cheese Pizza"}}}},
	}}
	result := r.Run(context.Background(), batches)

	assert.False(t, result.Batches[0].OK)
	assert.Empty(t, stats.records)
}

func TestRunnerStopsOnCancelledContext(t *testing.T) {
	surface := pizzaPlaceSurface()
	users := fakeDirectory{"a": {ID: "a", DisplayName: "Alice", Phone: "555-0100"}}
	p := NewPipeline(surface, users, NewCalleeSelector(firstPicker), defaultConfig())
	r := NewRunner(NewRetrier(p, 1), nil, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batches := []Batch{
		{Restaurant: "Pizza Place", Participants: []ParticipantOrder{{UserID: "a", Items: []ItemSelection{{Name: "Cheese Pizza"}}}}},
		{Restaurant: "Osha Thai"},
	}
	result := r.Run(ctx, batches)

	assert.Len(t, result.Batches, 1, "cancellation between batches returns the partial result")
}
