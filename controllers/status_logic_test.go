package controllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vivekrajtheetla-ship-it/Hackathon-sub000/models"
)

func testHackathon(status string, start, end time.Time) *models.Hackathon {
	return &models.Hackathon{
		ID:        primitive.NewObjectID(),
		Name:      "test hackathon",
		StartDate: start,
		EndDate:   end,
		Status:    status,
	}
}

func viableCounts() participationCounts {
	return participationCounts{Teams: 3, Coordinators: 1, Evaluators: 1}
}

func TestNextStatusActivation(t *testing.T) {
	now := time.Now()
	h := testHackathon(models.HackathonUpcoming, now.Add(-time.Hour), now.Add(time.Hour))

	decision := nextStatus(h, viableCounts(), now)

	require.True(t, decision.Changed)
	assert.Equal(t, models.HackathonActive, decision.Status)
	assert.Empty(t, decision.Reason)
}

func TestNextStatusStaysUpcomingBeforeStart(t *testing.T) {
	now := time.Now()
	h := testHackathon(models.HackathonUpcoming, now.Add(time.Hour), now.Add(2*time.Hour))

	decision := nextStatus(h, viableCounts(), now)

	assert.False(t, decision.Changed)
	assert.Equal(t, models.HackathonUpcoming, decision.Status)
}

func TestNextStatusEndTimeWins(t *testing.T) {
	now := time.Now()

	// Past end time completes the hackathon regardless of participation,
	// even if it was never active.
	for _, status := range []string{models.HackathonUpcoming, models.HackathonActive} {
		h := testHackathon(status, now.Add(-2*time.Hour), now.Add(-time.Minute))

		decision := nextStatus(h, viableCounts(), now)

		require.True(t, decision.Changed, "status %s", status)
		assert.Equal(t, models.HackathonCompleted, decision.Status)
		assert.Equal(t, models.ReasonTimeEnded, decision.Reason)
	}
}

func TestNextStatusViabilityGate(t *testing.T) {
	now := time.Now()
	cases := []struct {
		name   string
		counts participationCounts
	}{
		{"too few teams", participationCounts{Teams: 2, Coordinators: 1, Evaluators: 1}},
		{"no coordinator", participationCounts{Teams: 3, Coordinators: 0, Evaluators: 1}},
		{"no evaluator", participationCounts{Teams: 3, Coordinators: 1, Evaluators: 0}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := testHackathon(models.HackathonUpcoming, now.Add(-time.Minute), now.Add(time.Hour))

			decision := nextStatus(h, tc.counts, now)

			require.True(t, decision.Changed)
			assert.Equal(t, models.HackathonCompleted, decision.Status)
			assert.Equal(t, models.ReasonInsufficientParticipants, decision.Reason)
		})
	}
}

func TestNextStatusWinnersBackstop(t *testing.T) {
	now := time.Now()
	h := testHackathon(models.HackathonActive, now.Add(-time.Hour), now.Add(time.Hour))
	first := primitive.NewObjectID()
	h.Winners.FirstPlace = &first

	decision := nextStatus(h, viableCounts(), now)

	require.True(t, decision.Changed)
	assert.Equal(t, models.HackathonCompleted, decision.Status)
	assert.Equal(t, models.ReasonWinnersAnnounced, decision.Reason)
}

func TestNextStatusCompletedIsTerminal(t *testing.T) {
	now := time.Now()
	h := testHackathon(models.HackathonCompleted, now.Add(-2*time.Hour), now.Add(time.Hour))
	h.CompletedReason = models.ReasonTimeEnded

	decision := nextStatus(h, viableCounts(), now)

	assert.False(t, decision.Changed)
	assert.Equal(t, models.HackathonCompleted, decision.Status)
}

func TestNextStatusActiveStaysActive(t *testing.T) {
	now := time.Now()
	h := testHackathon(models.HackathonActive, now.Add(-time.Hour), now.Add(time.Hour))

	decision := nextStatus(h, participationCounts{}, now)

	assert.False(t, decision.Changed)
	assert.Equal(t, models.HackathonActive, decision.Status)
}

func TestParticipationViable(t *testing.T) {
	assert.True(t, viableCounts().viable())
	assert.False(t, participationCounts{Teams: 2, Coordinators: 1, Evaluators: 1}.viable())
	assert.True(t, participationCounts{Teams: 10, Coordinators: 2, Evaluators: 3}.viable())
}
