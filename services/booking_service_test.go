package services

import (
	"testing"

	"salonflow-backend/scheduling"

	"github.com/stretchr/testify/assert"
)

func TestVisitDelta(t *testing.T) {
	tests := []struct {
		name  string
		prior scheduling.Status
		next  scheduling.Status
		want  int
	}{
		{name: "first completion", prior: scheduling.StatusScheduled, next: scheduling.StatusCompleted, want: 1},
		{name: "re-applying completed", prior: scheduling.StatusCompleted, next: scheduling.StatusCompleted, want: 0},
		{name: "un-completing", prior: scheduling.StatusCompleted, next: scheduling.StatusScheduled, want: -1},
		{name: "completed corrected to cancelled", prior: scheduling.StatusCompleted, next: scheduling.StatusCancelled, want: -1},
		{name: "completed corrected to no-show", prior: scheduling.StatusCompleted, next: scheduling.StatusNoShow, want: -1},
		{name: "cancelling a scheduled visit", prior: scheduling.StatusScheduled, next: scheduling.StatusCancelled, want: 0},
		{name: "re-applying scheduled", prior: scheduling.StatusScheduled, next: scheduling.StatusScheduled, want: 0},
		{name: "no-show to cancelled", prior: scheduling.StatusNoShow, next: scheduling.StatusCancelled, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, visitDelta(tt.prior, tt.next))
		})
	}
}

// A complete, un-complete, complete cycle must net out to a single visit.
func TestVisitDeltaRoundTripNetsToOne(t *testing.T) {
	total := 0
	transitions := []struct {
		prior, next scheduling.Status
	}{
		{scheduling.StatusScheduled, scheduling.StatusCompleted},
		{scheduling.StatusCompleted, scheduling.StatusScheduled},
		{scheduling.StatusScheduled, scheduling.StatusCompleted},
	}
	for _, tr := range transitions {
		total += visitDelta(tr.prior, tr.next)
	}
	assert.Equal(t, 1, total)
}
