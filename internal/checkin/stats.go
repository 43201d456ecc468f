package checkin

import (
	"github.com/rowanhale/seatwell/internal/model"
	"github.com/rowanhale/seatwell/internal/store"
)

const recentLimit = 10

// StatsAggregator derives live attendance numbers from the ledger. There are
// no cached counters; every call recomputes from current state.
type StatsAggregator struct {
	guests   *store.GuestStore
	checkIns *store.CheckInStore
}

func NewStatsAggregator(gs *store.GuestStore, cs *store.CheckInStore) *StatsAggregator {
	return &StatsAggregator{guests: gs, checkIns: cs}
}

// Stats returns total/checked-in/pending counts, the check-in rate, and the
// most recent activity for a wedding. Rate is 0 for an empty guest list.
func (a *StatsAggregator) Stats(weddingID int64) (*model.WeddingStats, error) {
	total, err := a.guests.CountByWedding(weddingID)
	if err != nil {
		return nil, err
	}
	checkedIn, err := a.checkIns.CountByWedding(weddingID)
	if err != nil {
		return nil, err
	}
	recent, err := a.checkIns.ListRecent(weddingID, recentLimit)
	if err != nil {
		return nil, err
	}

	stats := &model.WeddingStats{
		Total:     total,
		CheckedIn: checkedIn,
		Pending:   total - checkedIn,
		Recent:    recent,
	}
	if total > 0 {
		stats.Rate = float64(checkedIn) / float64(total)
	}
	return stats, nil
}

// GuestList returns every guest with their check-in status, optionally
// filtered by a case-insensitive substring on name.
func (a *StatsAggregator) GuestList(weddingID int64, search string) ([]model.GuestStatus, error) {
	return a.guests.ListWithStatus(weddingID, search)
}
