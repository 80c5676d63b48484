package schedule

import "laptudirm.com/x/pitlane/pkg/race"

// LowCost covers the roster like Balanced, then keeps adding the cheapest
// race over the whole roster until every entry has the same number of races
// and has met everyone.
type LowCost struct {
	*generator
}

var _ Scheduler = (*LowCost)(nil)

func (low *LowCost) Step() (race.Race, error) {
	for {
		switch low.phase {
		case Coverage:
			if !low.tour.SomeoneMissingAnOpponent() {
				low.advance(Balance)
				continue
			}

			return low.coverageStep()

		case Balance:
			if low.tour.AllSameRaceCount() && !low.tour.SomeoneMissingAnOpponent() {
				low.advance(Done)
				continue
			}

			return low.lowCostStep()

		default:
			return nil, nil
		}
	}
}

func (low *LowCost) Run() error {
	return run(low)
}
