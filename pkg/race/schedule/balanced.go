package schedule

import "laptudirm.com/x/pitlane/pkg/race"

// Balanced first makes every entry meet every other entry, then evens out
// the number of races by repeatedly racing the entries with the fewest races
// against each other.
type Balanced struct {
	*generator
}

var _ Scheduler = (*Balanced)(nil)

func (balanced *Balanced) Step() (race.Race, error) {
	for {
		switch balanced.phase {
		case Coverage:
			if !balanced.tour.SomeoneMissingAnOpponent() {
				balanced.advance(Balance)
				continue
			}

			return balanced.coverageStep()

		case Balance:
			if balanced.tour.AllSameRaceCount() {
				balanced.advance(Done)
				continue
			}

			return balanced.fewestRacesStep()

		default:
			return nil, nil
		}
	}
}

func (balanced *Balanced) Run() error {
	return run(balanced)
}
