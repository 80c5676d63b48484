package schedule

import (
	"errors"
	"fmt"

	"laptudirm.com/x/pitlane/pkg/race"
)

var ErrInvalidConfiguration = errors.New("schedule: invalid configuration")

// New returns the named scheduling strategy for the given tournament. The
// tournament's race size is checked up front since a race larger than the
// roster, or one without a pair in it, could never cover the roster.
func New(name string, tour *race.Tournament, options ...Option) (Scheduler, error) {
	if err := validate(tour); err != nil {
		return nil, err
	}

	gen := newGenerator(tour, options)

	switch name {
	case "balanced", "":
		return &Balanced{generator: gen}, nil
	case "low-cost":
		return &LowCost{generator: gen}, nil
	default:
		return nil, fmt.Errorf("new scheduler: invalid strategy %s", name)
	}
}

// Strategies lists the names accepted by New.
var Strategies = []string{"balanced", "low-cost"}

type Scheduler interface {
	// Phase returns the phase the next Step will work on.
	Phase() Phase

	// Step commits the next race of the schedule and returns it. Once the
	// schedule is Done it returns a nil race.
	Step() (race.Race, error)

	// Run steps until the schedule is Done.
	Run() error
}

func validate(tour *race.Tournament) error {
	size, entries := tour.Config().PlayersPerRace, tour.Size()
	switch {
	case size < 2:
		return fmt.Errorf("%w: races need at least 2 players, got %d", ErrInvalidConfiguration, size)
	case size > entries:
		return fmt.Errorf("%w: races of %d with only %d players", ErrInvalidConfiguration, size, entries)
	}

	return nil
}

func run(scheduler Scheduler) error {
	for scheduler.Phase() != Done {
		if _, err := scheduler.Step(); err != nil {
			return err
		}
	}

	return nil
}

// Phase is a state of the scheduling state machine. Schedules always move
// from Coverage to Balance to Done.
type Phase int

const (
	// Coverage: some entry has not raced against every other entry.
	Coverage Phase = iota

	// Balance: entries are scheduled into different numbers of races.
	Balance

	Done
)

func (phase Phase) String() string {
	switch phase {
	case Coverage:
		return "coverage"
	case Balance:
		return "balance"
	case Done:
		return "done"
	default:
		return "unknown"
	}
}
