package schedule

import (
	"math/rand"
	"time"

	"laptudirm.com/x/pitlane/pkg/race"
)

// Pick selects which entry the coverage phase serves next.
type Pick int

const (
	PickFirst  Pick = iota // first entry in roster order missing an opponent
	PickRandom             // random entry among those missing an opponent
)

// ParsePick parses the name of a Pick policy.
func ParsePick(name string) (Pick, bool) {
	switch name {
	case "first", "":
		return PickFirst, true
	case "random":
		return PickRandom, true
	default:
		return PickFirst, false
	}
}

type Option func(*generator)

// WithRand sets the random source used for every tie-break.
func WithRand(rng race.Source) Option {
	return func(gen *generator) {
		gen.rng = rng
	}
}

// WithSeed seeds a new random source, for reproducible schedules.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed)))
}

func WithPick(pick Pick) Option {
	return func(gen *generator) {
		gen.pick = pick
	}
}

// WithObserver registers a function called with every committed race.
func WithObserver(observe func(race.Race)) Option {
	return func(gen *generator) {
		gen.observe = observe
	}
}

func newGenerator(tour *race.Tournament, options []Option) *generator {
	gen := generator{
		tour:    tour,
		size:    tour.Config().PlayersPerRace,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
		observe: func(race.Race) {},
	}

	for _, option := range options {
		option(&gen)
	}

	return &gen
}
