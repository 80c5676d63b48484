package schedule_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"laptudirm.com/x/pitlane/pkg/race"
	"laptudirm.com/x/pitlane/pkg/race/schedule"
)

// stepLimit bounds every schedule run in the tests so that a regression
// fails instead of hanging.
const stepLimit = 5000

func newTournament(t *testing.T, players, size int) *race.Tournament {
	t.Helper()

	names := make([]string, players)
	for i := range names {
		names[i] = fmt.Sprintf("P%d", i+1)
	}

	tour, err := race.New(names, race.Config{PlayersPerRace: size, FastestLapPoints: 1})
	require.NoError(t, err)
	return tour
}

func runBounded(t *testing.T, scheduler schedule.Scheduler) {
	t.Helper()

	for steps := 0; scheduler.Phase() != schedule.Done; steps++ {
		require.Less(t, steps, stepLimit, "schedule did not terminate")

		_, err := scheduler.Step()
		require.NoError(t, err)
	}
}

func TestNewRejectsInvalidConfigurations(t *testing.T) {
	_, err := schedule.New("balanced", newTournament(t, 3, 4))
	require.ErrorIs(t, err, schedule.ErrInvalidConfiguration)

	_, err = schedule.New("balanced", newTournament(t, 3, 1))
	require.ErrorIs(t, err, schedule.ErrInvalidConfiguration)

	_, err = schedule.New("swiss", newTournament(t, 4, 2))
	require.Error(t, err)

	for _, name := range append(schedule.Strategies, "") {
		_, err := schedule.New(name, newTournament(t, 4, 2))
		require.NoError(t, err, name)
	}
}

func TestBalancedTerminates(t *testing.T) {
	for players := 2; players <= 10; players++ {
		for size := 2; size <= min(players, 5); size++ {
			for _, pick := range []schedule.Pick{schedule.PickFirst, schedule.PickRandom} {
				for seed := int64(1); seed <= 3; seed++ {
					tour := newTournament(t, players, size)

					scheduler, err := schedule.New("balanced", tour,
						schedule.WithSeed(seed),
						schedule.WithPick(pick),
					)
					require.NoError(t, err)

					runBounded(t, scheduler)

					name := fmt.Sprintf("%d players, races of %d, seed %d", players, size, seed)
					require.False(t, tour.SomeoneMissingAnOpponent(), name)
					require.True(t, tour.AllSameRaceCount(), name)
				}
			}
		}
	}
}

func TestLowCostTerminates(t *testing.T) {
	for _, config := range [][2]int{{3, 3}, {4, 2}, {5, 3}, {6, 3}, {6, 4}, {8, 4}} {
		tour := newTournament(t, config[0], config[1])

		scheduler, err := schedule.New("low-cost", tour, schedule.WithSeed(42))
		require.NoError(t, err)

		runBounded(t, scheduler)
		require.False(t, tour.SomeoneMissingAnOpponent())
		require.True(t, tour.AllSameRaceCount())
	}
}

func TestCoveragePhase(t *testing.T) {
	for players := 2; players <= 9; players++ {
		for size := 2; size <= min(players, 4); size++ {
			tour := newTournament(t, players, size)

			scheduler, err := schedule.New("balanced", tour, schedule.WithSeed(int64(players*size)))
			require.NoError(t, err)

			steps := 0
			for tour.SomeoneMissingAnOpponent() {
				require.Less(t, steps, stepLimit, "coverage did not terminate")
				require.Equal(t, schedule.Coverage, scheduler.Phase())

				r, err := scheduler.Step()
				require.NoError(t, err)
				require.Len(t, r, size)
				steps++
			}

			// Every race of the coverage phase had someone new to meet, so it
			// can take no more races than there are pairs.
			require.LessOrEqual(t, steps, players*(players-1)/2)
		}
	}
}

func TestPhases(t *testing.T) {
	tour := newTournament(t, 3, 3)

	scheduler, err := schedule.New("balanced", tour)
	require.NoError(t, err)
	require.Equal(t, schedule.Coverage, scheduler.Phase())

	// Two players left to meet with two free seats: the race is forced.
	r, err := scheduler.Step()
	require.NoError(t, err)
	require.True(t, r.Same(race.Race{0, 1, 2}))

	r, err = scheduler.Step()
	require.NoError(t, err)
	require.Nil(t, r)
	require.Equal(t, schedule.Done, scheduler.Phase())

	require.Equal(t, "coverage", schedule.Coverage.String())
	require.Equal(t, "balance", schedule.Balance.String())
	require.Equal(t, "done", schedule.Done.String())
}

func TestBalancePhaseFollowsCoverage(t *testing.T) {
	tour := newTournament(t, 4, 3)

	// P1 meets everyone in three races, leaving the others a race behind.
	require.NoError(t, tour.CommitRace(0, 1, 2))
	require.NoError(t, tour.CommitRace(0, 1, 3))
	require.NoError(t, tour.CommitRace(0, 2, 3))

	scheduler, err := schedule.New("balanced", tour, schedule.WithSeed(3))
	require.NoError(t, err)

	// Everyone has met already, so the first step balances: only P2, P3 and
	// P4 have fewer races than P1.
	r, err := scheduler.Step()
	require.NoError(t, err)
	require.Equal(t, schedule.Balance, scheduler.Phase())
	require.True(t, r.Same(race.Race{1, 2, 3}))

	require.NoError(t, scheduler.Run())
	require.Equal(t, schedule.Done, scheduler.Phase())
	require.True(t, tour.AllSameRaceCount())
	require.Len(t, tour.Races(), 4)
}

func TestSeedIsReproducible(t *testing.T) {
	generate := func(seed int64) []race.Race {
		tour := newTournament(t, 7, 3)

		scheduler, err := schedule.New("balanced", tour,
			schedule.WithRand(rand.New(rand.NewSource(seed))),
			schedule.WithPick(schedule.PickRandom),
		)
		require.NoError(t, err)
		require.NoError(t, scheduler.Run())

		return tour.Races()
	}

	require.Equal(t, generate(11), generate(11))
}

func TestObserverSeesEveryRace(t *testing.T) {
	tour := newTournament(t, 6, 4)

	var seen []race.Race
	scheduler, err := schedule.New("balanced", tour,
		schedule.WithSeed(5),
		schedule.WithObserver(func(r race.Race) { seen = append(seen, r) }),
	)
	require.NoError(t, err)
	require.NoError(t, scheduler.Run())

	require.NotEmpty(t, seen)
	require.Equal(t, tour.Races(), seen)
}

func TestParsePick(t *testing.T) {
	pick, ok := schedule.ParsePick("random")
	require.True(t, ok)
	require.Equal(t, schedule.PickRandom, pick)

	pick, ok = schedule.ParsePick("")
	require.True(t, ok)
	require.Equal(t, schedule.PickFirst, pick)

	_, ok = schedule.ParsePick("last")
	require.False(t, ok)
}
