package cost_test

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"laptudirm.com/x/pitlane/pkg/race"
	"laptudirm.com/x/pitlane/pkg/race/cost"
)

const (
	A race.ID = iota
	B
	C
	D
	E
)

func newTournament(t *testing.T, races ...race.Race) *race.Tournament {
	t.Helper()

	tour, err := race.New([]string{"A", "B", "C", "D", "E"}, race.Config{PlayersPerRace: 3})
	require.NoError(t, err)

	for _, r := range races {
		require.NoError(t, tour.CommitRace(r...))
	}

	return tour
}

func average(t *testing.T, tour *race.Tournament) float64 {
	t.Helper()

	avg, err := tour.AverageRaces()
	require.NoError(t, err)
	return avg
}

// canonical sorts the entries of every race and then the races themselves so
// that two searches can be compared as sets of sets.
func canonical(races []race.Race) []race.Race {
	out := make([]race.Race, len(races))
	for i, r := range races {
		out[i] = slices.Clone(r)
		slices.Sort(out[i])
	}

	slices.SortFunc(out, slices.Compare[race.Race])
	return out
}

func TestOf(t *testing.T) {
	tour := newTournament(t, race.Race{A, B, C}, race.Race{C, D, E})

	// Load: (2+3+2) - 3*(6/5) = 3.4, rematches: B-C and C-D met once.
	require.InDelta(t, 9.4, cost.Of(tour, []race.ID{B, C, D}, average(t, tour)), 1e-9)

	// Load: (2+2+2) - 3*(6/5) = 2.4, rematches: D-E met once in C, D, E.
	require.InDelta(t, (2+2+2)-3*1.2+3, cost.Of(tour, []race.ID{A, D, E}, average(t, tour)), 1e-9)

	// Before C, D, E is raced, A, D and E have never met: load only.
	tour = newTournament(t, race.Race{A, B, C})
	require.InDelta(t, (2+1+1)-3*0.6, cost.Of(tour, []race.ID{A, D, E}, average(t, tour)), 1e-9)
}

func TestOfRematchIsExponential(t *testing.T) {
	tour := newTournament(t, race.Race{A, B, C}, race.Race{A, B, D}, race.Race{A, B, E})

	// A and B met three times: 3^3, the other pairs once: 3^1 each.
	load := float64(4+4+2) - 3*average(t, tour)
	require.InDelta(t, load+27+3+3, cost.Of(tour, []race.ID{A, B, C}, average(t, tour)), 1e-9)
}

func TestRound(t *testing.T) {
	require.Equal(t, 9.4, cost.Round(9.400000000001))
	require.Equal(t, cost.Round(0.1+0.2), cost.Round(0.3))
	require.Equal(t, -1.23457, cost.Round(-1.234567))
}

func TestLeastExpensiveRacesEmptyTournament(t *testing.T) {
	tour := newTournament(t)

	races, err := cost.LeastExpensiveRaces(tour, tour.IDs(), 3, average(t, tour))
	require.NoError(t, err)
	require.Len(t, races, 10) // C(5, 3), all of the same cost
}

func TestLeastExpensiveRacesFixed(t *testing.T) {
	tour := newTournament(t, race.Race{A, B, C})
	avg := average(t, tour)

	races, err := cost.LeastExpensiveRaces(tour, []race.ID{B, C, D, E}, 3, avg, A)
	require.NoError(t, err)
	require.Equal(t, []race.Race{{D, E, A}}, races)

	races, err = cost.LeastExpensiveRaces(tour, []race.ID{A, B, C, E}, 3, avg, D)
	require.NoError(t, err)
	require.Len(t, races, 3)
	for _, r := range races {
		require.True(t, r.Contains(D))
		require.True(t, r.Contains(E))
	}

	races, err = cost.LeastExpensiveRaces(tour, []race.ID{A, B, C, D}, 3, avg, E)
	require.NoError(t, err)
	require.Len(t, races, 3)
	for _, r := range races {
		require.True(t, r.Contains(D))
		require.True(t, r.Contains(E))
	}
}

func TestLeastExpensiveRacesOrderIndependent(t *testing.T) {
	tour := newTournament(t, race.Race{A, B, C}, race.Race{C, D, E})
	avg := average(t, tour)
	rng := rand.New(rand.NewSource(7))

	want, err := cost.LeastExpensiveRaces(tour, tour.IDs(), 3, avg)
	require.NoError(t, err)

	wantFixed, err := cost.LeastExpensiveRaces(tour, []race.ID{B, C, E}, 4, avg, A, D)
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		pool := tour.IDs()
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		got, err := cost.LeastExpensiveRaces(tour, pool, 3, avg)
		require.NoError(t, err)
		require.Equal(t, canonical(want), canonical(got))

		pool = []race.ID{E, B, C}
		rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

		got, err = cost.LeastExpensiveRaces(tour, pool, 4, avg, D, A)
		require.NoError(t, err)
		require.Equal(t, canonical(wantFixed), canonical(got))
	}
}

func TestLeastExpensiveRacesErrors(t *testing.T) {
	tour := newTournament(t)

	_, err := cost.LeastExpensiveRaces(tour, nil, 3, 0)
	require.ErrorIs(t, err, cost.ErrEmptySearchPool)

	_, err = cost.LeastExpensiveRaces(tour, []race.ID{D, E}, 3, 0, A, B, C)
	require.ErrorIs(t, err, cost.ErrNoCandidateRaces)

	_, err = cost.LeastExpensiveRaces(tour, []race.ID{D}, 3, 0, A)
	require.ErrorIs(t, err, cost.ErrNoCandidateRaces)

	_, err = cost.LeastExpensiveRace(rand.New(rand.NewSource(1)), tour, []race.ID{A, B}, 3, 0)
	require.ErrorIs(t, err, cost.ErrNoCandidateRaces)
}

func TestLeastExpensiveRacesRepeatedEntries(t *testing.T) {
	tour := newTournament(t, race.Race{A, B, C})
	avg := average(t, tour)

	// A fixed entry which is also in the pool.
	_, err := cost.LeastExpensiveRaces(tour, []race.ID{A, B, C, D, E}, 3, avg, A)
	require.ErrorIs(t, err, cost.ErrNoCandidateRaces)

	// The same entry twice in the pool.
	_, err = cost.LeastExpensiveRaces(tour, []race.ID{D, E, D}, 3, avg)
	require.ErrorIs(t, err, cost.ErrNoCandidateRaces)

	// The same entry fixed twice.
	_, err = cost.LeastExpensiveRaces(tour, []race.ID{B, C}, 3, avg, A, A)
	require.ErrorIs(t, err, cost.ErrNoCandidateRaces)

	// Every race a valid search returns can be committed.
	races, err := cost.LeastExpensiveRaces(tour, []race.ID{B, C, D, E}, 3, avg, A)
	require.NoError(t, err)
	for _, r := range races {
		require.NoError(t, tour.CommitRace(r...))
	}
}

// pick is a race.Source always choosing the given index.
type pick int

func (p pick) Intn(n int) int { return int(p) % n }

func TestLeastExpensiveRace(t *testing.T) {
	tour := newTournament(t, race.Race{A, B, C})
	avg := average(t, tour)

	races, err := cost.LeastExpensiveRaces(tour, []race.ID{A, B, C, E}, 3, avg, D)
	require.NoError(t, err)

	for i := range races {
		r, err := cost.LeastExpensiveRace(pick(i), tour, []race.ID{A, B, C, E}, 3, avg, D)
		require.NoError(t, err)
		require.Equal(t, races[i], r)
	}
}
