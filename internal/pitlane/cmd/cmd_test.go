package cmd_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"laptudirm.com/x/pitlane/internal/pitlane/cmd"
	"laptudirm.com/x/pitlane/pkg/race"
	"laptudirm.com/x/pitlane/pkg/race/schedule"
	"laptudirm.com/x/pitlane/pkg/store"
)

type cli struct {
	t      *testing.T
	dir    string
	driver string
}

func newCLI(t *testing.T, driver string) *cli {
	return &cli{t: t, dir: t.TempDir(), driver: driver}
}

// run executes pitlane with the given arguments and returns its output.
func (c *cli) run(args ...string) (string, error) {
	c.t.Helper()

	var out, errs bytes.Buffer

	root := cmd.Root()
	root.SetOut(&out)
	root.SetErr(&errs)
	root.SetArgs(append(args, "--dir", c.dir, "--store", c.driver))

	err := root.Execute()
	return out.String(), err
}

func (c *cli) must(args ...string) string {
	c.t.Helper()

	out, err := c.run(args...)
	require.NoError(c.t, err, strings.Join(args, " "))
	return out
}

func (c *cli) load(name string) *race.Tournament {
	c.t.Helper()

	path := c.dir
	if c.driver == "sqlite" {
		path = filepath.Join(c.dir, "pitlane.db")
	}

	st, err := store.Open(store.Config{Driver: c.driver, Path: path})
	require.NoError(c.t, err)
	defer st.Close()

	snapshot, err := st.Load(name)
	require.NoError(c.t, err)

	tour, err := race.Restore(snapshot)
	require.NoError(c.t, err)
	return tour
}

// finish builds result arguments for the race in the given finishing order.
func finish(tour *race.Tournament, r race.Race) []string {
	args := make([]string, len(r))
	for i, name := range tour.Names(r) {
		args[i] = fmt.Sprintf("%s@1:2%d.000", name, i)
	}

	return args
}

func TestTournamentLifecycle(t *testing.T) {
	for _, driver := range []string{"file", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			c := newCLI(t, driver)

			out := c.must("new", "cup", "--per-race", "3", "--players", "6", "--points", "3,2,1", "--seed", "7")
			require.Contains(t, out, "Tournament cup")
			require.Contains(t, out, "╔")

			tour := c.load("cup")
			require.False(t, tour.SomeoneMissingAnOpponent())
			require.True(t, tour.AllSameRaceCount())
			require.Equal(t, []int{3, 2, 1}, tour.Config().Points)

			first := tour.Races()[0]
			winner := tour.Entry(first[0]).Name

			out = c.must(append([]string{"result", "cup"}, finish(tour, first)...)...)
			require.Contains(t, out, winner)

			tour = c.load("cup")
			require.Len(t, tour.Results(), 1)
			require.Equal(t, winner, tour.StandingsByPoints()[0].Name)

			// The winner scores 3 points and the fastest lap bonus.
			require.Equal(t, 4, tour.StandingsByPoints()[0].Points)

			_, err := c.run(append([]string{"result", "cup"}, finish(tour, first)...)...)
			require.ErrorIs(t, err, race.ErrRaceAlreadyRecorded)

			out = c.must("races", "cup", "--done")
			require.Contains(t, out, strings.Join(tour.Names(first), ", "))

			// Header plus every race but the recorded one.
			out = c.must("races", "cup", "--todo")
			require.Equal(t, len(tour.Races()), strings.Count(out, "\n║"))

			out = c.must("standings", "cup")
			require.Contains(t, out, "Fastest lap: "+winner+" 1:20.000")

			out = c.must("standings", "cup", "--laps")
			require.Contains(t, out, "1:20.000")

			out = c.must("player", "cup", winner)
			require.Contains(t, out, winner+": 1/")

			out = c.must("list")
			require.Contains(t, out, "cup")

			path := filepath.Join(t.TempDir(), "cup.xlsx")
			c.must("export", "cup", path)
			require.FileExists(t, path)

			c.must("delete", "cup")
			out = c.must("list")
			require.Contains(t, out, "No saved tournaments.")

			_, err = c.run("races", "cup")
			require.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestNewRefusesToOverwrite(t *testing.T) {
	c := newCLI(t, "file")

	c.must("new", "gp", "--per-race", "2", "--players", "4", "--seed", "1")
	_, err := c.run("new", "gp", "--per-race", "2", "--players", "4")
	require.ErrorContains(t, err, "already exists")

	c.must("new", "gp", "--per-race", "2", "--players", "5", "--seed", "1", "--force")
	require.Equal(t, 5, c.load("gp").Size())
}

func TestNewInvalid(t *testing.T) {
	c := newCLI(t, "file")

	_, err := c.run("new", "gp", "--per-race", "2")
	require.Error(t, err)

	_, err = c.run("new", "gp", "--players", "4")
	require.Error(t, err)

	_, err = c.run("new", "gp", "--per-race", "5", "--players", "3")
	require.ErrorIs(t, err, schedule.ErrInvalidConfiguration)

	_, err = c.run("new", "gp", "--per-race", "2", "--players", "4", "--strategy", "fastest")
	require.Error(t, err)

	_, err = c.run("new", "gp", "--per-race", "2", "--players", "4", "--pick", "last")
	require.Error(t, err)

	_, err = c.run("new", "../gp", "--per-race", "2", "--players", "4")
	require.ErrorIs(t, err, store.ErrInvalidName)

	_, err = c.run("new", "gp", "--per-race", "2", "--players", "4", "--fake", "4")
	require.Error(t, err)

	out := c.must("list")
	require.Contains(t, out, "No saved tournaments.")
}

func TestNewFromConfigFile(t *testing.T) {
	c := newCLI(t, "file")

	players := filepath.Join(t.TempDir(), "players.txt")
	require.NoError(t, os.WriteFile(players, []byte("Max\nLewis\nTeam@Home\nCharles\nLando\n"), 0o644))

	config := filepath.Join(t.TempDir(), "league.yaml")
	require.NoError(t, os.WriteFile(config, []byte(fmt.Sprintf(`name: league
players-per-race: 3
points: [4, 3, 2, 1]
fastest-lap-points: 2
source: file
file: %s
strategy: low-cost
pick: random
seed: 11
`, players)), 0o644))

	c.must("new", "--config", config)

	tour := c.load("league")
	require.Equal(t, race.Config{
		Name:             "league",
		PlayersPerRace:   3,
		Points:           []int{4, 3, 2, 1},
		FastestLapPoints: 2,
	}, tour.Config())
	require.Equal(t, 5, tour.Size())
	require.False(t, tour.SomeoneMissingAnOpponent())
	require.True(t, tour.AllSameRaceCount())

	// A name may hold an @, the lap starts after the last one.
	var r race.Race
	id, _ := tour.Lookup("Team@Home")
	for _, candidate := range tour.Races() {
		if candidate.Contains(id) {
			r = candidate
			break
		}
	}

	c.must(append([]string{"result", "league"}, finish(tour, r)...)...)
	require.Len(t, c.load("league").Results(), 1)

	// Flags win over the file.
	c.must("new", "cup", "--config", config, "--per-race", "2", "--fake", "6")
	tour = c.load("cup")
	require.Equal(t, 2, tour.Config().PlayersPerRace)
	require.Equal(t, 6, tour.Size())
}

func TestNewGeneratesName(t *testing.T) {
	c := newCLI(t, "file")

	out := c.must("new", "--per-race", "2", "--players", "3", "--seed", "3")
	require.Contains(t, out, "Tournament tour-")

	out = c.must("list")
	require.Contains(t, out, "tour-")
}

func TestSameSeedSameSchedule(t *testing.T) {
	c := newCLI(t, "file")

	c.must("new", "a", "--per-race", "3", "--players", "7", "--pick", "random", "--seed", "5")
	c.must("new", "b", "--per-race", "3", "--players", "7", "--pick", "random", "--seed", "5")

	require.Equal(t, c.load("a").Races(), c.load("b").Races())
}

func TestResultInvalid(t *testing.T) {
	c := newCLI(t, "file")
	c.must("new", "gp", "--per-race", "2", "--players", "3", "--seed", "2")

	_, err := c.run("result", "gp", "Z@1:00.000", "A@1:01.000")
	require.ErrorIs(t, err, race.ErrUnknownEntry)

	_, err = c.run("result", "gp", "A1:00.000", "B@1:01.000")
	require.Error(t, err)

	_, err = c.run("result", "gp", "A@fast", "B@1:01.000")
	require.Error(t, err)

	_, err = c.run("result", "gp", "A@1:00.000")
	require.Error(t, err)

	require.Empty(t, c.load("gp").Results())
}
