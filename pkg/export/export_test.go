package export_test

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"laptudirm.com/x/pitlane/pkg/export"
	"laptudirm.com/x/pitlane/pkg/race"
)

func tournament(t *testing.T) *race.Tournament {
	t.Helper()

	tour, err := race.New([]string{"P1", "P2", "P10"}, race.Config{
		Name:             "gp",
		PlayersPerRace:   2,
		Points:           []int{3, 1},
		FastestLapPoints: 1,
	})
	require.NoError(t, err)

	require.NoError(t, tour.CommitRace(0, 1))
	require.NoError(t, tour.CommitRace(1, 2))
	require.NoError(t, tour.RecordResult([]race.Submission{
		{Entry: 1, Position: 1, Lap: 81 * time.Second},
		{Entry: 0, Position: 2, Lap: 80500 * time.Millisecond},
	}))

	return tour
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.Write(tournament(t), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{export.RacesSheet, export.StandingsSheet, export.FastestLapsSheet}, f.GetSheetList())

	rows, err := f.GetRows(export.RacesSheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Race", "Entrants", "Done"},
		{"1", "P1, P2", "yes"},
		{"2", "P2, P10", "no"},
	}, rows)

	// P2 wins, P1 takes the fastest lap bonus.
	rows, err = f.GetRows(export.StandingsSheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Position", "Name", "Races", "Done", "Points"},
		{"1", "P2", "2", "1", "3"},
		{"2", "P1", "1", "1", "2"},
		{"3", "P10", "1", "0", "0"},
	}, rows)

	rows, err = f.GetRows(export.FastestLapsSheet)
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"Position", "Name", "Lap"},
		{"1", "P1", "1:20.500"},
		{"2", "P2", "1:21.000"},
	}, rows)
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gp.xlsx")
	require.NoError(t, export.Save(tournament(t), path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(export.StandingsSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
}
