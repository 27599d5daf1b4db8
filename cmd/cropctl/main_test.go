package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"agniro/pkg/climate"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestMonthsCmd(t *testing.T) {
	out, err := run(t, "months", "Jun-Jul (1st season),", "Nov-Dec (2nd season)")
	require.NoError(t, err)
	assert.Equal(t, "Jun, Jul, Nov, Dec\n", out)

	out, err = run(t, "months", "--json", "N/A")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)

	_, err = run(t, "months")
	assert.Error(t, err)
}

func TestSeedCmd(t *testing.T) {
	out, err := run(t, "seed", "--region", "Eastern")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 11)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))

	_, err = run(t, "seed", "--region", "Southern")
	assert.ErrorContains(t, err, "unknown region")
}

func TestCalendarCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cal.xlsx")
	out, err := run(t, "calendar", "--out", path, "--region", "Central")
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 10 crops")

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(climate.CalendarSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 11)
}

func TestCalendarCmdForClient(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cal.xlsx")
	out, err := run(t, "calendar", "--out", path, "--client", "c1", "--db", filepath.Join(dir, "agniro.db"))
	require.NoError(t, err)
	assert.Contains(t, out, "wrote 40 crops")
}
