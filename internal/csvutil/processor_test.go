package csvutil

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/lepinkainen/roster/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	Name string
	Age  int
}

func parseRow(record []string) (row, error) {
	age, err := strconv.Atoi(strings.TrimSpace(record[1]))
	if err != nil {
		return row{}, fmt.Errorf("age %q is not a number", record[1])
	}
	return row{Name: record[0], Age: age}, nil
}

var nameAge = ProcessorOptions{Header: []string{"name", "age"}}

func TestProcessCSV(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("people.csv", "name,age\nAlice,30\nBob, 25\n\"Smith, Jo\",40\n")

	rows, err := ProcessCSV(env.Path("people.csv"), parseRow, nameAge)
	require.NoError(t, err)
	assert.Equal(t, []row{{"Alice", 30}, {"Bob", 25}, {"Smith, Jo", 40}}, rows)
}

func TestProcessCSV_EmptyFile(t *testing.T) {
	env := testutil.NewTestEnv(t)
	env.WriteFileString("empty.csv", "")

	_, err := ProcessCSV(env.Path("empty.csv"), parseRow, nameAge)
	assert.Error(t, err)
}

func TestProcessCSV_FileNotFound(t *testing.T) {
	_, err := ProcessCSV("/nonexistent/file.csv", parseRow, nameAge)
	assert.ErrorContains(t, err, "failed to open CSV file")
}

func TestProcessReader_HeaderMismatch(t *testing.T) {
	_, err := ProcessReader(strings.NewReader("first,second\nx,1\n"), parseRow, nameAge)
	assert.ErrorContains(t, err, "unexpected header")
}

func TestProcessReader_HeaderCaseInsensitive(t *testing.T) {
	rows, err := ProcessReader(strings.NewReader("Name, AGE\nAlice,30\n"), parseRow, nameAge)
	require.NoError(t, err)
	assert.Equal(t, []row{{"Alice", 30}}, rows)
}

func TestProcessReader_InvalidRecord(t *testing.T) {
	input := "name,age\nAlice,30\nBob,old\nCarol,22\n"

	_, err := ProcessReader(strings.NewReader(input), parseRow, nameAge)
	assert.ErrorContains(t, err, "invalid record on line 3")

	opts := nameAge
	opts.SkipInvalid = true
	rows, err := ProcessReader(strings.NewReader(input), parseRow, opts)
	require.NoError(t, err)
	assert.Equal(t, []row{{"Alice", 30}, {"Carol", 22}}, rows)
}

func TestProcessReader_WrongFieldCount(t *testing.T) {
	input := "name,age\nAlice,30,extra\nBob,25\n"

	_, err := ProcessReader(strings.NewReader(input), parseRow, nameAge)
	assert.ErrorContains(t, err, "failed to read record on line 2")

	opts := nameAge
	opts.SkipInvalid = true
	rows, err := ProcessReader(strings.NewReader(input), parseRow, opts)
	require.NoError(t, err)
	assert.Equal(t, []row{{"Bob", 25}}, rows)
}

func TestProcessReader_HeaderOnly(t *testing.T) {
	rows, err := ProcessReader(strings.NewReader("name,age\n"), parseRow, nameAge)
	require.NoError(t, err)
	assert.Empty(t, rows)
}
