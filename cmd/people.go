package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/lepinkainen/roster/internal/config"
	"github.com/lepinkainen/roster/internal/csvutil"
	"github.com/lepinkainen/roster/internal/fileutil"
	"github.com/lepinkainen/roster/internal/people"
	"github.com/lepinkainen/roster/internal/tui"
)

var runUI = tui.Run

// AddCmd represents the add command
type AddCmd struct {
	Name string `short:"n" help:"Name of the person" required:""`
	Age  int    `short:"a" help:"Age of the person" required:""`
}

// ListCmd represents the list command
type ListCmd struct {
	Format string `short:"F" help:"Output format" enum:"text,json,yaml" default:"text"`
}

// DeleteCmd represents the delete command
type DeleteCmd struct {
	IDs []int64 `arg:"" name:"id" help:"Ids of the people to delete"`
}

// ImportCmd represents the import command
type ImportCmd struct {
	Input       string `short:"f" help:"Path to CSV file with a name,age header" required:"" type:"existingfile"`
	SkipInvalid bool   `help:"Skip rows that cannot be parsed instead of aborting"`
}

// ExportCmd represents the export command
type ExportCmd struct {
	Output    string `short:"o" help:"Path to the output file" required:""`
	Format    string `short:"F" help:"Output format" enum:"json,yaml" default:"json"`
	Overwrite bool   `help:"Overwrite the output file if it exists"`
}

// UICmd represents the interactive form command
type UICmd struct{}

func (a *AddCmd) Run() error {
	store := openStore()
	defer func() { _ = store.Close() }()

	id, err := store.Create(a.Name, a.Age)
	if err != nil {
		return fmt.Errorf("failed to add person: %w", err)
	}

	slog.Debug("Added person", "id", id, "name", a.Name, "age", a.Age)
	_, err = fmt.Fprintln(stdout, id)
	return err
}

func (l *ListCmd) Run() error {
	store := openStore()
	defer func() { _ = store.Close() }()

	persons := store.List()

	var (
		out []byte
		err error
	)
	switch l.Format {
	case "json":
		out, err = fileutil.MarshalJSON(persons)
	case "yaml":
		out, err = fileutil.MarshalYAML(persons)
	default:
		return writeTable(persons)
	}
	if err != nil {
		return err
	}

	_, err = stdout.Write(out)
	return err
}

func writeTable(persons []people.Person) error {
	if len(persons) == 0 {
		_, err := fmt.Fprintln(stdout, "No people stored.")
		return err
	}

	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tAGE")
	for _, p := range persons {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%d\n", p.ID, p.Name, p.Age)
	}
	return tw.Flush()
}

func (d *DeleteCmd) Run() error {
	store := openStore()
	defer func() { _ = store.Close() }()

	for _, id := range d.IDs {
		store.Delete(id)
	}
	return nil
}

func (i *ImportCmd) Run() error {
	persons, err := csvutil.ProcessCSV(i.Input, parsePersonRecord, csvutil.ProcessorOptions{
		Header:      []string{"name", "age"},
		SkipInvalid: i.SkipInvalid,
	})
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", i.Input, err)
	}
	if len(persons) == 0 {
		slog.Info("No people to import", "file", i.Input)
		return nil
	}

	store := openStore()
	defer func() { _ = store.Close() }()

	ids, err := store.CreateMany(persons)
	if err != nil {
		return fmt.Errorf("failed to import people: %w", err)
	}

	slog.Info("Imported people", "file", i.Input, "count", len(ids))
	return nil
}

func parsePersonRecord(record []string) (people.Person, error) {
	ageField := strings.TrimSpace(record[1])
	age, err := strconv.Atoi(ageField)
	if err != nil {
		return people.Person{}, fmt.Errorf("age %q is not a whole number", ageField)
	}
	return people.Person{Name: strings.TrimSpace(record[0]), Age: age}, nil
}

func (e *ExportCmd) Run() error {
	store := openStore()
	defer func() { _ = store.Close() }()

	persons := store.List()
	overwrite := config.OverwriteFiles

	var (
		written bool
		err     error
	)
	switch e.Format {
	case "yaml":
		written, err = fileutil.WriteYAMLFile(persons, e.Output, overwrite)
	default:
		written, err = fileutil.WriteJSONFile(persons, e.Output, overwrite)
	}
	if err != nil {
		return fmt.Errorf("failed to export people: %w", err)
	}
	if written {
		slog.Info("Exported people", "file", e.Output, "count", len(persons))
	}
	return nil
}

func (u *UICmd) Run() error {
	store := openStore()
	defer func() { _ = store.Close() }()

	// The form owns the terminal, so log lines go to a file next to the database.
	prevLogger := slog.Default()
	logPath := filepath.Join(filepath.Dir(store.Path()), "roster.log")
	if f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600); err == nil {
		defer func() { _ = f.Close() }()
		initLogging(f, parseLevel(config.LogLevel))
		defer slog.SetDefault(prevLogger)
	} else {
		initLogging(io.Discard, parseLevel(config.LogLevel))
		defer slog.SetDefault(prevLogger)
	}

	return runUI(store)
}
