// Package tui provides the interactive single-screen person form.
package tui

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	rerrors "github.com/lepinkainen/roster/internal/errors"
	"github.com/lepinkainen/roster/internal/people"
)

const (
	defaultListWidth  = 48
	defaultListHeight = 12
	nameCharLimit     = 128
)

var runProgram = func(m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen()).Run()
}

// PersonStore is the subset of the record store the form needs.
type PersonStore interface {
	Create(name string, age int) (int64, error)
	List() []people.Person
	Delete(id int64)
}

type focusArea int

const (
	focusName focusArea = iota
	focusAge
	focusList
	focusCount
)

type personItem struct {
	people.Person
}

func (i personItem) Title() string {
	return displayName(i.Name)
}

func displayName(name string) string {
	if name == "" {
		return "(no name)"
	}
	return name
}

func (i personItem) FilterValue() string {
	return i.Name
}

func (i personItem) Description() string {
	return fmt.Sprintf("age %d", i.Age)
}

type personDelegate struct{}

func (d personDelegate) Height() int                         { return 1 }
func (d personDelegate) Spacing() int                        { return 0 }
func (d personDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (d personDelegate) Render(w io.Writer, m list.Model, idx int, item list.Item) {
	p, ok := item.(personItem)
	if !ok {
		return
	}

	line := fmt.Sprintf("#%-4d %s, %s", p.ID, truncate(p.Title(), m.Width()-20), p.Description())
	if idx == m.Index() {
		_, _ = fmt.Fprint(w, selectedRowStyle.Render("> "+line))
		return
	}
	_, _ = fmt.Fprint(w, rowStyle.Render("  "+line))
}

type model struct {
	store     PersonStore
	nameInput textinput.Model
	ageInput  textinput.Model
	list      list.Model
	persons   []people.Person
	focus     focusArea
	status    string
	statusErr bool
}

func newModel(store PersonStore) *model {
	name := textinput.New()
	name.Prompt = ""
	name.Placeholder = "Name"
	name.CharLimit = nameCharLimit

	age := textinput.New()
	age.Prompt = ""
	age.Placeholder = "Age"
	age.CharLimit = 10

	l := list.New(nil, personDelegate{}, defaultListWidth, defaultListHeight)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.DisableQuitKeybindings()
	l.Styles.NoItems = emptyStyle

	m := &model{
		store:     store,
		nameInput: name,
		ageInput:  age,
		list:      l,
	}
	m.setFocus(focusName)
	m.refresh()
	return m
}

// refresh replaces the in-memory mirror with the store's full contents.
func (m *model) refresh() {
	m.persons = m.store.List()

	items := make([]list.Item, len(m.persons))
	for i, p := range m.persons {
		items[i] = personItem{Person: p}
	}
	m.list.SetItems(items)
}

func (m *model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	m.nameInput.Blur()
	m.ageInput.Blur()

	switch f {
	case focusName:
		return m.nameInput.Focus()
	case focusAge:
		return m.ageInput.Focus()
	}
	return nil
}

func (m *model) Init() tea.Cmd { return textinput.Blink }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab":
			return m, m.setFocus((m.focus + 1) % focusCount)
		case "shift+tab":
			return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
		case "enter":
			if m.focus != focusList {
				return m, m.submit()
			}
		case "d", "delete", "backspace":
			if m.focus == focusList {
				m.deleteSelected()
				return m, nil
			}
		}
	case tea.WindowSizeMsg:
		width := clamp(defaultListWidth, msg.Width-4, 24)
		height := clamp(defaultListHeight, msg.Height-12, 3)
		m.list.SetSize(width, height)
		return m, nil
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusAge:
		m.ageInput, cmd = m.ageInput.Update(msg)
	case focusList:
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// submit validates the form, stores a new person and re-syncs the list.
func (m *model) submit() tea.Cmd {
	name := m.nameInput.Value()
	age, err := parseAge(m.ageInput.Value())
	if err != nil {
		m.setStatus(err.Error(), true)
		return m.setFocus(focusAge)
	}

	id, err := m.store.Create(name, age)
	if err != nil {
		m.setStatus("Could not save person", true)
		return nil
	}

	m.nameInput.Reset()
	m.ageInput.Reset()
	m.refresh()
	m.selectID(id)
	m.setStatus(fmt.Sprintf("Added %s", displayName(name)), false)
	return m.setFocus(focusName)
}

func (m *model) deleteSelected() {
	selected, ok := m.list.SelectedItem().(personItem)
	if !ok {
		m.setStatus("Nothing to delete", true)
		return
	}

	m.store.Delete(selected.ID)
	m.refresh()
	m.setStatus(fmt.Sprintf("Deleted %s", selected.Title()), false)
}

func (m *model) selectID(id int64) {
	for i, p := range m.persons {
		if p.ID == id {
			m.list.Select(i)
			return
		}
	}
}

func (m *model) setStatus(msg string, isErr bool) {
	m.status = msg
	m.statusErr = isErr
}

func (m *model) View() string {
	header := headerStyle.Render("People")

	nameLabel, ageLabel, listLabel := labelStyle, labelStyle, labelStyle
	switch m.focus {
	case focusName:
		nameLabel = focusedLabelStyle
	case focusAge:
		ageLabel = focusedLabelStyle
	case focusList:
		listLabel = focusedLabelStyle
	}

	form := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, nameLabel.Render("Name"), m.nameInput.View()),
		lipgloss.JoinHorizontal(lipgloss.Top, ageLabel.Render("Age"), m.ageInput.View()),
	)

	listHeader := listLabel.Render(fmt.Sprintf("Saved (%d)", len(m.persons)))

	status := ""
	if m.status != "" {
		if m.statusErr {
			status = errorStyle.Render(m.status)
		} else {
			status = statusStyle.Render(m.status)
		}
	}

	help := helpStyle.Render("Tab switch field | Enter add | d delete selected | Esc quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, form, listHeader, m.list.View(), status, help)
}

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Width(8).
			Foreground(lipgloss.Color("247"))

	focusedLabelStyle = labelStyle.Copy().
				Bold(true).
				Foreground(lipgloss.Color("110"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedRowStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("230")).
				Background(lipgloss.Color("237"))

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Faint(true)

	statusStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("114"))

	errorStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("161"))

	helpStyle = lipgloss.NewStyle().
			MarginTop(1).
			Foreground(lipgloss.Color("244"))
)

// Run shows the form until the user quits.
func Run(store PersonStore) error {
	finalModel, err := runProgram(newModel(store))
	if err != nil {
		return err
	}
	if _, ok := finalModel.(*model); !ok {
		return fmt.Errorf("unexpected program result")
	}
	return nil
}

func parseAge(value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, rerrors.NewValidationError("age", value, "is required")
	}
	age, err := strconv.Atoi(value)
	if err != nil {
		return 0, rerrors.NewValidationError("age", value, "must be a whole number")
	}
	return age, nil
}

// truncate cuts value to at most width terminal columns.
func truncate(value string, width int) string {
	value = strings.Join(strings.Fields(value), " ")
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

func clamp(defaultValue, available, minimum int) int {
	width := defaultValue
	if available > 0 && available < defaultValue {
		width = available
	}
	if width < minimum {
		width = minimum
	}
	return width
}
