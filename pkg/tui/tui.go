// Package tui provides the interactive scale builder for ambitus
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Pietzcker/ambitus/pkg/notation"
	"github.com/Pietzcker/ambitus/pkg/pitch"
	"github.com/Pietzcker/ambitus/pkg/scale"
)

// Parchment and ink colors
var (
	ink       = lipgloss.Color("#E8D9B5")
	accent    = lipgloss.Color("#D4A017")
	faded     = lipgloss.Color("#8A7F6A")
	panelGray = lipgloss.Color("#2B2B2B")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Background(panelGray).
			Padding(0, 2).
			MarginBottom(1)

	menuStyle = lipgloss.NewStyle().
			Foreground(ink).
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true).
			PaddingLeft(2)

	descStyle = lipgloss.NewStyle().
			Foreground(faded).
			PaddingLeft(4)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF4040")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB347"))

	glyphStyle = lipgloss.NewStyle().
			Foreground(accent).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 2)
)

// State is the question the wizard is asking.
type State int

const (
	StateScale State = iota
	StateStart
	StateStop
	StateClef
	StateKey
	StateSeparator
	StateHead
	StateStems
	StateSpacer
	StateEnd
	StateResult
)

// MenuItem is one choice in a menu state.
type MenuItem struct {
	Title       string
	Description string
}

type prompt struct {
	title       string
	placeholder string
}

var prompts = map[State]prompt{
	StateStart:     {"BEGIN SCALE AT", "C4"},
	StateStop:      {"END SCALE AT OR BELOW", "one octave above the beginning"},
	StateKey:       {"KEY SIGNATURE", "c"},
	StateSeparator: {"SEPARATOR (one of ; : / ? _)", notation.DefaultSeparator},
	StateSpacer:    {"SPACING IN FRONT OF THE SCALE", "none"},
	StateEnd:       {"CHARACTERS AT THE END", notation.DefaultTerminator},
}

var (
	headItems = []MenuItem{
		{Title: "q", Description: "quarter note"},
		{Title: "h", Description: "half note"},
		{Title: "w", Description: "whole note"},
	}
	stemItems = []MenuItem{
		{Title: "Keep stems"},
		{Title: "Remove stems"},
	}
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Back, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// Model represents the TUI model
type Model struct {
	catalog   *scale.Catalog
	state     State
	menuIndex int
	input     textinput.Model
	help      help.Model
	err       error
	width     int

	scaleName string
	pattern   scale.Pattern
	start     pitch.Pitch
	notes     []pitch.Pitch
	clef      *notation.Clef
	key       *notation.KeySignature
	separator string
	head      notation.NoteHead
	stemless  bool
	spacer    string
	result    string
	skipped   []string
}

// New creates the wizard over a scale catalog.
func New(catalog *scale.Catalog) Model {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 8
	ti.Width = 20

	return Model{
		catalog: catalog,
		state:   StateScale,
		input:   ti,
		help:    help.New(),
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		switch {
		case m.state == StateResult:
			return m.updateResult(msg)
		case m.isMenu():
			return m.updateMenu(msg)
		default:
			return m.updateInput(msg)
		}
	}

	if !m.isMenu() && m.state != StateResult {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) isMenu() bool {
	switch m.state {
	case StateScale, StateClef, StateHead, StateStems:
		return true
	}
	return false
}

func (m Model) menuItems() []MenuItem {
	switch m.state {
	case StateScale:
		names := m.catalog.Names()
		items := make([]MenuItem, 0, len(names))
		for _, name := range names {
			p, _ := m.catalog.Lookup(name)
			items = append(items, MenuItem{Title: name, Description: fmt.Sprint(p)})
		}
		return items
	case StateClef:
		items := make([]MenuItem, 0, 4)
		for _, c := range notation.Clefs() {
			items = append(items, MenuItem{Title: c.Name, Description: fmt.Sprintf("%v-%v", c.Low, c.High)})
		}
		return items
	case StateHead:
		return headItems
	case StateStems:
		return stemItems
	}
	return nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.menuItems()
	switch {
	case key.Matches(msg, keys.Up):
		if m.menuIndex > 0 {
			m.menuIndex--
		}
	case key.Matches(msg, keys.Down):
		if m.menuIndex < len(items)-1 {
			m.menuIndex++
		}
	case key.Matches(msg, keys.Back):
		return m.back()
	case msg.String() == "q":
		return m, tea.Quit
	case key.Matches(msg, keys.Select):
		return m.choose(items[m.menuIndex].Title)
	}
	return m, nil
}

func (m Model) choose(title string) (tea.Model, tea.Cmd) {
	m.err = nil
	switch m.state {
	case StateScale:
		p, err := m.catalog.Lookup(title)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.scaleName, m.pattern = title, p
		return m.enter(StateStart)
	case StateClef:
		c, err := notation.LookupClef(title)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.clef = c
		return m.enter(StateKey)
	case StateHead:
		m.head = notation.NoteHead(title)
		m.stemless = false
		if m.head.HasStem() {
			return m.enter(StateStems)
		}
		return m.enter(StateSpacer)
	case StateStems:
		m.stemless = title == stemItems[1].Title
		return m.enter(StateSpacer)
	}
	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		return m.back()
	case key.Matches(msg, keys.Select):
		return m.submit(strings.TrimSpace(m.input.Value()))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) submit(v string) (tea.Model, tea.Cmd) {
	m.err = nil
	switch m.state {
	case StateStart:
		if v == "" {
			v = prompts[StateStart].placeholder
		}
		p, err := pitch.Parse(v)
		if err != nil {
			return m.fail(err)
		}
		m.start = p
		return m.enter(StateStop)

	case StateStop:
		stop := scale.DefaultStop(m.start)
		if v != "" {
			p, err := pitch.Parse(v)
			if err != nil {
				return m.fail(err)
			}
			stop = p
		}
		notes, err := scale.BuildChecked(m.pattern, m.start, stop)
		if err != nil {
			// start over from the beginning of the range
			next, cmd := m.enter(StateStart)
			nm := next.(Model)
			nm.err = err
			return nm, cmd
		}
		m.notes = notes
		return m.enter(StateClef)

	case StateKey:
		if v == "" {
			v = prompts[StateKey].placeholder
		}
		k, err := notation.LookupKey(v)
		if err != nil {
			return m.fail(err)
		}
		m.key = k
		return m.enter(StateSeparator)

	case StateSeparator:
		if v == "" {
			v = notation.DefaultSeparator
		}
		if !isSeparator(v) {
			return m.fail(fmt.Errorf("invalid separator %q", v))
		}
		m.separator = v
		return m.enter(StateHead)

	case StateSpacer:
		m.spacer = v
		return m.enter(StateEnd)

	case StateEnd:
		if v == "" {
			v = notation.DefaultTerminator
		}
		m.render(v)
		return m.enter(StateResult)
	}
	return m, nil
}

// fail shows err and asks the same question again.
func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.input.Reset()
	return m, nil
}

func isSeparator(s string) bool {
	for _, sep := range notation.Separators {
		if s == sep {
			return true
		}
	}
	return false
}

func (m *Model) render(terminator string) {
	m.skipped = nil
	f := &notation.Formatter{
		Encoder:    notation.Encoder{Clef: m.clef, Key: m.key, Head: m.head, Stemless: m.stemless},
		Separator:  m.separator,
		Spacer:     m.spacer,
		Terminator: terminator,
		OnSkip: func(p pitch.Pitch, err error) {
			m.skipped = append(m.skipped, err.Error())
		},
	}
	m.result, m.err = f.Format(m.notes)
}

func (m Model) back() (tea.Model, tea.Cmd) {
	m.err = nil
	switch m.state {
	case StateStart:
		return m.enter(StateScale)
	case StateStop:
		return m.enter(StateStart)
	case StateClef:
		return m.enter(StateStop)
	case StateKey:
		return m.enter(StateClef)
	case StateSeparator:
		return m.enter(StateKey)
	case StateHead:
		return m.enter(StateSeparator)
	case StateStems:
		return m.enter(StateHead)
	case StateSpacer:
		if m.head.HasStem() {
			return m.enter(StateStems)
		}
		return m.enter(StateHead)
	case StateEnd:
		return m.enter(StateSpacer)
	}
	return m, nil
}

func (m Model) enter(s State) (tea.Model, tea.Cmd) {
	m.state = s
	m.menuIndex = 0
	if p, ok := prompts[s]; ok {
		m.input.Reset()
		m.input.Placeholder = p.placeholder
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Select), key.Matches(msg, keys.Back):
		m.err = nil
		m.result = ""
		m.skipped = nil
		return m.enter(StateScale)
	case msg.String() == "q":
		return m, tea.Quit
	}
	return m, nil
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" AMBITUS "))
	s.WriteString("\n")

	switch {
	case m.state == StateResult:
		s.WriteString(m.viewResult())
	case m.isMenu():
		s.WriteString(m.viewMenu())
	default:
		s.WriteString(m.viewInput())
	}

	if m.err != nil && m.state != StateResult {
		s.WriteString("\n")
		s.WriteString(errorStyle.Render("✗ " + m.err.Error()))
	}

	s.WriteString("\n")
	s.WriteString(helpStyle.Render(m.help.View(keys)))

	return s.String()
}

func (m Model) viewMenu() string {
	var s strings.Builder

	titles := map[State]string{
		StateScale: " CHOOSE SCALE ",
		StateClef:  " CHOOSE CLEF ",
		StateHead:  " CHOOSE NOTE HEAD ",
		StateStems: " STEMS ",
	}
	s.WriteString(titleStyle.Render(titles[m.state]))
	s.WriteString("\n\n")

	for i, item := range m.menuItems() {
		if i == m.menuIndex {
			s.WriteString(selectedStyle.Render(fmt.Sprintf("▸ %s", item.Title)))
			if item.Description != "" {
				s.WriteString("\n")
				s.WriteString(descStyle.Render(item.Description))
			}
		} else {
			s.WriteString(menuStyle.Render(fmt.Sprintf("  %s", item.Title)))
		}
		s.WriteString("\n")
	}

	return boxStyle.Render(s.String())
}

func (m Model) viewInput() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" " + prompts[m.state].title + " "))
	s.WriteString("\n\n")
	if m.scaleName != "" {
		s.WriteString(descStyle.Render("scale: " + m.scaleName))
		s.WriteString("\n")
	}
	if len(m.notes) > 0 && m.state > StateStop {
		s.WriteString(descStyle.Render(fmt.Sprint(m.notes)))
		s.WriteString("\n")
	}
	s.WriteString(m.input.View())

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(titleStyle.Render(" ERROR "))
		s.WriteString("\n\n")
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Rendering failed: %s", m.err.Error())))
	} else {
		s.WriteString(titleStyle.Render(" RESULT "))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Scale: %v\n\n", m.notes))
		s.WriteString(glyphStyle.Render(m.result))
		for _, w := range m.skipped {
			s.WriteString("\n")
			s.WriteString(warnStyle.Render("! " + w))
		}
	}

	s.WriteString("\n\n")
	s.WriteString(descStyle.Render("Press enter for another scale, q to quit"))

	return boxStyle.Render(s.String())
}

// Run starts the TUI application
func Run(catalog *scale.Catalog) error {
	p := tea.NewProgram(New(catalog), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
