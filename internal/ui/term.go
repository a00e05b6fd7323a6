package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	checkedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle      = lipgloss.NewStyle().Faint(true)
	questionStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))
)

// Term is the interactive terminal Prompter built on bubbletea.
type Term struct{}

func NewTerm() *Term { return &Term{} }

type keymap struct {
	Up      key.Binding
	Down    key.Binding
	Toggle  key.Binding
	Confirm key.Binding
	Quit    key.Binding
}

func defaultKeymap() keymap {
	return keymap{
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Confirm: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Quit:    key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "skip")),
	}
}

func (k keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Confirm, k.Quit}
}

func (k keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// ---- checkbox list ----

type checkboxModel struct {
	title   string
	opts    []Option
	cursor  int
	checked map[int]bool
	keys    keymap
	help    help.Model
	aborted bool
}

func newCheckboxModel(title string, opts []Option) checkboxModel {
	return checkboxModel{
		title:   title,
		opts:    opts,
		checked: map[int]bool{},
		keys:    defaultKeymap(),
		help:    help.New(),
	}
}

func (m checkboxModel) Init() tea.Cmd { return nil }

func (m checkboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.opts)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Toggle):
			m.checked[m.cursor] = !m.checked[m.cursor]
		case key.Matches(msg, m.keys.Confirm):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Quit):
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m checkboxModel) View() string {
	s := titleStyle.Render(m.title) + "\n\n"
	for i, opt := range m.opts {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		label := opt.Label
		if m.checked[i] {
			box = checkedStyle.Render("[x]")
		}
		s += fmt.Sprintf("%s%s %s\n", cursor, box, label)
	}
	s += "\n" + dimStyle.Render(m.help.View(m.keys))
	return s
}

// MultiSelect presents a checkbox list. Nothing is pre-selected; esc skips
// with an empty selection.
func (t *Term) MultiSelect(title string, opts []Option) ([]string, error) {
	if len(opts) == 0 {
		return nil, nil
	}
	final, err := tea.NewProgram(newCheckboxModel(title, opts)).Run()
	if err != nil {
		return nil, err
	}
	m := final.(checkboxModel)
	if m.aborted {
		return nil, nil
	}
	var out []string
	for i, opt := range opts {
		if m.checked[i] {
			out = append(out, opt.Value)
		}
	}
	return out, nil
}

// ---- yes/no gate ----

type confirmModel struct {
	question string
	def      bool
	answer   bool
	answered bool
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "y", "Y":
			m.answer = true
			m.answered = true
			return m, tea.Quit
		case "n", "N":
			m.answer = false
			m.answered = true
			return m, tea.Quit
		case "enter", "esc", "ctrl+c":
			// Dismissal falls back to the explicit default.
			m.answer = m.def
			m.answered = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	hint := "[y/N]"
	if m.def {
		hint = "[Y/n]"
	}
	return questionStyle.Render(m.question) + " " + dimStyle.Render(hint) + "\n"
}

// Confirm presents a yes/no gate; enter/esc resolve to def.
func (t *Term) Confirm(question string, def bool) (bool, error) {
	final, err := tea.NewProgram(confirmModel{question: question, def: def}).Run()
	if err != nil {
		return def, err
	}
	return final.(confirmModel).answer, nil
}

// ---- single choice menu ----

type chooseModel struct {
	title   string
	opts    []string
	cursor  int
	keys    keymap
	aborted bool
}

func (m chooseModel) Init() tea.Cmd { return nil }

func (m chooseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(k, m.keys.Down):
			if m.cursor < len(m.opts)-1 {
				m.cursor++
			}
		case key.Matches(k, m.keys.Confirm):
			return m, tea.Quit
		case key.Matches(k, m.keys.Quit):
			m.aborted = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m chooseModel) View() string {
	s := titleStyle.Render(m.title) + "\n\n"
	for i, opt := range m.opts {
		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		s += cursor + opt + "\n"
	}
	return s
}

// Choose presents a single-choice menu and returns the chosen index; esc
// picks the last option (exit lives there by convention).
func (t *Term) Choose(title string, opts []string) (int, error) {
	final, err := tea.NewProgram(chooseModel{title: title, opts: opts, keys: defaultKeymap()}).Run()
	if err != nil {
		return len(opts) - 1, err
	}
	m := final.(chooseModel)
	if m.aborted {
		return len(opts) - 1, nil
	}
	return m.cursor, nil
}
