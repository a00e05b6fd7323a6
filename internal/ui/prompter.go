// Package ui abstracts operator interaction behind a capability interface
// so the confirmation flow runs the same under a terminal, a web form, or a
// scripted test harness.
package ui

// Option is one selectable item. Value is what gets returned; Label is what
// the operator sees.
type Option struct {
	Label string
	Value string
}

// Prompter is the operator-input capability. Implementations block until
// the operator answers; a dismissed prompt returns the safe default (empty
// selection, the given confirm default).
type Prompter interface {
	// MultiSelect presents a checkbox list, default nothing selected, and
	// returns the values the operator checked.
	MultiSelect(title string, opts []Option) ([]string, error)
	// Confirm presents a yes/no gate and returns the answer; cancelling or
	// dismissing yields def.
	Confirm(question string, def bool) (bool, error)
	// Choose presents a single-choice menu and returns the chosen index.
	Choose(title string, opts []string) (int, error)
}

// Scripted replays canned answers; it backs tests and non-interactive runs.
// Each call consumes the next queued answer; running out yields the safe
// default.
type Scripted struct {
	Selections [][]string
	Confirms   []bool
	Choices    []int

	selAt, confAt, choiceAt int
}

func (s *Scripted) MultiSelect(title string, opts []Option) ([]string, error) {
	if s.selAt >= len(s.Selections) {
		return nil, nil
	}
	out := s.Selections[s.selAt]
	s.selAt++
	return out, nil
}

func (s *Scripted) Confirm(question string, def bool) (bool, error) {
	if s.confAt >= len(s.Confirms) {
		return def, nil
	}
	out := s.Confirms[s.confAt]
	s.confAt++
	return out, nil
}

func (s *Scripted) Choose(title string, opts []string) (int, error) {
	if s.choiceAt >= len(s.Choices) {
		return 0, nil
	}
	out := s.Choices[s.choiceAt]
	s.choiceAt++
	return out, nil
}
