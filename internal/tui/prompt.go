package tui

import "github.com/charmbracelet/huh"

// Prompter abstracts interactive prompts for testability.
type Prompter interface {
	Confirm(title, description string) (bool, error)
}

// HuhPrompter implements Prompter with charmbracelet/huh forms.
type HuhPrompter struct{}

// NewPrompter creates a HuhPrompter.
func NewPrompter() Prompter {
	return &HuhPrompter{}
}

// Confirm shows a yes/no confirmation prompt.
func (*HuhPrompter) Confirm(title, description string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&confirmed),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirmed, nil
}
