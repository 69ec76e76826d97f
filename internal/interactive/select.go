package interactive

import (
	"github.com/AlecAivazis/survey/v2"
)

// ChooseOption presents a list of options and returns the chosen index.
// On a real terminal it uses an arrow-key selection UI; otherwise it falls
// back to a numbered prompt so piped input keeps working.
func (c *Console) ChooseOption(message string, options []string, def int) (int, error) {
	if def < 0 || def >= len(options) {
		def = 0
	}
	if c.tty {
		return c.chooseWithSurvey(message, options, def)
	}
	return c.chooseWithNumbers(message, options, def)
}

func (c *Console) chooseWithSurvey(message string, options []string, def int) (int, error) {
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: options[def],
	}

	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return 0, err
	}

	for i, option := range options {
		if option == selected {
			return i, nil
		}
	}
	return def, nil
}

func (c *Console) chooseWithNumbers(message string, options []string, def int) (int, error) {
	c.Printf("%s\n", message)
	for i, option := range options {
		c.Printf("%3d. %s\n", i+1, option)
	}
	selection, err := c.Choose("Select a number", def+1, 1, len(options))
	if err != nil {
		return 0, err
	}
	return selection - 1, nil
}
