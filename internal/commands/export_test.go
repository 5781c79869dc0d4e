package commands

// SetPromptPassword replaces the password prompt for the duration of a test.
func SetPromptPassword(fn func(title string) (string, error)) (restore func()) {
	prev := promptPassword
	promptPassword = fn
	return func() { promptPassword = prev }
}

// ErrNoTerminal is what the prompt returns when stdin is not a terminal.
var ErrNoTerminal = errNoTerminal
