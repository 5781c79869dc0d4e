package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"golang.org/x/term"
)

var errNoTerminal = errors.New("stdin is not a terminal")

// promptPassword asks for a password without echo. Tests replace it.
var promptPassword = func(title string) (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errNoTerminal
	}

	var password string
	input := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&password)

	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return "", fmt.Errorf("prompt failed: %w", err)
	}
	return password, nil
}

// readPassword returns flagValue if given, otherwise prompts.
func readPassword(flagValue, title string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	pw, err := promptPassword(title)
	if errors.Is(err, errNoTerminal) {
		return "", errors.New("password required (use --password)")
	}
	if err != nil {
		return "", err
	}
	if pw == "" {
		return "", errors.New("password required")
	}
	return pw, nil
}
