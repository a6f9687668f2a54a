package term

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Environment describes the execution context the tool writes into:
// the standard streams, whether they are terminals, and the encoding
// expected on stdout. Tests override individual fields to simulate
// redirected or interactive output.
type Environment struct {
	Stdin          io.Reader
	StdinIsTTY     bool
	Stdout         io.Writer
	StdoutIsTTY    bool
	StdoutEncoding string
	Stderr         io.Writer
	StderrIsTTY    bool
}

// NewEnvironment probes the real process streams. Terminals are
// assumed to speak UTF-8.
func NewEnvironment() *Environment {
	return &Environment{
		Stdin:          os.Stdin,
		StdinIsTTY:     term.IsTerminal(int(os.Stdin.Fd())),
		Stdout:         os.Stdout,
		StdoutIsTTY:    term.IsTerminal(int(os.Stdout.Fd())),
		StdoutEncoding: "utf-8",
		Stderr:         os.Stderr,
		StderrIsTTY:    term.IsTerminal(int(os.Stderr.Fd())),
	}
}
