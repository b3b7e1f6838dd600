package iocli

import "io"

// IO is the terminal surface of the CLI: printing, line input and
// no-echo secret input. It is an io.Writer so tables can render into it.
type IO interface {
	io.Writer
	Println(a ...any)
	Printf(format string, a ...any)
	ReadInput(prompt string) (string, error)
	ReadPassword(prompt string) (string, error)
}
