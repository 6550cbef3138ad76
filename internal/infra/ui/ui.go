// Where: internal/infra/ui/ui.go
// What: UserInterface adapter used by commands.
// Why: Give commands a small output surface that tests can capture.
package ui

import "io"

// KeyValue is a key/value pair rendered inside a block.
type KeyValue struct {
	Key   string
	Value any
}

// UserInterface exposes high-level output helpers used by commands.
type UserInterface interface {
	Info(msg string)
	Warn(msg string)
	Success(msg string)
	Block(emoji, title string, rows []KeyValue)
}

// NewConsoleUI returns a UserInterface backed by a decorated Console.
func NewConsoleUI(out io.Writer, emoji bool) UserInterface {
	return consoleUI{console: NewWithEmoji(out, emoji)}
}

type consoleUI struct {
	console *Console
}

func (c consoleUI) Info(msg string)    { c.console.Info(msg) }
func (c consoleUI) Warn(msg string)    { c.console.Warn(msg) }
func (c consoleUI) Success(msg string) { c.console.Success(msg) }

func (c consoleUI) Block(emoji, title string, rows []KeyValue) {
	c.console.Header(emoji, title)
	for _, kv := range rows {
		c.console.Item(kv.Key, kv.Value)
	}
}
