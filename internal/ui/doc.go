// Package ui provides the color themes and terminal styles shared by the CLI
// and the REPL. Colors are disabled by --no-color, by the NO_COLOR
// environment variable, and when standard output is not a terminal.
package ui
