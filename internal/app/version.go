package app

import (
	"fmt"
	"io"
	"runtime"
	"slices"
)

// Version is the application version, set at build time with
// -ldflags "-X github.com/agbru/bigcalc/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether args ask for the version.
func HasVersionFlag(args []string) bool {
	return slices.ContainsFunc(args, func(a string) bool {
		return a == "--version" || a == "-version" || a == "-V"
	})
}

// PrintVersion writes the version line.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "bigcalc %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
