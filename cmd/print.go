package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders md for the terminal, or prints it raw if it cannot.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints a formatted error on stderr.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
