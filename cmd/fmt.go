package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// printMarkdown renders markdown to the terminal, falling back to the raw
// source when the renderer cannot be created.
func printMarkdown(source string) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Println(source)
		return
	}
	out, err := r.Render(source)
	if err != nil {
		fmt.Println(source)
		return
	}
	fmt.Fprint(os.Stdout, out)
}
