package main

import (
	"strings"

	"rubysnap/internal/ui"
)

func indent(text, prefix string) string {
	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}

func truncatePath(p string, width int) string {
	return ui.Truncate(p, max(width, 20))
}
