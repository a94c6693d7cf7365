// Package llm - util.go provides shared utilities for model response processing.
package llm

import "strings"

// CleanResponseLine normalizes a single-line model response. Models sometimes
// wrap plain-text answers in markdown code fences or pad them with blank
// lines even when instructed not to; this strips fences and returns the
// first non-empty line.
func CleanResponseLine(text string) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Drop a potential language identifier on the fence line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := strings.TrimSpace(text[:idx])
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}
