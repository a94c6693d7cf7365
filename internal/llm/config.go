package llm

import "os"

// DefaultModel is the model used for field extraction when none is
// configured. Extraction is a simple classification-grade task, so the
// lightweight flash tier is enough.
const DefaultModel = "gemini-1.5-flash"

// ModelFromEnv returns the configured model name, or DefaultModel when
// GEMINI_MODEL is unset.
func ModelFromEnv() string {
	if model := os.Getenv("GEMINI_MODEL"); model != "" {
		return model
	}
	return DefaultModel
}
