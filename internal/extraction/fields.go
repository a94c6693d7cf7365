package extraction

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// MaxPromptChars bounds the visible text sent to the model, to cap cost and
// latency. Postings longer than this are truncated.
const MaxPromptChars = 10000

// InvalidPostingSentinel is the single-line response the model is instructed
// to return when the input text is not a job posting.
const InvalidPostingSentinel = "Invalid job posting"

// NotSpecified is the fallback the model is instructed to use when a
// posting's location cannot be determined.
const NotSpecified = "Not specified"

// ErrInvalidPosting is returned by ParseFields when the model reported that
// the input is not a job posting. Callers warn the user and skip record
// creation; it is distinct from a posting with merely empty fields.
var ErrInvalidPosting = errors.New("input is not a job posting")

// Fields holds the three extracted job-posting fields. Any field the model
// could not determine is an empty string.
type Fields struct {
	Title    string `json:"title"`
	Company  string `json:"company"`
	Location string `json:"location"`
}

// Partial reports whether one or more fields came back empty. A partial
// result still creates a record; the caller surfaces a non-blocking warning.
func (f Fields) Partial() bool {
	return f.Title == "" || f.Company == "" || f.Location == ""
}

// BuildPrompt constructs the extraction prompt from visible posting text,
// truncated to MaxPromptChars.
//
// The response protocol is a single comma-separated line. A field containing
// a comma (e.g. "Smith, Inc.") shifts the positional mapping; the protocol
// carries no escaping scheme.
func BuildPrompt(visibleText string) string {
	if len(visibleText) > MaxPromptChars {
		// Cut on a rune boundary; a mid-rune slice would embed invalid
		// UTF-8, which the model API rejects.
		cut := MaxPromptChars
		for cut > 0 && !utf8.RuneStart(visibleText[cut]) {
			cut--
		}
		visibleText = visibleText[:cut]
	}

	var sb strings.Builder
	sb.WriteString("You are an AI assistant that extracts job posting info.\n")
	sb.WriteString("Languages that the job postings are in can vary so be aware of that.\n")
	sb.WriteString("From the following text, extract:\n\n")
	sb.WriteString("- Job title\n- Company name\n- Location\n\n")
	sb.WriteString("Return the result as a pure string text with the data separated by commas in the following format:\n")
	sb.WriteString("Job title, Company name, Location\n\n")
	sb.WriteString("IMPORTANT:\n")
	sb.WriteString("- If a field cannot be determined from the text, return it as an empty string. Do not invent values.\n")
	sb.WriteString("- Typically the location is a city. When the position is remote within a country, render it as \"Country (Remote)\".\n")
	sb.WriteString("- When the location is indeterminate, use the literal \"" + NotSpecified + "\".\n")
	sb.WriteString("- If the text is not a job posting at all, return the single line \"" + InvalidPostingSentinel + "\" instead.\n\n")
	sb.WriteString("Job posting text:\n\"\"\"\n")
	sb.WriteString(visibleText)
	sb.WriteString("\n\"\"\"")

	return sb.String()
}

// ParseFields maps a model response line to Fields. Segments are split on
// commas, trimmed and assigned positionally; positions beyond the available
// segments yield empty strings rather than an error. The invalid-posting
// sentinel yields ErrInvalidPosting.
func ParseFields(text string) (Fields, error) {
	text = strings.TrimSpace(text)

	if strings.EqualFold(text, InvalidPostingSentinel) {
		return Fields{}, ErrInvalidPosting
	}

	parts := strings.Split(text, ",")
	var fields Fields
	if len(parts) > 0 {
		fields.Title = strings.TrimSpace(parts[0])
	}
	if len(parts) > 1 {
		fields.Company = strings.TrimSpace(parts[1])
	}
	if len(parts) > 2 {
		fields.Location = strings.TrimSpace(parts[2])
	}
	return fields, nil
}
