package analyze

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MalformedAnalysisError indicates the model's response was not valid
// JSON after unwrapping. It is surfaced to the user verbatim rather than
// retried.
type MalformedAnalysisError struct {
	Err error
}

func (e *MalformedAnalysisError) Error() string {
	return fmt.Sprintf("model response is not a valid analysis: %v", e.Err)
}

func (e *MalformedAnalysisError) Unwrap() error { return e.Err }

// ParseAnalysis parses the model's textual answer into a Result. Fenced
// code markers the model may have wrapped the JSON in are stripped first.
// No schema validation happens beyond the parse; absent optional fields
// are tolerated by the renderers.
func ParseAnalysis(content string) (*Result, error) {
	content = stripFences(strings.TrimSpace(content))

	var result Result
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, &MalformedAnalysisError{Err: err}
	}
	return &result, nil
}

// stripFences removes a leading ```/`“json line and a trailing ``` line.
func stripFences(content string) string {
	if !strings.HasPrefix(content, "```") {
		return content
	}
	lines := strings.Split(content, "\n")
	if len(lines) < 2 {
		return content
	}
	start := 1
	end := len(lines)
	if strings.TrimSpace(lines[end-1]) == "```" {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}
