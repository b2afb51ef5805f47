package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

// Attempt is the number of tries a participant needed for one
// comprehension question.
type Attempt struct {
	Label    string
	Attempts int
}

// Mistakes is attempts minus one: a first-try answer is no mistake.
func (a Attempt) Mistakes() int {
	return a.Attempts - 1
}

// Attempts is a decoded comprehension attempts record.
type Attempts []Attempt

// Mistakes sums mistakes over all questions.
func (as Attempts) Mistakes() int {
	total := 0
	for _, a := range as {
		total += a.Mistakes()
	}
	return total
}

// DecodeError reports a malformed comprehension attempts record.
type DecodeError struct {
	Input  string
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("decode attempts %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("decode attempts %q: field %q: %s", e.Input, e.Field, e.Reason)
}

// DecodeAttempts parses a packed attempts record. Grammar:
//
//	record := ["{"] field { "," field } ["}"]
//	field  := label ":" value
//
// Labels may be quoted. Values are integers >= 1.
func DecodeAttempts(s string) (Attempts, error) {
	body := strings.TrimSpace(s)
	body = strings.TrimPrefix(body, "{")
	body = strings.TrimSuffix(body, "}")
	if strings.TrimSpace(body) == "" {
		return nil, &DecodeError{Input: s, Reason: "empty record"}
	}

	fields := strings.Split(body, ",")
	out := make(Attempts, 0, len(fields))
	for _, field := range fields {
		parts := strings.Split(field, ":")
		if len(parts) != 2 {
			return nil, &DecodeError{Input: s, Field: strings.TrimSpace(field), Reason: "want label:value"}
		}
		label := strings.Trim(strings.TrimSpace(parts[0]), `"'`)
		if label == "" {
			return nil, &DecodeError{Input: s, Field: strings.TrimSpace(field), Reason: "empty label"}
		}
		raw := strings.TrimRight(strings.TrimSpace(parts[1]), "}")
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, &DecodeError{Input: s, Field: strings.TrimSpace(field), Reason: "value is not an integer"}
		}
		if n < 1 {
			return nil, &DecodeError{Input: s, Field: strings.TrimSpace(field), Reason: "attempts must be at least 1"}
		}
		out = append(out, Attempt{Label: label, Attempts: n})
	}
	return out, nil
}
