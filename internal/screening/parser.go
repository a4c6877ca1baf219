package screening

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// namePattern is a naive personal-name heuristic: two or more consecutive
// capitalized words.
var namePattern = regexp.MustCompile(`[A-Z][a-z]+(?:\s[A-Z][a-z]+)+`)

// proficiencyScores is the fixed vocabulary used to derive a numeric rating.
var proficiencyScores = map[string]float64{
	"Expert":       5,
	"Proficient":   4,
	"Intermediate": 3,
	"NA":           0,
}

// Parse interprets one raw completion according to the mode. It never returns
// an error: malformed completions become a single-field Error record carrying
// the raw text for diagnosis.
func (m Mode) Parse(raw, resumeText string) *Record {
	if m == ModeProficiency {
		rec := parseLines(raw)
		setRating(rec)
		return rec
	}

	rec, err := parseLiteralRecord(raw)
	if err != nil {
		return ErrorRecord(fmt.Sprintf("completion is not in the expected record format: %v. Raw response was: %s", err, raw))
	}
	repairName(rec, resumeText)
	setRating(rec)
	return rec
}

// parseLiteralRecord matches the completion against a flat {...} record of
// scalar values. It only matches shape, never evaluates: nested structures,
// arrays, and trailing garbage all fail closed.
func parseLiteralRecord(raw string) (*Record, error) {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return nil, errors.New("missing record boundaries")
	}

	dec := json.NewDecoder(strings.NewReader(trimmed))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.New("not a record")
	}

	rec := NewRecord()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, errors.New("non-string key")
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		switch v := valTok.(type) {
		case string:
			rec.Set(key, v)
		case json.Number:
			rec.Set(key, v.String())
		default:
			return nil, fmt.Errorf("field %q is not a scalar", key)
		}
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("trailing data after record")
	}
	return rec, nil
}

// parseLines splits a line-delimited completion into key/value fields. Lines
// without exactly one separator are silently discarded.
func parseLines(raw string) *Record {
	rec := NewRecord()
	for _, line := range strings.Split(raw, "\n") {
		if line == "" {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) != 2 {
			continue
		}
		rec.Set(strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]))
	}
	return rec
}

// repairName fills a missing candidate name from the resume text, falling
// back to the Unknown sentinel.
func repairName(rec *Record, resumeText string) {
	if v, ok := rec.Get(candidateKey); ok && strings.TrimSpace(v) != "" {
		return
	}
	if match := namePattern.FindString(resumeText); match != "" {
		rec.Set(candidateKey, match)
		return
	}
	rec.Set(candidateKey, "Unknown")
}

// setRating stores the derived rating: the mean, rounded to one decimal, of
// the proficiency scores over fields whose value is exactly in the vocabulary.
// Zero when no field matches.
func setRating(rec *Record) {
	var total float64
	var count int
	for _, key := range rec.Keys() {
		value, _ := rec.Get(key)
		if score, ok := proficiencyScores[value]; ok {
			total += score
			count++
		}
	}

	rating := 0.0
	if count > 0 {
		rating = math.Round(total/float64(count)*10) / 10
	}
	rec.Set(ratingKey, strconv.FormatFloat(rating, 'f', 1, 64))
}
