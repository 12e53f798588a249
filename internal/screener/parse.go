package screener

import (
	"encoding/json"
	"fmt"
	"time"

	"hiring-pipeline/pkg/models"
	"hiring-pipeline/pkg/utils"
)

// bulletCount is the exact number of bullets every verdict carries
const bulletCount = 5

// bulletPlaceholder pads verdicts that came back with fewer bullets
const bulletPlaceholder = "No information available"

// verdict is the parsed and sanitized output of one evaluation call
type verdict struct {
	Score     int
	Bullets   []string
	Reasoning string
}

// extractJSONObject locates the first top-level brace-delimited span in the
// response text. The reasoning service wraps its JSON in prose or code
// fences often enough that scanning is the only reliable approach; brace
// depth is tracked across string literals and escapes.
func extractJSONObject(text string) (string, bool) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if start >= 0 && inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}

		switch r {
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start >= 0 {
				depth--
				if depth == 0 {
					return text[start : i+1], true
				}
			}
		case '"':
			if start >= 0 {
				inString = true
			}
		}
	}

	return "", false
}

// parseVerdict extracts and validates the verdict JSON from the raw response
// text. A missing or unparsable JSON span is a ScoringParseError; a parsed
// object that does not match the expected schema is an InvalidVerdictError.
func parseVerdict(responseText string) (*verdict, error) {
	span, found := extractJSONObject(responseText)
	if !found {
		return nil, &utils.ScoringParseError{Detail: "no JSON object found in response"}
	}

	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(span), &raw); err != nil {
		return nil, &utils.ScoringParseError{Detail: err.Error()}
	}

	score, ok := raw["score"].(float64)
	if !ok {
		return nil, &utils.InvalidVerdictError{Detail: "score is missing or not numeric"}
	}

	rawBullets, ok := raw["bullets"].([]interface{})
	if !ok {
		return nil, &utils.InvalidVerdictError{Detail: "bullets is missing or not a list"}
	}

	bullets := make([]string, 0, len(rawBullets))
	for i, b := range rawBullets {
		s, ok := b.(string)
		if !ok {
			return nil, &utils.InvalidVerdictError{Detail: fmt.Sprintf("bullet %d is not a string", i)}
		}
		bullets = append(bullets, s)
	}

	reasoning, _ := raw["reasoning"].(string)

	return &verdict{
		Score:     int(score),
		Bullets:   normalizeBullets(bullets),
		Reasoning: reasoning,
	}, nil
}

// buildEvaluation turns a sanitized verdict into the persisted evaluation.
// The qualified flag is recomputed locally from the score and threshold;
// whatever the remote service proposed is ignored. The timestamp is stamped
// locally for the same reason.
func buildEvaluation(v *verdict, threshold int) *models.Evaluation {
	return &models.Evaluation{
		Score:       v.Score,
		Qualified:   v.Score >= threshold,
		Bullets:     v.Bullets,
		Reasoning:   v.Reasoning,
		EvaluatedAt: time.Now().UTC(),
	}
}

// normalizeBullets pads or truncates to exactly bulletCount entries
func normalizeBullets(bullets []string) []string {
	normalized := make([]string, 0, bulletCount)
	normalized = append(normalized, bullets...)

	for len(normalized) < bulletCount {
		normalized = append(normalized, bulletPlaceholder)
	}
	return normalized[:bulletCount]
}
