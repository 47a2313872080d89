package scoring

import (
	"strings"
	"unicode"

	"github.com/triageai/triage/internal/model"
)

// knownMechanisms are common mechanism-of-injury descriptions used to offer
// suggestions when free text fails validation.
var knownMechanisms = []string{
	"car accident",
	"motorcycle accident",
	"bicycle accident",
	"pedestrian struck",
	"fall from height",
	"fall",
	"burn",
	"assault",
	"sports injury",
	"gunshot wound",
	"stab wound",
	"crush injury",
	"drowning",
	"electrocution",
	"poisoning",
	"overdose",
	"animal bite",
	"sudden illness",
}

// ValidateCause checks free-text mechanism-of-injury input. The check is
// deliberately shallow: it rejects text that cannot be a description (too
// short, no letters) and offers suggestions from the known-mechanism list.
func ValidateCause(text string) model.CauseValidationResult {
	trimmed := strings.TrimSpace(text)

	if len(trimmed) < 3 {
		return model.CauseValidationResult{
			IsValid:     false,
			Message:     "describe the mechanism of injury in a few words",
			Suggestions: suggestions(trimmed),
		}
	}

	hasLetter := false
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			hasLetter = true
			break
		}
	}
	if !hasLetter {
		return model.CauseValidationResult{
			IsValid:     false,
			Message:     "mechanism of injury must describe what happened",
			Suggestions: suggestions(trimmed),
		}
	}

	return model.CauseValidationResult{IsValid: true}
}

// suggestions returns known mechanisms matching any word of the input, or a
// short head of the list when nothing matches.
func suggestions(input string) []string {
	const max = 5

	lower := strings.ToLower(input)
	var matched []string
	for _, m := range knownMechanisms {
		for _, word := range strings.Fields(lower) {
			if strings.Contains(m, word) {
				matched = append(matched, m)
				break
			}
		}
	}
	if len(matched) > max {
		matched = matched[:max]
	}
	if len(matched) > 0 {
		return matched
	}
	return knownMechanisms[:max]
}
