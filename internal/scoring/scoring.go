// Package scoring implements the rule-based triage engine behind the
// assessment service: severity classification over the reported symptom set,
// recommended actions, and time-to-treatment estimates.
package scoring

import (
	"fmt"
	"strconv"

	"github.com/triageai/triage/internal/model"
)

// Severity levels in ascending order of urgency.
const (
	LevelNonUrgent  = "Non-urgent"
	LevelSemiUrgent = "Semi-urgent"
	LevelUrgent     = "Urgent"
	LevelCritical   = "Critical"
)

// CatalogEntry is a symptom known to the service, with its 1-5 ordinal
// severity weight.
type CatalogEntry struct {
	Name        string
	Severity    int
	Description string
}

// Symptom converts a catalog entry to the wire representation. The severity
// label is the ordinal rendered as text; intake clients treat it as opaque.
func (e CatalogEntry) Symptom() model.Symptom {
	return model.Symptom{
		Name:        e.Name,
		Severity:    strconv.Itoa(e.Severity),
		Description: e.Description,
	}
}

// Catalog is the symptom set offered to intake clients at session start.
var Catalog = []CatalogEntry{
	{Name: "Chest Pain", Severity: 5, Description: "Severe chest pain or pressure"},
	{Name: "Difficulty Breathing", Severity: 4, Description: "Shortness of breath or respiratory distress"},
	{Name: "Unconsciousness", Severity: 5, Description: "Patient is unresponsive"},
	{Name: "Severe Bleeding", Severity: 4, Description: "Uncontrolled bleeding"},
	{Name: "Head Injury", Severity: 3, Description: "Trauma to the head"},
	{Name: "Abdominal Pain", Severity: 3, Description: "Severe abdominal pain"},
	{Name: "Burns", Severity: 4, Description: "Significant burns"},
	{Name: "Fracture", Severity: 3, Description: "Broken bone or suspected fracture"},
	{Name: "Allergic Reaction", Severity: 4, Description: "Severe allergic reaction"},
	{Name: "Stroke Symptoms", Severity: 5, Description: "Sudden weakness, numbness, or speech difficulty"},
}

// CatalogSymptoms returns the catalog in wire form.
func CatalogSymptoms() []model.Symptom {
	out := make([]model.Symptom, len(Catalog))
	for i, e := range Catalog {
		out[i] = e.Symptom()
	}
	return out
}

// Assess classifies the reported symptoms into a severity level. The level is
// chosen by mean severity weight (thresholds 4.5, 3.5, 2.5) and the
// confidence score reflects how consistent the weights are: 1 minus the
// variance normalized by its maximum of 4, clamped to [0, 1].
func Assess(symptoms []model.Symptom) (*model.Assessment, error) {
	if len(symptoms) == 0 {
		return nil, fmt.Errorf("at least one symptom is required")
	}

	weights := make([]float64, len(symptoms))
	var sum float64
	for i, s := range symptoms {
		w, err := severityWeight(s)
		if err != nil {
			return nil, err
		}
		weights[i] = w
		sum += w
	}
	mean := sum / float64(len(weights))

	var level string
	switch {
	case mean >= 4.5:
		level = LevelCritical
	case mean >= 3.5:
		level = LevelUrgent
	case mean >= 2.5:
		level = LevelSemiUrgent
	default:
		level = LevelNonUrgent
	}

	var variance float64
	for _, w := range weights {
		d := w - mean
		variance += d * d
	}
	variance /= float64(len(weights))

	confidence := 1.0 - variance/4.0
	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	return &model.Assessment{
		SeverityLevel:            level,
		EstimatedTimeToTreatment: TimeToTreatment(level),
		RecommendedActions:       RecommendedActions(level),
		ConfidenceScore:          confidence,
	}, nil
}

func severityWeight(s model.Symptom) (float64, error) {
	n, err := strconv.Atoi(s.Severity)
	if err != nil {
		return 0, fmt.Errorf("symptom %q has unknown severity %q", s.Name, s.Severity)
	}
	if n < 1 || n > 5 {
		return 0, fmt.Errorf("symptom %q severity %d out of the 1-5 scale", s.Name, n)
	}
	return float64(n), nil
}

var recommendedActions = map[string][]string{
	LevelCritical: {
		"Immediate life support measures",
		"Prepare for emergency transport",
		"Alert receiving facility",
		"Continuous vital signs monitoring",
	},
	LevelUrgent: {
		"Rapid assessment and stabilization",
		"Prepare for urgent transport",
		"Monitor vital signs every 5 minutes",
		"Establish IV access",
	},
	LevelSemiUrgent: {
		"Comprehensive assessment",
		"Prepare for non-emergency transport",
		"Monitor vital signs every 15 minutes",
		"Provide comfort measures",
	},
	LevelNonUrgent: {
		"Basic assessment",
		"Schedule routine transport",
		"Monitor vital signs every 30 minutes",
		"Provide basic care",
	},
}

var timeToTreatment = map[string]string{
	LevelCritical:   "Immediate",
	LevelUrgent:     "Within 10 minutes",
	LevelSemiUrgent: "Within 30 minutes",
	LevelNonUrgent:  "Within 1 hour",
}

// RecommendedActions returns the action checklist for a severity level.
func RecommendedActions(level string) []string {
	return recommendedActions[level]
}

// TimeToTreatment returns the treatment window for a severity level.
func TimeToTreatment(level string) string {
	if t, ok := timeToTreatment[level]; ok {
		return t
	}
	return timeToTreatment[LevelNonUrgent]
}
