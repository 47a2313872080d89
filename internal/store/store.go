// Package store persists completed assessments and emergency contacts for the
// assessment service. A Postgres implementation backs production; an
// in-memory implementation backs tests and database-less runs.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/triageai/triage/internal/model"
)

// AssessmentRecord is a completed triage assessment.
type AssessmentRecord struct {
	ID                       uuid.UUID       `json:"id"`
	PatientAge               int             `json:"patient_age"`
	PatientGender            string          `json:"patient_gender"`
	MechanismOfInjury        string          `json:"mechanism_of_injury,omitempty"`
	Symptoms                 []model.Symptom `json:"symptoms"`
	SeverityLevel            string          `json:"severity_level"`
	EstimatedTimeToTreatment string          `json:"estimated_time_to_treatment"`
	RecommendedActions       []string        `json:"recommended_actions"`
	ConfidenceScore          float64         `json:"confidence_score"`
	CreatedAt                time.Time       `json:"created_at"`
}

// ContactRecord is a persisted emergency contact.
type ContactRecord struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Relationship string    `json:"relationship"`
	CountryCode  string    `json:"country_code"`
	PhoneNumber  string    `json:"phone_number"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store is the persistence interface consumed by the API server.
type Store interface {
	SaveAssessment(ctx context.Context, rec *AssessmentRecord) error
	ListAssessments(ctx context.Context, limit, offset int) ([]*AssessmentRecord, int, error)
	SaveContact(ctx context.Context, rec *ContactRecord) error
	ListContacts(ctx context.Context, limit, offset int) ([]*ContactRecord, int, error)
	Ping(ctx context.Context) error
	Close()
}

func clampPage(limit, offset, total int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	return limit, offset
}
