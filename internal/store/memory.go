package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Memory is an in-process Store. Newest records list first.
type Memory struct {
	mu          sync.RWMutex
	assessments []*AssessmentRecord
	contacts    []*ContactRecord
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) SaveAssessment(_ context.Context, rec *AssessmentRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&rec.ID, &rec.CreatedAt)
	m.assessments = append([]*AssessmentRecord{rec}, m.assessments...)
	return nil
}

func (m *Memory) ListAssessments(_ context.Context, limit, offset int) ([]*AssessmentRecord, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := len(m.assessments)
	limit, offset = clampPage(limit, offset, total)
	end := offset + limit
	if end > total {
		end = total
	}
	out := make([]*AssessmentRecord, end-offset)
	copy(out, m.assessments[offset:end])
	return out, total, nil
}

func (m *Memory) SaveContact(_ context.Context, rec *ContactRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stamp(&rec.ID, &rec.CreatedAt)
	m.contacts = append([]*ContactRecord{rec}, m.contacts...)
	return nil
}

func (m *Memory) ListContacts(_ context.Context, limit, offset int) ([]*ContactRecord, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	total := len(m.contacts)
	limit, offset = clampPage(limit, offset, total)
	end := offset + limit
	if end > total {
		end = total
	}
	out := make([]*ContactRecord, end-offset)
	copy(out, m.contacts[offset:end])
	return out, total, nil
}

func (m *Memory) Ping(context.Context) error { return nil }

func (m *Memory) Close() {}

func stamp(id *uuid.UUID, at *time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if at.IsZero() {
		*at = time.Now().UTC()
	}
}
