package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres is the pgx-backed Store.
type Postgres struct {
	pool *pgxpool.Pool
}

// NewPostgres connects to databaseURL and ensures the schema exists.
func NewPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	p := &Postgres{pool: pool}
	if err := p.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *Postgres) migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS assessments (
			id UUID PRIMARY KEY,
			patient_age INT NOT NULL,
			patient_gender TEXT NOT NULL,
			mechanism_of_injury TEXT,
			symptoms JSONB NOT NULL,
			severity_level TEXT NOT NULL,
			estimated_time_to_treatment TEXT NOT NULL,
			recommended_actions JSONB NOT NULL,
			confidence_score DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS emergency_contacts (
			id UUID PRIMARY KEY,
			name TEXT NOT NULL,
			relationship TEXT NOT NULL,
			country_code TEXT NOT NULL,
			phone_number TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);`)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}

func (p *Postgres) SaveAssessment(ctx context.Context, rec *AssessmentRecord) error {
	stamp(&rec.ID, &rec.CreatedAt)

	symptoms, err := json.Marshal(rec.Symptoms)
	if err != nil {
		return fmt.Errorf("encoding symptoms: %w", err)
	}
	actions, err := json.Marshal(rec.RecommendedActions)
	if err != nil {
		return fmt.Errorf("encoding actions: %w", err)
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO assessments (id, patient_age, patient_gender, mechanism_of_injury,
			symptoms, severity_level, estimated_time_to_treatment, recommended_actions,
			confidence_score, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)`,
		rec.ID, rec.PatientAge, rec.PatientGender, rec.MechanismOfInjury,
		symptoms, rec.SeverityLevel, rec.EstimatedTimeToTreatment, actions,
		rec.ConfidenceScore, rec.CreatedAt)
	return err
}

func (p *Postgres) ListAssessments(ctx context.Context, limit, offset int) ([]*AssessmentRecord, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM assessments`).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, offset = clampPage(limit, offset, total)

	rows, err := p.pool.Query(ctx, `
		SELECT id, patient_age, patient_gender, mechanism_of_injury, symptoms,
			severity_level, estimated_time_to_treatment, recommended_actions,
			confidence_score, created_at
		FROM assessments ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*AssessmentRecord
	for rows.Next() {
		rec, err := scanAssessment(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, rec)
	}
	return out, total, rows.Err()
}

func scanAssessment(row pgx.Row) (*AssessmentRecord, error) {
	var (
		rec      AssessmentRecord
		symptoms []byte
		actions  []byte
	)
	err := row.Scan(&rec.ID, &rec.PatientAge, &rec.PatientGender, &rec.MechanismOfInjury,
		&symptoms, &rec.SeverityLevel, &rec.EstimatedTimeToTreatment, &actions,
		&rec.ConfidenceScore, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(symptoms, &rec.Symptoms); err != nil {
		return nil, fmt.Errorf("decoding symptoms: %w", err)
	}
	if err := json.Unmarshal(actions, &rec.RecommendedActions); err != nil {
		return nil, fmt.Errorf("decoding actions: %w", err)
	}
	return &rec, nil
}

func (p *Postgres) SaveContact(ctx context.Context, rec *ContactRecord) error {
	stamp(&rec.ID, &rec.CreatedAt)
	_, err := p.pool.Exec(ctx, `
		INSERT INTO emergency_contacts (id, name, relationship, country_code, phone_number, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)`,
		rec.ID, rec.Name, rec.Relationship, rec.CountryCode, rec.PhoneNumber, rec.CreatedAt)
	return err
}

func (p *Postgres) ListContacts(ctx context.Context, limit, offset int) ([]*ContactRecord, int, error) {
	var total int
	if err := p.pool.QueryRow(ctx, `SELECT count(*) FROM emergency_contacts`).Scan(&total); err != nil {
		return nil, 0, err
	}
	limit, offset = clampPage(limit, offset, total)

	rows, err := p.pool.Query(ctx, `
		SELECT id, name, relationship, country_code, phone_number, created_at
		FROM emergency_contacts ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*ContactRecord
	for rows.Next() {
		var rec ContactRecord
		if err := rows.Scan(&rec.ID, &rec.Name, &rec.Relationship, &rec.CountryCode,
			&rec.PhoneNumber, &rec.CreatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, &rec)
	}
	return out, total, rows.Err()
}

func (p *Postgres) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close() { p.pool.Close() }
