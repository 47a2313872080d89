// Package client is the HTTP consumer of the triage assessment service. It
// speaks the service's request/response contracts and nothing else: no
// retries, no caching. A request timeout is the only transport hardening.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/triageai/triage/internal/model"
)

// DefaultTimeout bounds every request when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Client talks to one assessment service.
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the service at baseURL. A non-positive timeout
// falls back to DefaultTimeout.
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

type symptomsResponse struct {
	Symptoms []model.Symptom `json:"symptoms"`
}

// Symptoms fetches the symptom catalog. Called once per intake session.
func (c *Client) Symptoms(ctx context.Context) ([]model.Symptom, error) {
	var resp symptomsResponse
	if err := c.get(ctx, "/triage/symptoms", &resp); err != nil {
		return nil, err
	}
	return resp.Symptoms, nil
}

type validateCauseRequest struct {
	Cause string `json:"cause"`
}

// ValidateCause submits mechanism-of-injury text for validation.
func (c *Client) ValidateCause(ctx context.Context, cause string) (model.CauseValidationResult, error) {
	var res model.CauseValidationResult
	err := c.post(ctx, "/triage/validate-cause", validateCauseRequest{Cause: cause}, &res)
	return res, err
}

type assessRequest struct {
	PatientAge        int             `json:"patient_age"`
	PatientGender     string          `json:"patient_gender"`
	MechanismOfInjury string          `json:"mechanism_of_injury,omitempty"`
	Symptoms          []model.Symptom `json:"symptoms"`
}

// Assess submits the completed intake form with the selected symptoms and
// returns the severity result.
func (c *Client) Assess(ctx context.Context, form model.IntakeForm, symptoms []model.Symptom) (*model.Assessment, error) {
	req := assessRequest{
		PatientAge:        form.Age,
		PatientGender:     form.Gender.String(),
		MechanismOfInjury: form.MechanismOfInjury,
		Symptoms:          symptoms,
	}
	var a model.Assessment
	if err := c.post(ctx, "/triage/assess", req, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

type contactRequest struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	CountryCode  string `json:"country_code"`
	PhoneNumber  string `json:"phone_number"`
}

// SaveContact persists an emergency contact. Implements intake.ContactSaver.
func (c *Client) SaveContact(ctx context.Context, contact model.EmergencyContact) error {
	req := contactRequest{
		Name:         contact.Name,
		Relationship: contact.RelationshipLabel(),
		CountryCode:  contact.CountryCode,
		PhoneNumber:  contact.PhoneNumber,
	}
	return c.post(ctx, "/triage/contacts", req, nil)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.NewDecoder(resp.Body).Decode(&apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("%s %s: %s", req.Method, req.URL.Path, apiErr.Error)
		}
		return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
