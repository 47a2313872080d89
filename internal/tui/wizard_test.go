package tui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/triageai/triage/internal/intake"
	"github.com/triageai/triage/internal/model"
)

type fakeService struct {
	symptoms    []model.Symptom
	symptomsErr error

	validateCalls int
	validateRes   model.CauseValidationResult
	validateErr   error

	assessCalls int
	assessRes   *model.Assessment
	assessErr   error

	contacts   []model.EmergencyContact
	contactErr error
}

func (f *fakeService) Symptoms(context.Context) ([]model.Symptom, error) {
	return f.symptoms, f.symptomsErr
}

func (f *fakeService) ValidateCause(_ context.Context, _ string) (model.CauseValidationResult, error) {
	f.validateCalls++
	return f.validateRes, f.validateErr
}

func (f *fakeService) Assess(_ context.Context, _ model.IntakeForm, _ []model.Symptom) (*model.Assessment, error) {
	f.assessCalls++
	return f.assessRes, f.assessErr
}

func (f *fakeService) SaveContact(_ context.Context, c model.EmergencyContact) error {
	if f.contactErr != nil {
		return f.contactErr
	}
	f.contacts = append(f.contacts, c)
	return nil
}

func testCatalog() []model.Symptom {
	return []model.Symptom{
		{Name: "Chest Pain", Severity: "5"},
		{Name: "Headache", Severity: "2"},
		{Name: "Nausea", Severity: "2"},
	}
}

func newTestModel(svc *fakeService) Model {
	m := New(svc)
	return apply(m, catalogMsg{symptoms: svc.symptoms})
}

func apply(m Model, msg tea.Msg) Model {
	nm, _ := m.Update(msg)
	return nm.(Model)
}

func applyCmd(m Model, msg tea.Msg) (Model, tea.Cmd) {
	nm, cmd := m.Update(msg)
	return nm.(Model), cmd
}

func press(m Model, k tea.KeyType) Model {
	return apply(m, tea.KeyMsg{Type: k})
}

func typeText(m Model, s string) Model {
	for _, r := range s {
		m = apply(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

// fillDemographics types a valid age, picks a gender, and advances.
func fillDemographics(t *testing.T, m Model) Model {
	t.Helper()
	m = typeText(m, "34")
	m = press(m, tea.KeyTab) // gender
	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyEnter)
	if m.session.Step != intake.StepSymptoms {
		t.Fatalf("expected symptoms step, got %v (error %q)", m.session.Step, m.session.ErrorMessage)
	}
	return m
}

func TestCatalogLoad(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := newTestModel(svc)

	if m.session == nil {
		t.Fatal("expected session after catalog load")
	}
	if got := len(m.session.Pool.Available()); got != 3 {
		t.Errorf("expected 3 available symptoms, got %d", got)
	}
	if m.session.Step != intake.StepDemographics {
		t.Errorf("expected demographics step, got %v", m.session.Step)
	}
}

func TestCatalogLoadErrorAndRetry(t *testing.T) {
	svc := &fakeService{symptomsErr: errors.New("connection refused")}
	m := New(svc)
	m = apply(m, catalogMsg{err: svc.symptomsErr})

	if m.loadErr == "" {
		t.Fatal("expected load error")
	}

	svc.symptomsErr = nil
	svc.symptoms = testCatalog()
	m2, cmd := applyCmd(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	m = m2
	if cmd == nil {
		t.Fatal("expected a refetch command on retry")
	}
	m = apply(m, cmd())
	if m.session == nil {
		t.Fatal("expected session after retry")
	}
}

func TestAdvanceRequiresValidAge(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := newTestModel(svc)

	// No age at all.
	m = press(m, tea.KeyEnter)
	if m.session.Step != intake.StepDemographics {
		t.Fatalf("advanced without an age")
	}
	if m.session.ErrorMessage == "" {
		t.Error("expected an error message")
	}

	// Out of range.
	m = typeText(m, "121")
	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyEnter)
	if m.session.Step != intake.StepDemographics {
		t.Fatal("advanced with age 121")
	}
}

func TestAdvanceRequiresGender(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := newTestModel(svc)

	m = typeText(m, "34")
	m = press(m, tea.KeyEnter)
	if m.session.Step != intake.StepDemographics {
		t.Fatal("advanced without a gender")
	}
}

func TestAgeInputRejectsLetters(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := newTestModel(svc)

	m = typeText(m, "3a4")
	if got := m.ageInput.Value(); got != "34" {
		t.Errorf("expected age input %q, got %q", "34", got)
	}
}

// A burst of edits inside the quiescence window must produce exactly one
// remote validation call, for the final text.
func TestCauseDebounceBurst(t *testing.T) {
	svc := &fakeService{
		symptoms:    testCatalog(),
		validateRes: model.CauseValidationResult{IsValid: true},
	}
	m := newTestModel(svc)

	m = press(m, tea.KeyTab) // gender
	m = press(m, tea.KeyTab) // cause
	m = typeText(m, "fall from ladder")

	finalGen := m.debounceGen
	if finalGen == 0 {
		t.Fatal("expected edits to advance the debounce generation")
	}

	// Every per-edit timer fires; only the newest may issue a call.
	var fired int
	for gen := uint64(1); gen <= finalGen; gen++ {
		m2, cmd := applyCmd(m, debounceMsg{gen: gen})
		m = m2
		if cmd == nil {
			continue
		}
		fired++
		m = apply(m, cmd())
	}

	if fired != 1 {
		t.Errorf("expected exactly one timer to fire a call, got %d", fired)
	}
	if svc.validateCalls != 1 {
		t.Errorf("expected exactly 1 validation call, got %d", svc.validateCalls)
	}
	res := m.session.Cause.Result()
	if res == nil || !res.IsValid {
		t.Errorf("expected a valid cause result, got %+v", res)
	}
	if m.checking {
		t.Error("expected checking to clear after the result arrived")
	}
}

func TestShortCauseNeverValidates(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := newTestModel(svc)

	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyTab)
	m = typeText(m, "ab")

	for gen := uint64(1); gen <= m.debounceGen; gen++ {
		m2, cmd := applyCmd(m, debounceMsg{gen: gen})
		m = m2
		if cmd != nil {
			t.Fatalf("timer for gen %d issued a call for short text", gen)
		}
	}
	if svc.validateCalls != 0 {
		t.Errorf("expected no validation calls, got %d", svc.validateCalls)
	}
}

func TestStaleCauseResultDiscarded(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := newTestModel(svc)

	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyTab)
	m = typeText(m, "hit head")

	// First request goes out with sequence 1.
	m2, cmd := applyCmd(m, debounceMsg{gen: m.debounceGen})
	m = m2
	if cmd == nil {
		t.Fatal("expected a validation command")
	}

	// The user keeps typing; a second request (sequence 2) supersedes it.
	m = typeText(m, " on pavement")
	m2, cmd = applyCmd(m, debounceMsg{gen: m.debounceGen})
	m = m2
	if cmd == nil {
		t.Fatal("expected a second validation command")
	}

	// The first (stale) response lands after the second was issued.
	m = apply(m, causeResultMsg{
		seq: 1,
		res: model.CauseValidationResult{IsValid: false, Message: "too vague"},
	})
	if m.session.Cause.Blocks() {
		t.Fatal("stale invalid result must be discarded")
	}

	// The current response is applied.
	m = apply(m, causeResultMsg{
		seq: 2,
		res: model.CauseValidationResult{IsValid: true},
	})
	res := m.session.Cause.Result()
	if res == nil || !res.IsValid {
		t.Errorf("expected current result applied, got %+v", res)
	}
}

func TestInvalidCauseBlocksAdvance(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := newTestModel(svc)

	m = typeText(m, "34")
	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyTab)
	m = typeText(m, "xyz")

	seq := m.session.Cause.Begin()
	m = apply(m, causeResultMsg{
		seq: seq,
		res: model.CauseValidationResult{IsValid: false, Message: "please describe the injury"},
	})

	m = press(m, tea.KeyEnter)
	if m.session.Step != intake.StepDemographics {
		t.Fatal("advanced past an invalid cause")
	}
	if m.session.ErrorMessage != "please describe the injury" {
		t.Errorf("unexpected message %q", m.session.ErrorMessage)
	}
}

func TestCauseTransportFailureDoesNotBlock(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := newTestModel(svc)

	m = typeText(m, "34")
	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyTab)
	m = typeText(m, "fell down stairs")

	seq := m.session.Cause.Begin()
	m = apply(m, causeResultMsg{seq: seq, err: errors.New("timeout")})

	if !m.session.Cause.Unavailable() {
		t.Error("expected unavailability to be surfaced")
	}
	m = press(m, tea.KeyEnter)
	if m.session.Step != intake.StepSymptoms {
		t.Fatal("transport failure must not block advancement")
	}
}

func TestSymptomSelectionAndSubmit(t *testing.T) {
	svc := &fakeService{
		symptoms: testCatalog(),
		assessRes: &model.Assessment{
			SeverityLevel:            "Urgent",
			EstimatedTimeToTreatment: "Within 30 minutes",
			RecommendedActions:       []string{"Immediate medical attention required"},
			ConfidenceScore:          0.9,
		},
	}
	m := newTestModel(svc)
	m = fillDemographics(t, m)

	// Move the first available symptom over.
	m = press(m, tea.KeyEnter)
	if got := len(m.session.Pool.Selected()); got != 1 {
		t.Fatalf("expected 1 selected symptom, got %d", got)
	}
	if got := len(m.session.Pool.Available()); got != 2 {
		t.Fatalf("expected 2 available symptoms, got %d", got)
	}

	m2, cmd := applyCmd(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = m2
	if !m.session.Submitting {
		t.Fatal("expected submitting state")
	}
	if cmd == nil {
		t.Fatal("expected an assess command")
	}

	// Resolve the batch: find the assessResultMsg among batched messages.
	m = drain(m, cmd)
	if m.session.Step != intake.StepResult {
		t.Fatalf("expected result step, got %v", m.session.Step)
	}
	if m.session.Assessment == nil || m.session.Assessment.SeverityLevel != "Urgent" {
		t.Errorf("unexpected assessment %+v", m.session.Assessment)
	}
	if svc.assessCalls != 1 {
		t.Errorf("expected 1 assess call, got %d", svc.assessCalls)
	}
}

func TestSubmitFailureKeepsFormForRetry(t *testing.T) {
	svc := &fakeService{
		symptoms:  testCatalog(),
		assessErr: errors.New("service unavailable"),
	}
	m := newTestModel(svc)
	m = fillDemographics(t, m)
	m = press(m, tea.KeyEnter)

	m2, cmd := applyCmd(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = drain(m2, cmd)

	if m.session.Step != intake.StepSymptoms {
		t.Fatalf("expected to stay on symptoms, got %v", m.session.Step)
	}
	if m.session.Submitting {
		t.Error("submitting must clear on failure")
	}
	if m.session.ErrorMessage == "" {
		t.Error("expected a failure message")
	}
	if got := len(m.session.Pool.Selected()); got != 1 {
		t.Errorf("selection must survive a failed submit, got %d", got)
	}
}

func TestSubmitWithoutSelectionBlocked(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := newTestModel(svc)
	m = fillDemographics(t, m)

	_, cmd := applyCmd(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	if cmd != nil {
		t.Fatal("submit with no selected symptoms must not issue a call")
	}
	if svc.assessCalls != 0 {
		t.Errorf("expected no assess calls, got %d", svc.assessCalls)
	}
}

func TestContactSave(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := resultModel(t, svc)

	m = apply(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})
	if m.screen != screenContact {
		t.Fatal("expected contact screen")
	}

	m = typeText(m, "Jane Doe")
	m = press(m, tea.KeyTab)   // relationship
	m = press(m, tea.KeyRight) // Parent
	m = press(m, tea.KeyTab)   // country
	m = press(m, tea.KeyRight) // +1
	m = press(m, tea.KeyTab)   // phone
	m = typeText(m, "5551234567")

	m2, cmd := applyCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = m2
	if !m.savingContact {
		t.Fatal("expected saving state")
	}
	m = drain(m, cmd)

	if !m.contact.Saved {
		t.Fatalf("expected saved contact, error %q", m.contact.ErrorMessage)
	}
	if len(svc.contacts) != 1 {
		t.Fatalf("expected 1 persisted contact, got %d", len(svc.contacts))
	}
	if svc.contacts[0].Name != "Jane Doe" || svc.contacts[0].CountryCode != "+1" {
		t.Errorf("unexpected contact %+v", svc.contacts[0])
	}
}

func TestContactOtherRelationshipRequired(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := resultModel(t, svc)
	m = apply(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'e'}})

	m = typeText(m, "Jane Doe")
	m = press(m, tea.KeyTab)
	m = press(m, tea.KeyLeft) // cycle backwards to Other
	if m.contact.Contact.Relationship != model.RelationshipOther {
		t.Fatalf("expected Other, got %v", m.contact.Contact.Relationship)
	}

	// Skip the now-visible Other field, fill the rest.
	m = press(m, tea.KeyTab) // other (left empty)
	m = press(m, tea.KeyTab) // country
	m = press(m, tea.KeyRight)
	m = press(m, tea.KeyTab) // phone
	m = typeText(m, "5551234567")

	m2, cmd := applyCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	m = drain(m2, cmd)

	if m.contact.Saved {
		t.Fatal("saved with empty other-relationship")
	}
	if m.contact.ErrorMessage != "please specify the relationship" {
		t.Errorf("unexpected message %q", m.contact.ErrorMessage)
	}
	if len(svc.contacts) != 0 {
		t.Errorf("invalid contact must not be persisted, got %d", len(svc.contacts))
	}
}

func TestResetStartsFreshIntake(t *testing.T) {
	svc := &fakeService{symptoms: testCatalog()}
	m := resultModel(t, svc)

	m = apply(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})

	if m.session.Step != intake.StepDemographics {
		t.Fatalf("expected demographics after reset, got %v", m.session.Step)
	}
	if m.ageInput.Value() != "" {
		t.Errorf("age input not cleared: %q", m.ageInput.Value())
	}
	if got := len(m.session.Pool.Available()); got != 3 {
		t.Errorf("catalog must survive reset, got %d available", got)
	}
	if got := len(m.session.Pool.Selected()); got != 0 {
		t.Errorf("selection must clear on reset, got %d", got)
	}
}

// resultModel drives a model all the way to the result step.
func resultModel(t *testing.T, svc *fakeService) Model {
	t.Helper()
	if svc.assessRes == nil {
		svc.assessRes = &model.Assessment{
			SeverityLevel:            "Urgent",
			EstimatedTimeToTreatment: "Within 30 minutes",
			RecommendedActions:       []string{"Immediate medical attention required"},
			ConfidenceScore:          0.9,
		}
	}
	m := newTestModel(svc)
	m = fillDemographics(t, m)
	m = press(m, tea.KeyEnter)
	m2, cmd := applyCmd(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = drain(m2, cmd)
	if m.session.Step != intake.StepResult {
		t.Fatalf("expected result step, got %v", m.session.Step)
	}
	return m
}

// drain runs a command tree to completion, feeding every produced message
// back into the model. Tick-based commands are not executed.
func drain(m Model, cmd tea.Cmd) Model {
	if cmd == nil {
		return m
	}
	msg := cmd()
	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c == nil {
				continue
			}
			inner := c()
			switch inner.(type) {
			case assessResultMsg, contactSavedMsg, causeResultMsg, catalogMsg:
				m = apply(m, inner)
			}
		}
	case assessResultMsg, contactSavedMsg, causeResultMsg, catalogMsg:
		m = apply(m, msg)
	}
	return m
}
