// Package intake implements the client-side intake state machine: wizard step
// sequencing and gating, the available/selected symptom pool, stale-discard
// tracking for asynchronous cause validation, and the emergency-contact
// sub-form. The package is independent of any rendering layer; the TUI drives
// it and owns all timing.
package intake

import (
	"strings"

	"github.com/triageai/triage/internal/model"
	"github.com/triageai/triage/internal/validate"
)

// Step is a wizard state.
type Step int

const (
	StepDemographics Step = iota
	StepSymptoms
	StepResult
)

func (s Step) String() string {
	switch s {
	case StepDemographics:
		return "demographics"
	case StepSymptoms:
		return "symptoms"
	case StepResult:
		return "result"
	default:
		return "unknown"
	}
}

// ValidationError blocks a step transition. It is local to the form and never
// reaches the network.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Session is one pass through Demographics -> Symptoms -> Result. It owns the
// wizard state; the form, pool, and cause tracker are mutated only through it
// or by their owning component.
type Session struct {
	Step         Step
	Form         model.IntakeForm
	Pool         SymptomPool
	Cause        CauseTracker
	Assessment   *model.Assessment
	ErrorMessage string
	Submitting   bool

	ageInput  string
	causeText string
}

// NewSession starts a fresh session over the catalog fetched at session start.
func NewSession(catalog []model.Symptom) *Session {
	return &Session{
		Step: StepDemographics,
		Pool: NewSymptomPool(catalog),
	}
}

// SetAge records the raw age input. Validation happens on Advance.
func (s *Session) SetAge(raw string) {
	s.ageInput = raw
	s.ErrorMessage = ""
}

// AgeInput returns the raw age input.
func (s *Session) AgeInput() string { return s.ageInput }

// SetGender records the gender selection.
func (s *Session) SetGender(g model.Gender) {
	s.Form.Gender = g
	s.ErrorMessage = ""
}

// SetCause records the mechanism-of-injury text. Input shorter than
// validate.MinCauseLen after trimming clears any prior validation result and
// must never trigger a remote call; the caller checks ShouldValidateCause.
func (s *Session) SetCause(text string) {
	s.causeText = text
	s.Form.MechanismOfInjury = text
	s.ErrorMessage = ""
	if !s.ShouldValidateCause() {
		s.Cause.Clear()
	}
}

// CauseText returns the current mechanism-of-injury text.
func (s *Session) CauseText() string { return s.causeText }

// ShouldValidateCause reports whether the current cause text is long enough to
// be worth a remote validation call.
func (s *Session) ShouldValidateCause() bool {
	return len(strings.TrimSpace(s.causeText)) >= validate.MinCauseLen
}

// Advance moves the wizard forward one step when the current step's gate
// passes. On failure the step is unchanged and a *ValidationError carrying the
// surfaced message is returned.
func (s *Session) Advance() error {
	switch s.Step {
	case StepDemographics:
		age, err := validate.Age(s.ageInput)
		if err != nil {
			return s.block(err.Error())
		}
		if err := validate.Gender(s.Form.Gender); err != nil {
			return s.block(err.Error())
		}
		// Only an explicit invalid result blocks; no opinion is fine.
		if s.Cause.Blocks() {
			return s.block(s.Cause.BlockMessage())
		}
		s.Form.Age = age
		s.Step = StepSymptoms
		s.ErrorMessage = ""
		return nil

	case StepSymptoms:
		if len(s.Pool.Selected()) == 0 {
			return s.block("select at least one symptom")
		}
		s.Step = StepResult
		s.ErrorMessage = ""
		return nil

	default:
		return nil
	}
}

// Retreat moves back one step. No-op at Demographics.
func (s *Session) Retreat() {
	switch s.Step {
	case StepSymptoms:
		s.Step = StepDemographics
	case StepResult:
		s.Step = StepSymptoms
	}
	s.ErrorMessage = ""
}

// BeginSubmit starts the assessment submission. Only invocable from the
// Symptoms step with at least one selected symptom.
func (s *Session) BeginSubmit() error {
	if s.Step != StepSymptoms {
		return s.block("submit is only available from the symptoms step")
	}
	if len(s.Pool.Selected()) == 0 {
		return s.block("select at least one symptom")
	}
	s.Submitting = true
	s.ErrorMessage = ""
	return nil
}

// FinishSubmit applies the outcome of the assessment call. On success the
// session stores the result and transitions to Result; on failure it surfaces
// the message and stays on Symptoms with the form preserved for retry.
// Submitting is cleared either way.
func (s *Session) FinishSubmit(a *model.Assessment, err error) {
	s.Submitting = false
	if err != nil {
		s.ErrorMessage = "assessment failed: " + err.Error()
		return
	}
	s.Assessment = a
	s.Step = StepResult
	s.ErrorMessage = ""
}

// Reset returns to Demographics with all accumulated state cleared. The
// symptom catalog is kept; re-fetching it is the catalog loader's job. The
// cause tracker is cleared rather than replaced: its sequence counter must
// stay monotonic so a response still in flight from before the reset can
// never match a sequence issued by the new session.
func (s *Session) Reset() {
	s.Step = StepDemographics
	s.Form = model.IntakeForm{}
	s.Pool.ResetSelection()
	s.Cause.Clear()
	s.Assessment = nil
	s.ErrorMessage = ""
	s.Submitting = false
	s.ageInput = ""
	s.causeText = ""
}

func (s *Session) block(msg string) error {
	s.ErrorMessage = msg
	return &ValidationError{Message: msg}
}
