// Package tui implements the Bubble Tea intake wizard.
package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/triageai/triage/internal/intake"
	"github.com/triageai/triage/internal/model"
	"github.com/triageai/triage/internal/validate"
)

// Service is the slice of the assessment client the wizard needs.
type Service interface {
	Symptoms(ctx context.Context) ([]model.Symptom, error)
	ValidateCause(ctx context.Context, cause string) (model.CauseValidationResult, error)
	Assess(ctx context.Context, form model.IntakeForm, symptoms []model.Symptom) (*model.Assessment, error)
	SaveContact(ctx context.Context, contact model.EmergencyContact) error
}

// debounceInterval is the quiescence window after the last cause edit before
// a remote validation call is issued.
const debounceInterval = 500 * time.Millisecond

const requestTimeout = 30 * time.Second

// Messages.
type catalogMsg struct {
	symptoms []model.Symptom
	err      error
}

type debounceMsg struct {
	gen uint64
}

type causeResultMsg struct {
	seq uint64
	res model.CauseValidationResult
	err error
}

type assessResultMsg struct {
	assessment *model.Assessment
	err        error
}

type contactSavedMsg struct {
	saved  bool
	errMsg string
}

type screen int

const (
	screenWizard screen = iota
	screenContact
)

// Demographics focus slots.
const (
	focusAge = iota
	focusGender
	focusCause
	demoFocusCount
)

// Contact focus slots. The Other field only participates when the
// relationship is Other.
const (
	cfName = iota
	cfRelationship
	cfOther
	cfCountry
	cfPhone
)

// Model is the top-level Bubble Tea model for the intake wizard.
type Model struct {
	svc     Service
	session *intake.Session
	contact intake.ContactForm

	screen screen

	// Demographics inputs
	ageInput   textinput.Model
	causeInput textinput.Model
	genderIdx  int // index into model.Genders, -1 when unset
	focus      int

	// Cause validation timing
	debounceGen uint64
	checking    bool

	// Symptom panes: 0 = available, 1 = selected
	pane   int
	cursor [2]int

	// Contact inputs
	nameInput     textinput.Model
	otherInput    textinput.Model
	phoneInput    textinput.Model
	relIdx        int // index into model.Relationships, -1 when unset
	ccIdx         int // index into model.CountryCodes, -1 when unset
	cfocus        int
	savingContact bool

	spin spinner.Model

	width   int
	height  int
	loadErr string
}

// New creates the wizard model. The symptom catalog is fetched by Init.
func New(svc Service) Model {
	m := Model{
		svc:       svc,
		genderIdx: -1,
		relIdx:    -1,
		ccIdx:     -1,
	}

	m.ageInput = newInput("34", 3, digitsValidator)
	m.causeInput = newInput("describe what happened", 120, nil)
	m.nameInput = newInput("full name", 60, lettersValidator)
	m.otherInput = newInput("relationship", 40, lettersValidator)
	m.phoneInput = newInput("phone number", 11, digitsValidator)

	m.spin = spinner.New(spinner.WithSpinner(spinner.Dot))

	m.ageInput.Focus()
	return m
}

func newInput(placeholder string, limit int, validate textinput.ValidateFunc) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 30
	ti.Validate = validate
	return ti
}

func digitsValidator(s string) error {
	for _, r := range s {
		if r < '0' || r > '9' {
			return fmt.Errorf("digits only")
		}
	}
	return nil
}

func lettersValidator(s string) error {
	if err := validate.Name(s); err != nil {
		var fe *validate.FieldError
		// Empty is fine while typing; only bad characters are rejected.
		if errors.As(err, &fe) && fe.Reason == validate.ReasonInvalidChars {
			return err
		}
	}
	return nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(fetchCatalogCmd(m.svc), textinput.Blink, m.spin.Tick)
}

// Commands.

func fetchCatalogCmd(svc Service) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		symptoms, err := svc.Symptoms(ctx)
		return catalogMsg{symptoms: symptoms, err: err}
	}
}

func (m Model) debounceCmd() tea.Cmd {
	gen := m.debounceGen
	return tea.Tick(debounceInterval, func(time.Time) tea.Msg {
		return debounceMsg{gen: gen}
	})
}

func validateCauseCmd(svc Service, seq uint64, text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		res, err := svc.ValidateCause(ctx, text)
		return causeResultMsg{seq: seq, res: res, err: err}
	}
}

func assessCmd(svc Service, form model.IntakeForm, symptoms []model.Symptom) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		a, err := svc.Assess(ctx, form, symptoms)
		return assessResultMsg{assessment: a, err: err}
	}
}

func saveContactCmd(svc Service, contact model.EmergencyContact) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		form := intake.ContactForm{Contact: contact}
		if err := form.Save(ctx, svc); err != nil {
			return contactSavedMsg{errMsg: form.ErrorMessage}
		}
		return contactSavedMsg{saved: true}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case catalogMsg:
		if msg.err != nil {
			m.loadErr = "loading symptom catalog: " + msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.session = intake.NewSession(msg.symptoms)
		return m, nil

	case debounceMsg:
		// Only the timer for the newest edit may fire a call.
		if m.session == nil || msg.gen != m.debounceGen {
			return m, nil
		}
		if !m.session.ShouldValidateCause() {
			return m, nil
		}
		seq := m.session.Cause.Begin()
		m.checking = true
		return m, validateCauseCmd(m.svc, seq, m.session.CauseText())

	case causeResultMsg:
		if m.session == nil {
			return m, nil
		}
		if msg.err != nil {
			if m.session.Cause.Fail(msg.seq) {
				m.checking = false
			}
			return m, nil
		}
		if m.session.Cause.Apply(msg.seq, msg.res) {
			m.checking = false
		}
		return m, nil

	case assessResultMsg:
		if m.session != nil {
			m.session.FinishSubmit(msg.assessment, msg.err)
		}
		return m, nil

	case contactSavedMsg:
		m.savingContact = false
		if msg.saved {
			m.contact.Saved = true
			m.contact.ErrorMessage = ""
		} else {
			m.contact.ErrorMessage = msg.errMsg
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.loadErr != "" {
		switch {
		case key.Matches(msg, keys.Retry):
			m.loadErr = ""
			return m, fetchCatalogCmd(m.svc)
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		}
		return m, nil
	}

	if m.session == nil {
		if key.Matches(msg, keys.Quit) {
			return m, tea.Quit
		}
		return m, nil
	}

	if !m.typing() && key.Matches(msg, keys.Quit) {
		return m, tea.Quit
	}

	if m.screen == screenContact {
		return m.updateContact(msg)
	}

	switch m.session.Step {
	case intake.StepDemographics:
		return m.updateDemographics(msg)
	case intake.StepSymptoms:
		return m.updateSymptoms(msg)
	default:
		return m.updateResult(msg)
	}
}

// typing reports whether a free-text input currently has focus, in which case
// printable keys belong to it.
func (m Model) typing() bool {
	if m.session == nil {
		return false
	}
	if m.screen == screenContact {
		return m.cfocus == cfName || m.cfocus == cfOther || m.cfocus == cfPhone
	}
	return m.session.Step == intake.StepDemographics &&
		(m.focus == focusAge || m.focus == focusCause)
}

// --- Demographics ---

func (m Model) updateDemographics(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Focus), key.Matches(msg, keys.Down):
		m.setDemoFocus((m.focus + 1) % demoFocusCount)
		return m, nil

	case key.Matches(msg, keys.Up):
		m.setDemoFocus((m.focus + demoFocusCount - 1) % demoFocusCount)
		return m, nil

	case key.Matches(msg, keys.Next):
		if err := m.session.Advance(); err == nil {
			m.pane = 0
			m.cursor = [2]int{}
		}
		return m, nil

	case m.focus == focusGender && key.Matches(msg, keys.Left):
		m.cycleGender(-1)
		return m, nil

	case m.focus == focusGender && key.Matches(msg, keys.Right):
		m.cycleGender(1)
		return m, nil
	}

	return m.updateDemoInput(msg)
}

func (m *Model) setDemoFocus(focus int) {
	m.focus = focus
	m.ageInput.Blur()
	m.causeInput.Blur()
	switch focus {
	case focusAge:
		m.ageInput.Focus()
	case focusCause:
		m.causeInput.Focus()
	}
}

func (m *Model) cycleGender(delta int) {
	n := len(model.Genders)
	if m.genderIdx < 0 {
		if delta > 0 {
			m.genderIdx = 0
		} else {
			m.genderIdx = n - 1
		}
	} else {
		m.genderIdx = (m.genderIdx + delta + n) % n
	}
	m.session.SetGender(model.Genders[m.genderIdx])
}

func (m Model) updateDemoInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusAge:
		m.ageInput, cmd = m.ageInput.Update(msg)
		m.session.SetAge(m.ageInput.Value())

	case focusCause:
		before := m.causeInput.Value()
		m.causeInput, cmd = m.causeInput.Update(msg)
		if v := m.causeInput.Value(); v != before {
			m.session.SetCause(v)
			// Any edit restarts the quiescence timer and invalidates
			// earlier pending timers.
			m.debounceGen++
			if m.session.ShouldValidateCause() {
				return m, tea.Batch(cmd, m.debounceCmd())
			}
			m.checking = false
		}
	}
	return m, cmd
}

// --- Symptoms ---

func (m Model) updateSymptoms(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.session.Submitting {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Pane):
		m.pane = 1 - m.pane

	case key.Matches(msg, keys.Up):
		if m.cursor[m.pane] > 0 {
			m.cursor[m.pane]--
		}

	case key.Matches(msg, keys.Down):
		if m.cursor[m.pane] < len(m.paneItems(m.pane))-1 {
			m.cursor[m.pane]++
		}

	case key.Matches(msg, keys.Next):
		items := m.paneItems(m.pane)
		if len(items) == 0 {
			break
		}
		name := items[m.cursor[m.pane]].Name
		if m.pane == 0 {
			m.session.Pool.Select(name)
		} else {
			m.session.Pool.Remove(name)
		}
		m.clampCursors()

	case key.Matches(msg, keys.Submit):
		if err := m.session.BeginSubmit(); err == nil {
			return m, tea.Batch(
				m.spin.Tick,
				assessCmd(m.svc, m.session.Form, m.session.Pool.Selected()),
			)
		}

	case key.Matches(msg, keys.Back):
		m.session.Retreat()
	}

	return m, nil
}

func (m Model) paneItems(pane int) []model.Symptom {
	if pane == 0 {
		return m.session.Pool.Available()
	}
	return m.session.Pool.Selected()
}

func (m *Model) clampCursors() {
	for pane := 0; pane < 2; pane++ {
		if max := len(m.paneItems(pane)) - 1; m.cursor[pane] > max {
			if max < 0 {
				max = 0
			}
			m.cursor[pane] = max
		}
	}
}

// --- Result ---

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Contact):
		m.screen = screenContact
		m.setContactFocus(cfName)

	case key.Matches(msg, keys.Reset):
		m.resetAll()

	case key.Matches(msg, keys.Back):
		m.session.Retreat()
	}
	return m, nil
}

func (m *Model) resetAll() {
	m.session.Reset()
	m.contact.Reset()
	m.screen = screenWizard
	m.genderIdx = -1
	m.relIdx = -1
	m.ccIdx = -1
	m.checking = false
	m.debounceGen++
	m.pane = 0
	m.cursor = [2]int{}
	m.ageInput.SetValue("")
	m.causeInput.SetValue("")
	m.nameInput.SetValue("")
	m.otherInput.SetValue("")
	m.phoneInput.SetValue("")
	m.setDemoFocus(focusAge)
}

// --- Emergency contact ---

// contactFields lists the active focus slots in order. The Other slot only
// exists while the relationship is Other.
func (m Model) contactFields() []int {
	fields := []int{cfName, cfRelationship}
	if m.contact.Contact.Relationship == model.RelationshipOther {
		fields = append(fields, cfOther)
	}
	return append(fields, cfCountry, cfPhone)
}

func (m *Model) setContactFocus(focus int) {
	m.cfocus = focus
	m.nameInput.Blur()
	m.otherInput.Blur()
	m.phoneInput.Blur()
	switch focus {
	case cfName:
		m.nameInput.Focus()
	case cfOther:
		m.otherInput.Focus()
	case cfPhone:
		m.phoneInput.Focus()
	}
}

func (m *Model) moveContactFocus(delta int) {
	fields := m.contactFields()
	idx := 0
	for i, f := range fields {
		if f == m.cfocus {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(fields)) % len(fields)
	m.setContactFocus(fields[idx])
}

func (m Model) updateContact(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.savingContact {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		m.screen = screenWizard
		return m, nil

	case key.Matches(msg, keys.Focus), key.Matches(msg, keys.Down):
		m.moveContactFocus(1)
		return m, nil

	case key.Matches(msg, keys.Up):
		m.moveContactFocus(-1)
		return m, nil

	case key.Matches(msg, keys.Next):
		m.savingContact = true
		m.contact.Saved = false
		return m, tea.Batch(m.spin.Tick, saveContactCmd(m.svc, m.contact.Contact))

	case m.cfocus == cfRelationship && key.Matches(msg, keys.Left):
		m.cycleRelationship(-1)
		return m, nil

	case m.cfocus == cfRelationship && key.Matches(msg, keys.Right):
		m.cycleRelationship(1)
		return m, nil

	case m.cfocus == cfCountry && key.Matches(msg, keys.Left):
		m.cycleCountry(-1)
		return m, nil

	case m.cfocus == cfCountry && key.Matches(msg, keys.Right):
		m.cycleCountry(1)
		return m, nil
	}

	return m.updateContactInput(msg)
}

func (m *Model) cycleRelationship(delta int) {
	n := len(model.Relationships)
	if m.relIdx < 0 {
		if delta > 0 {
			m.relIdx = 0
		} else {
			m.relIdx = n - 1
		}
	} else {
		m.relIdx = (m.relIdx + delta + n) % n
	}
	m.contact.SetRelationship(model.Relationships[m.relIdx])
	if m.contact.Contact.Relationship != model.RelationshipOther {
		m.otherInput.SetValue("")
	}
}

func (m *Model) cycleCountry(delta int) {
	n := len(model.CountryCodes)
	if m.ccIdx < 0 {
		if delta > 0 {
			m.ccIdx = 0
		} else {
			m.ccIdx = n - 1
		}
	} else {
		m.ccIdx = (m.ccIdx + delta + n) % n
	}
	m.contact.Contact.CountryCode = model.CountryCodes[m.ccIdx].Code
	m.contact.ErrorMessage = ""
}

func (m Model) updateContactInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.cfocus {
	case cfName:
		m.nameInput, cmd = m.nameInput.Update(msg)
		m.contact.Contact.Name = m.nameInput.Value()
	case cfOther:
		m.otherInput, cmd = m.otherInput.Update(msg)
		m.contact.Contact.OtherRelationship = m.otherInput.Value()
	case cfPhone:
		m.phoneInput, cmd = m.phoneInput.Update(msg)
		m.contact.Contact.PhoneNumber = m.phoneInput.Value()
	default:
		return m, nil
	}
	m.contact.ErrorMessage = ""
	return m, cmd
}

// Run starts the intake wizard.
func Run(svc Service) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
