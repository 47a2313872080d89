package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/triageai/triage/internal/intake"
	"github.com/triageai/triage/internal/model"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.loadErr != "" {
		return lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Patient Intake"),
			errorStyle.Render(m.loadErr),
			"",
			helpStyle.Render("r retry • q quit"),
		)
	}
	if m.session == nil {
		return m.spin.View() + " fetching symptom catalog..."
	}
	if m.screen == screenContact {
		return m.viewContact()
	}
	switch m.session.Step {
	case intake.StepDemographics:
		return m.viewDemographics()
	case intake.StepSymptoms:
		return m.viewSymptoms()
	default:
		return m.viewResult()
	}
}

func (m Model) statusBar(step string) string {
	return statusBarStyle.Render(fmt.Sprintf("Patient Intake · %s", step))
}

func (m Model) fieldLabel(label string, focused bool) string {
	if focused {
		return labelFocusStyle.Render("> " + label)
	}
	return labelStyle.Render("  " + label)
}

func (m Model) viewDemographics() string {
	var b strings.Builder

	b.WriteString(m.statusBar("Step 1/3 · Demographics"))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Age", m.focus == focusAge))
	b.WriteString("\n  ")
	b.WriteString(m.ageInput.View())
	b.WriteString("\n\n")

	gender := "choose with ←/→"
	if m.genderIdx >= 0 {
		gender = model.Genders[m.genderIdx].String()
	}
	b.WriteString(m.fieldLabel("Gender", m.focus == focusGender))
	b.WriteString("\n  ")
	if m.focus == focusGender {
		b.WriteString(valueStyle.Render("‹ " + gender + " ›"))
	} else {
		b.WriteString(valueStyle.Render(gender))
	}
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Mechanism of injury", m.focus == focusCause))
	b.WriteString("\n  ")
	b.WriteString(m.causeInput.View())
	b.WriteString("\n")
	if line := m.causeStatus(); line != "" {
		b.WriteString("  " + line + "\n")
	}

	if m.session.ErrorMessage != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.session.ErrorMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab next field • ←/→ choose • enter continue • q quit"))
	return b.String()
}

// causeStatus renders the line under the mechanism-of-injury input:
// validating spinner, invalid result with suggestions, valid confirmation, or
// a non-blocking unavailability warning.
func (m Model) causeStatus() string {
	if m.checking {
		return m.spin.View() + " checking..."
	}
	if m.session.Cause.Unavailable() {
		return warnStyle.Render("validation unavailable, you can continue")
	}
	res := m.session.Cause.Result()
	if res == nil {
		return ""
	}
	if res.IsValid {
		return okStyle.Render("✓ looks good")
	}
	line := errorStyle.Render("✗ " + m.session.Cause.BlockMessage())
	if len(res.Suggestions) > 0 {
		line += "\n  " + suggestionStyle.Render("try: "+strings.Join(res.Suggestions, ", "))
	}
	return line
}

func (m Model) viewSymptoms() string {
	var b strings.Builder

	b.WriteString(m.statusBar("Step 2/3 · Symptoms"))
	b.WriteString("\n\n")

	available := m.renderPane("Available", m.session.Pool.Available(), 0)
	selected := m.renderPane("Selected", m.session.Pool.Selected(), 1)
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, available, " ", selected))
	b.WriteString("\n")

	if m.session.Submitting {
		b.WriteString("\n" + m.spin.View() + " submitting assessment...\n")
	}
	if m.session.ErrorMessage != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.session.ErrorMessage))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab switch pane • ↑/↓ move • enter add/remove • s submit • esc back • q quit"))
	return b.String()
}

func (m Model) renderPane(title string, items []model.Symptom, pane int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", title, len(items))))
	b.WriteString("\n")
	if len(items) == 0 {
		b.WriteString(labelStyle.Render("(none)"))
	}
	for i, sym := range items {
		line := fmt.Sprintf("%s  %s", sym.Name, labelStyle.Render("sev "+sym.Severity))
		if pane == m.pane && i == m.cursor[pane] {
			line = itemSelectedStyle.Render("> " + line)
		} else {
			line = itemStyle.Render("  " + line)
		}
		b.WriteString(line)
		if i < len(items)-1 {
			b.WriteString("\n")
		}
	}
	style := panelStyle
	if pane == m.pane {
		style = panelActiveStyle
	}
	return style.Width(38).Render(b.String())
}

func (m Model) viewResult() string {
	var b strings.Builder

	b.WriteString(m.statusBar("Step 3/3 · Assessment"))
	b.WriteString("\n\n")

	a := m.session.Assessment
	if a == nil {
		b.WriteString(labelStyle.Render("no assessment available"))
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("esc back • r new intake • q quit"))
		return b.String()
	}

	b.WriteString(labelStyle.Render("Severity        "))
	b.WriteString(severityStyle(a.SeverityLevel).Render(a.SeverityLevel))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Time to treat   "))
	b.WriteString(valueStyle.Render(a.EstimatedTimeToTreatment))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render("Confidence      "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%.0f%%", a.ConfidenceScore*100)))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render("Recommended actions"))
	b.WriteString("\n")
	for _, action := range a.RecommendedActions {
		b.WriteString(itemStyle.Render("  • " + action))
		b.WriteString("\n")
	}

	if m.contact.Saved {
		b.WriteString("\n")
		b.WriteString(okStyle.Render("✓ emergency contact saved"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("e emergency contact • r new intake • esc back • q quit"))
	return b.String()
}

func (m Model) viewContact() string {
	var b strings.Builder

	b.WriteString(m.statusBar("Emergency Contact"))
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Name", m.cfocus == cfName))
	b.WriteString("\n  ")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")

	rel := "choose with ←/→"
	if m.relIdx >= 0 {
		rel = model.Relationships[m.relIdx].String()
	}
	b.WriteString(m.fieldLabel("Relationship", m.cfocus == cfRelationship))
	b.WriteString("\n  ")
	if m.cfocus == cfRelationship {
		b.WriteString(valueStyle.Render("‹ " + rel + " ›"))
	} else {
		b.WriteString(valueStyle.Render(rel))
	}
	b.WriteString("\n\n")

	if m.contact.Contact.Relationship == model.RelationshipOther {
		b.WriteString(m.fieldLabel("Specify relationship", m.cfocus == cfOther))
		b.WriteString("\n  ")
		b.WriteString(m.otherInput.View())
		b.WriteString("\n\n")
	}

	cc := "choose with ←/→"
	if m.ccIdx >= 0 {
		entry := model.CountryCodes[m.ccIdx]
		cc = fmt.Sprintf("%s %s", entry.Code, entry.Country)
	}
	b.WriteString(m.fieldLabel("Country code", m.cfocus == cfCountry))
	b.WriteString("\n  ")
	if m.cfocus == cfCountry {
		b.WriteString(valueStyle.Render("‹ " + cc + " ›"))
	} else {
		b.WriteString(valueStyle.Render(cc))
	}
	b.WriteString("\n\n")

	b.WriteString(m.fieldLabel("Phone number", m.cfocus == cfPhone))
	b.WriteString("\n  ")
	b.WriteString(m.phoneInput.View())
	b.WriteString("\n")

	if m.savingContact {
		b.WriteString("\n" + m.spin.View() + " saving...\n")
	}
	if m.contact.ErrorMessage != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.contact.ErrorMessage))
		b.WriteString("\n")
	}
	if m.contact.Saved {
		b.WriteString("\n")
		b.WriteString(okStyle.Render("✓ saved"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("tab next field • ←/→ choose • enter save • esc back"))
	return b.String()
}
