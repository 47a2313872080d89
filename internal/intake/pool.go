package intake

import "github.com/triageai/triage/internal/model"

// SymptomPool partitions the session catalog into available and selected
// symptoms. Moves are size-preserving and keyed by name: a symptom is always
// in exactly one of the two collections.
type SymptomPool struct {
	available []model.Symptom
	selected  []model.Symptom
}

// NewSymptomPool starts with the whole catalog available and nothing selected.
func NewSymptomPool(catalog []model.Symptom) SymptomPool {
	available := make([]model.Symptom, len(catalog))
	copy(available, catalog)
	return SymptomPool{available: available}
}

// Select moves the named symptom from available to selected. Selecting a
// symptom that is already selected, or unknown, is a no-op.
func (p *SymptomPool) Select(name string) {
	for i, s := range p.available {
		if s.Name == name {
			p.available = append(p.available[:i], p.available[i+1:]...)
			p.selected = append(p.selected, s)
			return
		}
	}
}

// Remove moves the named symptom back from selected to available. A no-op if
// the symptom is not selected.
func (p *SymptomPool) Remove(name string) {
	for i, s := range p.selected {
		if s.Name == name {
			p.selected = append(p.selected[:i], p.selected[i+1:]...)
			p.available = append(p.available, s)
			return
		}
	}
}

// Available returns the symptoms not yet selected.
func (p *SymptomPool) Available() []model.Symptom { return p.available }

// Selected returns the selected symptoms.
func (p *SymptomPool) Selected() []model.Symptom { return p.selected }

// Size returns the total catalog size across both collections.
func (p *SymptomPool) Size() int { return len(p.available) + len(p.selected) }

// ResetSelection moves every selected symptom back to available.
func (p *SymptomPool) ResetSelection() {
	p.available = append(p.available, p.selected...)
	p.selected = nil
}
