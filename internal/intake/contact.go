package intake

import (
	"context"

	"github.com/triageai/triage/internal/model"
	"github.com/triageai/triage/internal/validate"
)

// ContactSaver persists a validated emergency contact. The intake core only
// hands records over; storage is someone else's problem.
type ContactSaver interface {
	SaveContact(ctx context.Context, c model.EmergencyContact) error
}

// ContactForm is the emergency-contact sub-form. It is an independent
// instance of the same validation pattern the intake form uses, with a single
// active error slot.
type ContactForm struct {
	Contact      model.EmergencyContact
	ErrorMessage string
	Saved        bool
}

// SetRelationship records the relationship selection. When the selection
// moves away from Other, any companion free-text value is cleared so a stale
// value cannot linger invisibly.
func (f *ContactForm) SetRelationship(r model.Relationship) {
	f.Contact.Relationship = r
	if r != model.RelationshipOther {
		f.Contact.OtherRelationship = ""
	}
	f.ErrorMessage = ""
}

// Save runs full validation and, only if the record is valid, hands it to the
// saver. An invalid record surfaces the first failing field's message and
// performs no side effect.
func (f *ContactForm) Save(ctx context.Context, saver ContactSaver) error {
	if err := validate.Contact(f.Contact); err != nil {
		f.ErrorMessage = err.Error()
		return err
	}
	if err := saver.SaveContact(ctx, f.Contact); err != nil {
		f.ErrorMessage = "saving contact: " + err.Error()
		return err
	}
	f.Saved = true
	f.ErrorMessage = ""
	return nil
}

// Reset clears the sub-form to its initial state.
func (f *ContactForm) Reset() {
	*f = ContactForm{}
}
