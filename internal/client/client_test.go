package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triageai/triage/internal/api"
	"github.com/triageai/triage/internal/model"
	"github.com/triageai/triage/internal/store"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	srv := api.New("127.0.0.1:0", store.NewMemory(), zerolog.Nop())
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return New(ts.URL, time.Second)
}

func TestSymptoms(t *testing.T) {
	c := newTestClient(t)

	symptoms, err := c.Symptoms(context.Background())
	require.NoError(t, err)
	require.Len(t, symptoms, 10)
	assert.Equal(t, "Chest Pain", symptoms[0].Name)
	assert.Equal(t, "5", symptoms[0].Severity)
}

func TestValidateCause(t *testing.T) {
	c := newTestClient(t)

	res, err := c.ValidateCause(context.Background(), "car accident")
	require.NoError(t, err)
	assert.True(t, res.IsValid)

	res, err = c.ValidateCause(context.Background(), "##")
	require.NoError(t, err)
	assert.False(t, res.IsValid)
	assert.NotEmpty(t, res.Suggestions)
}

func TestAssess(t *testing.T) {
	c := newTestClient(t)

	form := model.IntakeForm{
		Age:               34,
		Gender:            model.GenderFemale,
		MechanismOfInjury: "car accident",
	}
	a, err := c.Assess(context.Background(), form, []model.Symptom{
		{Name: "Chest Pain", Severity: "5"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Critical", a.SeverityLevel)
	assert.NotEmpty(t, a.RecommendedActions)
}

func TestAssessErrorSurfacesServerMessage(t *testing.T) {
	c := newTestClient(t)

	form := model.IntakeForm{Age: 34, Gender: model.GenderMale}
	_, err := c.Assess(context.Background(), form, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "symptom")
}

func TestSaveContact(t *testing.T) {
	c := newTestClient(t)

	contact := model.EmergencyContact{
		Name:              "Jane Doe",
		Relationship:      model.RelationshipOther,
		OtherRelationship: "legal guardian",
		CountryCode:       "+1",
		PhoneNumber:       "5551234567",
	}
	require.NoError(t, c.SaveContact(context.Background(), contact))

	// The server rejects what local validation would have caught.
	contact.PhoneNumber = "123"
	assert.Error(t, c.SaveContact(context.Background(), contact))
}

func TestUnreachableServer(t *testing.T) {
	c := New("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := c.Symptoms(context.Background())
	assert.Error(t, err)
}
