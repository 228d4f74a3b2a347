package fallback

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaanihq/vaani/internal/store"
)

func newResponder(t *testing.T) (*Responder, *store.Store) {
	t.Helper()
	forms, err := store.New(t.TempDir())
	require.NoError(t, err)
	return New(forms), forms
}

func TestRespond_FormRequestGeneratesForm(t *testing.T) {
	r, forms := newResponder(t)

	resp, err := r.Respond("I need a form to apply for a scheme")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^welfare_scheme_form_\d{8}_\d{6}\.html$`), resp.FormFilename)
	assert.Contains(t, resp.Text, "created a basic application form")

	content, err := forms.Get(resp.FormFilename)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Government Scheme Application Form")
	assert.Contains(t, string(content), `pattern="[0-9]{12}"`)
}

func TestRespond_TokenDetectionIsCaseInsensitive(t *testing.T) {
	for _, question := range []string{
		"How do I APPLY for the pension scheme?",
		"Where can I get the Application paperwork?",
		"Is there a FORM for this?",
	} {
		r, _ := newResponder(t)
		resp, err := r.Respond(question)
		require.NoError(t, err)
		assert.NotEmpty(t, resp.FormFilename, "question %q should generate a form", question)
	}
}

func TestRespond_GenericQuestionEchoesText(t *testing.T) {
	r, _ := newResponder(t)

	resp, err := r.Respond("What schemes exist for farmers?")
	require.NoError(t, err)

	assert.Empty(t, resp.FormFilename)
	assert.Contains(t, resp.Text, `"What schemes exist for farmers?"`)
	assert.Contains(t, resp.Text, "government schemes")
}

func TestRespond_Deterministic(t *testing.T) {
	r, _ := newResponder(t)

	a, err := r.Respond("tell me about welfare")
	require.NoError(t, err)
	b, err := r.Respond("tell me about welfare")
	require.NoError(t, err)

	assert.Equal(t, a.Text, b.Text)
}
