// Package fallback generates replies locally when the logic service is down.
//
// The responder is deterministic apart from the timestamp in generated form
// filenames. It never calls an external service: form-related questions get a
// canned acknowledgment plus a minimal static application form persisted to
// the forms store, everything else gets a generic reply echoing the question.
package fallback

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/vaanihq/vaani/internal/store"
)

// formTokens are the question fragments that indicate the user wants a form.
var formTokens = []string{"form", "apply", "application"}

const formAcknowledgment = "I understand you're looking for a form. I've created a basic application form for you to use."

// Response is a locally generated reply.
type Response struct {
	Text         string
	FormFilename string
}

// Responder produces replies without the logic service.
type Responder struct {
	forms *store.Store
	now   func() time.Time
}

// New creates a Responder persisting generated forms to the given store.
func New(forms *store.Store) *Responder {
	return &Responder{forms: forms, now: time.Now}
}

// Respond builds a reply for the given English question. If the question
// mentions a form, a static application form is written to the forms store
// and its filename attached to the response.
func (r *Responder) Respond(englishText string) (*Response, error) {
	lower := strings.ToLower(englishText)
	for _, token := range formTokens {
		if strings.Contains(lower, token) {
			return r.respondWithForm()
		}
	}

	text := fmt.Sprintf("I understand you're asking: %q. I can help with information about government schemes and social welfare programs. What specific details would you like to know?", englishText)
	return &Response{Text: text}, nil
}

func (r *Responder) respondWithForm() (*Response, error) {
	filename := store.FormFilename(r.now())
	if err := r.forms.Put(filename, []byte(applicationFormHTML)); err != nil {
		return nil, fmt.Errorf("persisting fallback form: %w", err)
	}
	slog.Info("generated fallback form", "filename", filename)
	return &Response{Text: formAcknowledgment, FormFilename: filename}, nil
}

// applicationFormHTML is the minimal application form served when the logic
// service cannot generate one. Field set matches the scheme intake form:
// name, age, gender, Aadhar number, annual income, address.
const applicationFormHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Basic Application Form</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; padding: 20px; }
    .form-group { margin-bottom: 15px; }
    label { display: block; margin-bottom: 5px; font-weight: bold; }
    input, select, textarea { width: 100%; padding: 8px; border: 1px solid #ddd; border-radius: 4px; }
    button { background: #4CAF50; color: white; padding: 10px 15px; border: none; border-radius: 4px; cursor: pointer; }
    button:hover { background: #45a049; }
    .form-header { background: #f8f9fa; padding: 15px; border-bottom: 2px solid #4CAF50; margin-bottom: 20px; }
  </style>
</head>
<body>
  <div class="form-container">
    <div class="form-header">
      <h2>Government Scheme Application Form</h2>
      <p>Please fill out this form completely to apply</p>
    </div>

    <form id="applicationForm">
      <div class="form-group">
        <label for="fullName">Full Name:</label>
        <input type="text" id="fullName" name="fullName" required>
      </div>

      <div class="form-group">
        <label for="age">Age:</label>
        <input type="number" id="age" name="age" required min="18" max="120">
      </div>

      <div class="form-group">
        <label for="gender">Gender:</label>
        <select id="gender" name="gender" required>
          <option value="">Select</option>
          <option value="male">Male</option>
          <option value="female">Female</option>
          <option value="other">Other</option>
        </select>
      </div>

      <div class="form-group">
        <label for="aadhar">Aadhar Number:</label>
        <input type="text" id="aadhar" name="aadhar" pattern="[0-9]{12}" placeholder="12 digits" required>
      </div>

      <div class="form-group">
        <label for="income">Annual Income (&#8377;):</label>
        <input type="number" id="income" name="income" required min="0">
      </div>

      <div class="form-group">
        <label for="address">Full Address:</label>
        <textarea id="address" name="address" rows="3" required></textarea>
      </div>

      <button type="submit">Submit Application</button>
    </form>

    <script>
      document.getElementById("applicationForm").addEventListener("submit", function(e) {
        e.preventDefault();
        alert("Form submitted successfully! Your application has been received.");
      });
    </script>
  </div>
</body>
</html>
`
