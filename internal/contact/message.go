// Package contact validates contact-form submissions and dispatches them
// by email.
package contact

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Subjects offered by the contact form.
var Subjects = []string{"Hiring", "Collaboration", "Feedback", "Other"}

// Submission is what the contact form posts.
type Submission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Normalize trims surrounding whitespace from every field.
func (s Submission) Normalize() Submission {
	return Submission{
		Name:    strings.TrimSpace(s.Name),
		Email:   strings.TrimSpace(s.Email),
		Subject: strings.TrimSpace(s.Subject),
		Message: strings.TrimSpace(s.Message),
	}
}

// Validate checks the submission.
func (s Submission) Validate() error {
	subjects := make([]any, len(Subjects))
	for i, v := range Subjects {
		subjects[i] = v
	}
	return validation.ValidateStruct(&s,
		validation.Field(&s.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&s.Email, validation.Required, is.EmailFormat, validation.Length(3, 254)),
		validation.Field(&s.Subject, validation.In(subjects...)),
		validation.Field(&s.Message, validation.Required, validation.Length(1, 5000)),
	)
}

// Email is an outbound message.
type Email struct {
	To      string
	From    string
	ReplyTo string
	Subject string
	Body    string
}
