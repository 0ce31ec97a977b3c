package models

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Experience is a career entry. A nil EndDate means the role is ongoing.
type Experience struct {
	ID               string `json:"id" yaml:"id"`
	Title            string `json:"title" yaml:"title"`
	OrganizationName string `json:"organizationName" yaml:"organizationName"`
	Location         string `json:"location,omitempty" yaml:"location,omitempty"`
	StartDate        *Date  `json:"startDate,omitempty" yaml:"startDate,omitempty"`
	EndDate          *Date  `json:"endDate,omitempty" yaml:"endDate,omitempty"`
	Description      string `json:"description,omitempty" yaml:"description,omitempty"`
	ExperienceType   string `json:"experienceType,omitempty" yaml:"experienceType,omitempty"`
	Link             string `json:"link,omitempty" yaml:"link,omitempty"`
}

// RecordID implements Record.
func (e Experience) RecordID() string { return e.ID }

// Collection implements Record.
func (e Experience) Collection() Collection { return CollectionExperience }

// Ongoing reports whether the role has no end date.
func (e Experience) Ongoing() bool { return e.EndDate == nil }

// Validate checks required fields, URL shape and date ordering.
func (e Experience) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.ID, validation.Required),
		validation.Field(&e.Title, validation.Required),
		validation.Field(&e.OrganizationName, validation.Required),
		validation.Field(&e.Link, is.URL),
		validation.Field(&e.EndDate, validation.By(notBefore(e.StartDate))),
	)
}

func notBefore(start *Date) validation.RuleFunc {
	return func(value any) error {
		end, _ := value.(*Date)
		if start == nil || end == nil {
			return nil
		}
		if end.Before(*start) {
			return errors.New("must not be before startDate")
		}
		return nil
	}
}
