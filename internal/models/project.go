package models

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Project is a portfolio showcase entry.
type Project struct {
	ID                  string `json:"id" yaml:"id"`
	ProjectName         string `json:"projectName" yaml:"projectName"`
	ProjectType         string `json:"projectType,omitempty" yaml:"projectType,omitempty"`
	ProjectDescription  string `json:"projectDescription,omitempty" yaml:"projectDescription,omitempty"`
	GithubLink          string `json:"githubLink,omitempty" yaml:"githubLink,omitempty"`
	LiveLink            string `json:"liveLink,omitempty" yaml:"liveLink,omitempty"`
	MainScreenshot      string `json:"mainScreenshot,omitempty" yaml:"mainScreenshot,omitempty"`
	TechStack           string `json:"techStack,omitempty" yaml:"techStack,omitempty"`
	ArchitectureDetails string `json:"architectureDetails,omitempty" yaml:"architectureDetails,omitempty"`
	DesignDecisions     string `json:"designDecisions,omitempty" yaml:"designDecisions,omitempty"`
}

// RecordID implements Record.
func (p Project) RecordID() string { return p.ID }

// Collection implements Record.
func (p Project) Collection() Collection { return CollectionProjects }

// TechList splits TechStack on commas, trimming each entry and dropping empties.
func (p Project) TechList() []string {
	if strings.TrimSpace(p.TechStack) == "" {
		return []string{}
	}
	parts := strings.Split(p.TechStack, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// Validate checks required fields and link shape.
func (p Project) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.ProjectName, validation.Required),
		validation.Field(&p.GithubLink, is.URL),
		validation.Field(&p.LiveLink, is.URL),
	)
}
