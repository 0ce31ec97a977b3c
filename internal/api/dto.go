package api

import (
	"github.com/starford/folio/internal/contact"
	"github.com/starford/folio/internal/content"
	"github.com/starford/folio/internal/inbox"
	"github.com/starford/folio/internal/index"
	"github.com/starford/folio/internal/models"
	"github.com/starford/folio/internal/portfolio"
)

// CollectionResponse is the facade result: every record of one collection.
type CollectionResponse = content.Result

// ProjectResponse is a single project.
type ProjectResponse = models.Project

// ContactRequest is the request body of the contact form.
type ContactRequest = contact.Submission

// ContactResponse is returned for a submission, sent or not.
type ContactResponse struct {
	ID           string       `json:"id,omitempty" example:"3f2c9a4e-1b7d-4c1e-9a51-0f7d1c2b8e11"`
	Status       inbox.Status `json:"status" example:"sent" validate:"required"`
	ResetAfterMS int64        `json:"reset_after_ms" example:"3000" validate:"required"`
	Error        string       `json:"error,omitempty" example:"message could not be delivered"`
}

// SearchResult is a single search hit in the API response.
type SearchResult = index.SearchResult

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// MessageListResponse wraps paginated inbox listings.
type MessageListResponse struct {
	Messages []inbox.Message `json:"messages" validate:"required"`
	Total    int             `json:"total" example:"42" validate:"required"`
}

// ReadyResponse reports the served content and index state.
type ReadyResponse struct {
	Status  string           `json:"status" example:"ok" validate:"required"`
	Content portfolio.Status `json:"content" validate:"required"`
}
