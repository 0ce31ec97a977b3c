package contact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/starford/folio/internal/apperr"
	"github.com/starford/folio/internal/inbox"
)

// Recorder persists submissions and their delivery outcome.
type Recorder interface {
	Save(ctx context.Context, m *inbox.Message) error
	MarkSent(ctx context.Context, id string) error
	MarkFailed(ctx context.Context, id, reason string) error
}

// EventFunc is told about every submission outcome ("sent" or "failed").
type EventFunc func(status, id string)

// Receipt is returned for an accepted submission.
type Receipt struct {
	ID     string       `json:"id"`
	Status inbox.Status `json:"status"`
}

// Service validates, records and dispatches contact submissions.
type Service struct {
	sender        Sender
	recorder      Recorder
	to            string
	from          string
	subjectPrefix string
	logger        *slog.Logger
	onEvent       EventFunc
}

// Option configures a Service.
type Option func(*Service)

// WithRecorder stores submissions in r.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

// WithEvents reports outcomes to fn.
func WithEvents(fn EventFunc) Option {
	return func(s *Service) { s.onEvent = fn }
}

// WithSubjectPrefix sets the prefix of outbound subjects.
func WithSubjectPrefix(p string) Option {
	return func(s *Service) { s.subjectPrefix = p }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// NewService creates a Service delivering to the given recipient.
func NewService(sender Sender, to, from string, opts ...Option) *Service {
	s := &Service{
		sender:        sender,
		to:            to,
		from:          from,
		subjectPrefix: "Portfolio Contact",
		logger:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit validates sub and sends it once. Validation failures wrap
// apperr.ErrInvalid (and the validation.Errors); a failed send wraps
// apperr.ErrDelivery. There is no retry.
func (s *Service) Submit(ctx context.Context, sub Submission) (Receipt, error) {
	sub = sub.Normalize()
	if err := sub.Validate(); err != nil {
		return Receipt{}, fmt.Errorf("contact: %w: %w", apperr.ErrInvalid, err)
	}

	msg := &inbox.Message{Name: sub.Name, Email: sub.Email, Subject: sub.Subject, Body: sub.Message}
	recorded := false
	if s.recorder != nil {
		if err := s.recorder.Save(ctx, msg); err != nil {
			s.logger.Warn("contact: record failed, sending anyway", slog.String("error", err.Error()))
		} else {
			recorded = true
		}
	}

	sendErr := s.sender.Send(ctx, s.email(sub))
	// Outcome bookkeeping must not be skipped because the request ended.
	bookCtx := context.WithoutCancel(ctx)

	if sendErr != nil {
		s.logger.Error("contact: delivery failed",
			slog.String("id", msg.ID),
			slog.String("error", sendErr.Error()))
		if recorded {
			if err := s.recorder.MarkFailed(bookCtx, msg.ID, sendErr.Error()); err != nil {
				s.logger.Warn("contact: mark failed", slog.String("error", err.Error()))
			}
		}
		s.emit(string(inbox.StatusFailed), msg.ID)
		return Receipt{ID: msg.ID, Status: inbox.StatusFailed}, fmt.Errorf("contact: %w: %w", apperr.ErrDelivery, sendErr)
	}

	if recorded {
		if err := s.recorder.MarkSent(bookCtx, msg.ID); err != nil {
			s.logger.Warn("contact: mark sent", slog.String("error", err.Error()))
		}
	}
	s.logger.Info("contact: message sent", slog.String("id", msg.ID), slog.String("subject", sub.Subject))
	s.emit(string(inbox.StatusSent), msg.ID)
	return Receipt{ID: msg.ID, Status: inbox.StatusSent}, nil
}

func (s *Service) email(sub Submission) Email {
	subject := s.subjectPrefix + ": " + sub.Name
	if sub.Subject != "" {
		subject = fmt.Sprintf("%s [%s]: %s", s.subjectPrefix, sub.Subject, sub.Name)
	}
	body := fmt.Sprintf(`New contact form submission from your portfolio:

Name: %s
Email: %s
Subject: %s
Message:
%s

---
Sent from your portfolio contact form
`, sub.Name, sub.Email, sub.Subject, sub.Message)

	from := s.from
	if from == "" {
		from = s.to
	}
	return Email{To: s.to, From: from, ReplyTo: sub.Email, Subject: subject, Body: body}
}

func (s *Service) emit(status, id string) {
	if s.onEvent != nil {
		s.onEvent(status, id)
	}
}
