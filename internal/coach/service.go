package coach

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/maple-budget/maple/internal/activity"
	"github.com/maple-budget/maple/internal/id"
	"github.com/maple-budget/maple/internal/model"
)

// DefaultFollowUpDays is how long after an audit the user should check in again.
const DefaultFollowUpDays = 30

// ErrEmptyMessage is returned by Ask when there is no question.
var ErrEmptyMessage = errors.New("message is required")

// Store is the persistence the coach needs.
type Store interface {
	Loader
	CreateAudit(ctx context.Context, a model.Audit) error
	ListAudits(ctx context.Context, userID string) ([]model.Audit, error)
	CompleteAudit(ctx context.Context, userID, id string) error
}

// Service runs audits and answers questions.
type Service struct {
	store        Store
	gen          Generator
	log          activity.Recorder
	logger       *zap.Logger
	followUpDays int
	now          func() time.Time
}

// NewService creates a Service. A nil recorder or logger discards output, and
// a non-positive followUpDays uses DefaultFollowUpDays.
func NewService(store Store, gen Generator, rec activity.Recorder, logger *zap.Logger, followUpDays int) *Service {
	if rec == nil {
		rec = activity.Nop{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if followUpDays <= 0 {
		followUpDays = DefaultFollowUpDays
	}
	return &Service{
		store:        store,
		gen:          gen,
		log:          rec,
		logger:       logger,
		followUpDays: followUpDays,
		now:          time.Now,
	}
}

// Audit scores the user's finances, asks the model for recommendations and
// stores the result.
func (s *Service) Audit(ctx context.Context, actor string, user model.User) (model.Audit, error) {
	snap, err := LoadSnapshot(ctx, s.store, user)
	if err != nil {
		return model.Audit{}, err
	}
	score := Score(snap)
	severity := SeverityFor(score)

	prompt, err := AuditPrompt(snap, score, severity)
	if err != nil {
		return model.Audit{}, err
	}
	answer, err := s.gen.Generate(ctx, Request{System: Persona, Prompt: prompt, JSON: true})
	if err != nil {
		return model.Audit{}, fmt.Errorf("generating audit: %w", err)
	}
	recs, err := ParseRecommendations(answer)
	if err != nil {
		s.logger.Warn("unusable audit response", zap.String("user", user.ID), zap.Int("length", len(answer)), zap.Error(err))
		return model.Audit{}, err
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		return model.Audit{}, fmt.Errorf("encoding snapshot: %w", err)
	}
	now := s.now().UTC()
	a := model.Audit{
		ID:              id.New(),
		UserID:          user.ID,
		Snapshot:        raw,
		Recommendations: recs,
		Score:           score,
		Severity:        severity,
		FollowUpDate:    now.AddDate(0, 0, s.followUpDays),
		CreatedAt:       now,
	}
	if err := s.store.CreateAudit(ctx, a); err != nil {
		return model.Audit{}, fmt.Errorf("saving audit: %w", err)
	}
	_ = s.log.Record(activity.Entry{
		Actor:    actor,
		Action:   "coach.audit",
		Details:  fmt.Sprintf("Audit scored %d/%d (%s)", score, MaxScore, severity),
		RecordID: a.ID,
	})
	s.logger.Info("audit completed", zap.String("user", user.ID), zap.Int("score", score), zap.String("severity", string(severity)))
	return a, nil
}

// Audits returns the user's past audits, newest first.
func (s *Service) Audits(ctx context.Context, userID string) ([]model.Audit, error) {
	audits, err := s.store.ListAudits(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing audits: %w", err)
	}
	return audits, nil
}

// Complete marks the follow-up of an audit as done.
func (s *Service) Complete(ctx context.Context, actor, userID, auditID string) error {
	if err := s.store.CompleteAudit(ctx, userID, auditID); err != nil {
		return fmt.Errorf("completing audit %s: %w", auditID, err)
	}
	_ = s.log.Record(activity.Entry{Actor: actor, Action: "coach.complete", Details: "Completed audit follow-up", RecordID: auditID})
	return nil
}

// Ask answers a single question. With includeData the user's financial
// context is appended to the system instruction.
func (s *Service) Ask(ctx context.Context, user model.User, message string, includeData bool) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	system := Persona
	if includeData {
		snap, err := LoadSnapshot(ctx, s.store, user)
		if err != nil {
			return "", err
		}
		system += "\n\n" + ContextText(snap)
	}

	answer, err := s.gen.Generate(ctx, Request{System: system, Prompt: message})
	if err != nil {
		return "", fmt.Errorf("asking coach: %w", err)
	}
	return answer, nil
}
