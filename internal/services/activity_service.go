package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/SAP-F-2025/trainee-dashboard/internal/events"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories"
	"github.com/SAP-F-2025/trainee-dashboard/internal/session"
)

// TopicActivity carries one event per recorded mutation.
const TopicActivity = "dashboard.activity"

// fields never copied into the audit payload
var redactedFields = []string{"password"}

// ===== SERVICE INTERFACE =====

type ActivityService interface {
	List(ctx context.Context, filters repositories.ActivityFilters) (*ActivityListResponse, error)
}

type ActivityListResponse struct {
	Items  []repositories.Activity `json:"items"`
	Total  int64                   `json:"total"`
	Limit  int                     `json:"limit"`
	Offset int                     `json:"offset"`
}

type activityService struct {
	repo      repositories.ActivityRepository
	publisher events.EventPublisher
	logger    *slog.Logger
}

func newActivityService(repo repositories.ActivityRepository, publisher events.EventPublisher, logger *slog.Logger) *activityService {
	return &activityService{repo: repo, publisher: publisher, logger: logger}
}

func (s *activityService) List(ctx context.Context, filters repositories.ActivityFilters) (*ActivityListResponse, error) {
	if s.repo == nil {
		return &ActivityListResponse{Items: []repositories.Activity{}, Limit: filters.Limit, Offset: filters.Offset}, nil
	}
	items, total, err := s.repo.List(ctx, filters)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to list activity", "error", err)
		return nil, fmt.Errorf("failed to list activity: %w", err)
	}
	if items == nil {
		items = []repositories.Activity{}
	}
	return &ActivityListResponse{Items: items, Total: total, Limit: filters.Limit, Offset: filters.Offset}, nil
}

// auditor binds the audit trail to the caller of a workspace.
func (s *activityService) auditor(sess session.Session) Auditor {
	return &sessionAuditor{service: s, session: sess}
}

// record stores and publishes one entry. Neither failure reaches the caller.
func (s *activityService) record(ctx context.Context, sess session.Session, entry AuditEntry) {
	a := &repositories.Activity{
		UserID:     sess.UserID(),
		Section:    string(entry.Section),
		Resource:   entry.Resource,
		Action:     entry.Action,
		DocumentID: entry.DocumentID,
		Success:    entry.Err == nil,
		CreatedAt:  time.Now().UTC(),
	}
	if sess.User != nil {
		a.Username = sess.User.Username
	}
	if entry.Err != nil {
		a.Message = UserMessage(entry.Err)
	}
	if len(entry.Fields) > 0 {
		fields := maps.Clone(entry.Fields)
		for _, f := range redactedFields {
			delete(fields, f)
		}
		if payload, err := json.Marshal(fields); err == nil {
			a.Payload = payload
		}
	}

	if s.repo != nil {
		if err := s.repo.Record(ctx, a); err != nil {
			s.logger.WarnContext(ctx, "Failed to record activity",
				"resource", a.Resource,
				"action", a.Action,
				"error", err)
		}
	}

	if s.publisher == nil {
		return
	}
	event, err := events.NewEvent(events.TypeActivity, a)
	if err == nil {
		err = s.publisher.Publish(ctx, TopicActivity, event)
	}
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to publish activity event", "error", err)
	}
}

type sessionAuditor struct {
	service *activityService
	session session.Session
}

func (a *sessionAuditor) Record(ctx context.Context, entry AuditEntry) {
	a.service.record(ctx, a.session, entry)
}
