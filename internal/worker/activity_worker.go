package worker

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/patientfirst/crm-backend/internal/domain"
	"github.com/patientfirst/crm-backend/internal/events"
	"github.com/patientfirst/crm-backend/internal/repository"
)

// ActivityWorker turns domain events into activity-log rows. Failures
// are logged and dropped; the log is advisory.
type ActivityWorker struct {
	activities repository.ActivityRepository
	logger     *zap.Logger
}

// NewActivityWorker constructs the worker.
func NewActivityWorker(activities repository.ActivityRepository, logger *zap.Logger) *ActivityWorker {
	return &ActivityWorker{activities: activities, logger: logger}
}

// Register subscribes the worker to the dispatcher.
func (w *ActivityWorker) Register(dispatcher events.Dispatcher) {
	dispatcher.Subscribe(events.EventLeadCreated, w.onLeadCreated)
	dispatcher.Subscribe(events.EventLeadStatusChanged, w.onLeadStatusChanged)
	dispatcher.Subscribe(events.EventLoginSucceeded, w.onLogin(domain.ActivityLoginSucceeded))
	dispatcher.Subscribe(events.EventLoginFailed, w.onLogin(domain.ActivityLoginFailed))
}

func (w *ActivityWorker) onLeadCreated(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.LeadCreatedPayload)
	if !ok {
		return nil
	}
	entityType := "lead"
	activity := &domain.Activity{
		UserID:      event.UserID,
		Type:        domain.ActivityLeadCreated,
		Description: fmt.Sprintf("created new lead for %s %s", payload.FirstName, payload.LastName),
		EntityType:  &entityType,
		EntityID:    &payload.LeadID,
	}
	return w.write(ctx, activity)
}

func (w *ActivityWorker) onLeadStatusChanged(ctx context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.LeadStatusChangedPayload)
	if !ok {
		return nil
	}
	entityType := "lead"
	activity := &domain.Activity{
		UserID: event.UserID,
		Type:   domain.ActivityLeadStatusChanged,
		Description: fmt.Sprintf("changed %s %s status (%s -> %s)",
			payload.FirstName, payload.LastName, payload.OldStatus, payload.NewStatus),
		EntityType: &entityType,
		EntityID:   &payload.LeadID,
	}
	return w.write(ctx, activity)
}

func (w *ActivityWorker) onLogin(activityType domain.ActivityType) events.EventHandler {
	return func(ctx context.Context, event events.Event) error {
		payload, ok := event.Payload.(events.LoginPayload)
		if !ok {
			return nil
		}
		description := fmt.Sprintf("login attempt for %s", payload.Username)
		if payload.Reason != "" {
			description += ": " + payload.Reason
		}
		activity := &domain.Activity{
			UserID:      event.UserID,
			Type:        activityType,
			Description: description,
			IPAddress:   &payload.ClientIP,
		}
		return w.write(ctx, activity)
	}
}

func (w *ActivityWorker) write(ctx context.Context, activity *domain.Activity) error {
	// Failed logins for unknown usernames carry no user id and cannot
	// reference the users table; the login monitor still records them.
	if activity.UserID == 0 {
		return nil
	}
	if err := w.activities.Create(ctx, activity); err != nil {
		w.logger.Warn("activity log write failed",
			zap.String("type", string(activity.Type)), zap.Error(err))
	}
	return nil
}
