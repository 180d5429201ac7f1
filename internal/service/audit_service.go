package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dinhviettung/citizen-registry/internal/events"
)

// AuditService writes security and registry events to the audit log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventLoginSucceeded, a.handle)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleWarn)
	a.dispatcher.Subscribe(events.EventLoginThrottled, a.handleWarn)
	a.dispatcher.Subscribe(events.EventCitizenAdded, a.handle)
	a.dispatcher.Subscribe(events.EventCitizenDeleted, a.handle)
}

func (a *AuditService) handle(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), a.fields(event)...)
	return nil
}

func (a *AuditService) handleWarn(_ context.Context, event events.Event) error {
	a.logger.Warn(string(event.Type), a.fields(event)...)
	return nil
}

func (a *AuditService) fields(event events.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("username", event.Actor.Username),
		zap.Time("at", event.Timestamp),
	}
	if event.Actor.UserID != 0 {
		fields = append(fields, zap.Int64("user_id", event.Actor.UserID), zap.Int64("role_id", event.Actor.RoleID))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	return fields
}
