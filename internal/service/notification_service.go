package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/LuisSinastre/ServiceDesk-Backend/internal/config"
	"github.com/LuisSinastre/ServiceDesk-Backend/internal/events"
)

// NotificationService handles emitting notifications for lifecycle events.
type NotificationService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.NotificationConfig
}

// NewNotificationService creates the service.
func NewNotificationService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.NotificationConfig) *NotificationService {
	return &NotificationService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (n *NotificationService) RegisterHandlers() {
	if n.dispatcher == nil {
		return
	}
	n.dispatcher.Subscribe(events.EventTicketOpened, n.handleTicketOpened)
	n.dispatcher.Subscribe(events.EventTicketApproved, n.handleProgress)
	n.dispatcher.Subscribe(events.EventTicketTreated, n.handleProgress)
	n.dispatcher.Subscribe(events.EventTicketRejected, n.handleTerminated)
	n.dispatcher.Subscribe(events.EventTicketConcluded, n.handleTerminated)
	n.dispatcher.Subscribe(events.EventTicketCanceled, n.handleTerminated)
}

func (n *NotificationService) handleTicketOpened(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketOpened", zap.Int64("ticket_number", event.TicketNumber), zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleProgress(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketProgressed",
		zap.String("event_type", string(event.Type)),
		zap.Int64("ticket_number", event.TicketNumber),
		zap.Any("payload", event.Payload))
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) handleTerminated(ctx context.Context, event events.Event) error {
	n.logger.Info("TicketTerminated",
		zap.String("event_type", string(event.Type)),
		zap.Int64("ticket_number", event.TicketNumber),
		zap.Any("payload", event.Payload))
	n.sendEmailNotificationStub(ctx, event)
	n.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (n *NotificationService) sendEmailNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.EmailFrom) == "" {
		return
	}
	n.logger.Debug("sendEmailNotificationStub",
		zap.String("from", n.cfg.EmailFrom),
		zap.Int64("ticket_number", event.TicketNumber),
		zap.String("event_type", string(event.Type)))
}

func (n *NotificationService) sendWebhookNotificationStub(ctx context.Context, event events.Event) {
	if strings.TrimSpace(n.cfg.WebhookURL) == "" {
		return
	}
	n.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", n.cfg.WebhookURL),
		zap.Int64("ticket_number", event.TicketNumber),
		zap.String("event_type", string(event.Type)))
}
