package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/cafe-pos/internal/config"
	"github.com/spec-kit/cafe-pos/internal/events"
)

// ReceiptService reacts to terminal events: it drives the receipt printer
// stub on checkout and keeps a shift audit trail for session open/close.
type ReceiptService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	cfg        config.ReceiptConfig
}

// NewReceiptService creates the service.
func NewReceiptService(dispatcher events.Dispatcher, logger *zap.Logger, cfg config.ReceiptConfig) *ReceiptService {
	return &ReceiptService{
		dispatcher: dispatcher,
		logger:     logger,
		cfg:        cfg,
	}
}

// RegisterHandlers subscribes to events.
func (s *ReceiptService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventOrderCheckedOut, s.handleOrderCheckedOut)
	s.dispatcher.Subscribe(events.EventSessionOpened, s.handleSessionOpened)
	s.dispatcher.Subscribe(events.EventSessionClosed, s.handleSessionClosed)
}

func (s *ReceiptService) handleOrderCheckedOut(ctx context.Context, event events.Event) error {
	s.logger.Info("OrderCheckedOut", zap.String("staff_id", event.StaffID), zap.Any("payload", event.Payload))
	s.printReceiptStub(ctx, event)
	s.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (s *ReceiptService) handleSessionOpened(ctx context.Context, event events.Event) error {
	s.logger.Info("SessionOpened", zap.String("staff_id", event.StaffID), zap.Any("payload", event.Payload))
	return nil
}

func (s *ReceiptService) handleSessionClosed(ctx context.Context, event events.Event) error {
	s.logger.Info("SessionClosed", zap.String("staff_id", event.StaffID))
	s.sendWebhookNotificationStub(ctx, event)
	return nil
}

func (s *ReceiptService) printReceiptStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(s.cfg.PrinterName) == "" {
		return
	}
	s.logger.Debug("printReceiptStub",
		zap.String("printer", s.cfg.PrinterName),
		zap.String("event_type", string(event.Type)))
}

func (s *ReceiptService) sendWebhookNotificationStub(_ context.Context, event events.Event) {
	if strings.TrimSpace(s.cfg.WebhookURL) == "" {
		return
	}
	s.logger.Debug("sendWebhookNotificationStub",
		zap.String("url", s.cfg.WebhookURL),
		zap.String("event_type", string(event.Type)))
}
