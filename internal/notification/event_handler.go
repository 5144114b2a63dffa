package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/hotel-pms/internal/core/events"
)

type EventHandler struct {
	mailer Mailer
	logger *slog.Logger
}

func NewEventHandler(mailer Mailer, logger *slog.Logger) *EventHandler {
	return &EventHandler{
		mailer: mailer,
		logger: logger,
	}
}

func (h *EventHandler) HandleStaffSignedUp(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.StaffSignedUpEvent)
	if !ok {
		h.logger.Error("invalid event type for staff signup handler", "event_type", event.EventType())
		return fmt.Errorf("expected StaffSignedUpEvent, got %T", event)
	}

	return h.send(ctx, event, Message{
		To:      e.Email,
		Subject: "Your account is awaiting approval",
		Body: fmt.Sprintf("Hi %s, your %s account was created. A manager of your hotel must approve it before you can sign in.",
			e.Fullname, e.Role),
	})
}

func (h *EventHandler) HandleStaffApprovalChanged(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.StaffApprovalChangedEvent)
	if !ok {
		h.logger.Error("invalid event type for staff approval handler", "event_type", event.EventType())
		return fmt.Errorf("expected StaffApprovalChangedEvent, got %T", event)
	}

	msg := Message{
		To:      e.Email,
		Subject: "Your account has been approved",
		Body:    "You can now sign in to the hotel dashboard.",
	}
	if !e.IsApproved {
		msg.Subject = "Your account access was revoked"
		msg.Body = "Your access to the hotel dashboard has been revoked. Contact your manager for details."
	}
	return h.send(ctx, event, msg)
}

func (h *EventHandler) HandleBookingCreated(ctx context.Context, event events.Event) error {
	e, ok := event.(*events.BookingCreatedEvent)
	if !ok {
		h.logger.Error("invalid event type for booking handler", "event_type", event.EventType())
		return fmt.Errorf("expected BookingCreatedEvent, got %T", event)
	}

	return h.send(ctx, event, Message{
		To:      e.GuestEmail,
		Subject: "Booking received",
		Body: fmt.Sprintf("Dear %s, we received your booking from %s to %s. Total: %d.",
			e.GuestName, e.CheckIn, e.CheckOut, e.TotalPrice),
	})
}

func (h *EventHandler) send(ctx context.Context, event events.Event, msg Message) error {
	if err := h.mailer.Send(ctx, msg); err != nil {
		h.logger.Error("failed to send notification",
			"error", err,
			"event_type", event.EventType(),
			"event_id", event.EventID())
		return fmt.Errorf("send %s notification: %w", event.EventType(), err)
	}
	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeStaffSignedUp, h.HandleStaffSignedUp)
	eventBus.Subscribe(events.EventTypeStaffApprovalChange, h.HandleStaffApprovalChanged)
	eventBus.Subscribe(events.EventTypeBookingCreated, h.HandleBookingCreated)

	h.logger.Info("notification event handlers registered",
		"handlers", []string{events.EventTypeStaffSignedUp, events.EventTypeStaffApprovalChange, events.EventTypeBookingCreated})
}
