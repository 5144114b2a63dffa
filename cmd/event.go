package cmd

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/frahmantamala/hotel-pms/internal/core/events"
	"github.com/frahmantamala/hotel-pms/internal/notification"
	"github.com/frahmantamala/hotel-pms/pkg/logger"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Event bus commands",
}

var publishEventCmd = &cobra.Command{
	Use:   "publish [event-type]",
	Short: "Publish a sample event to the notification handlers",
	Long:  `Publish a sample event and print what the notification subscriber would send.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return publishSampleEvent(args[0])
	},
}

var eventEmail string

func sampleEvent(eventType string) (events.Event, error) {
	id := uuid.NewString()
	hotelID := uuid.NewString()
	switch eventType {
	case events.EventTypeStaffSignedUp:
		return events.NewStaffSignedUpEvent(id, hotelID, eventEmail, "Sample Staff", "staff"), nil
	case events.EventTypeStaffApprovalChange:
		return events.NewStaffApprovalChangedEvent(id, hotelID, eventEmail, true, uuid.NewString()), nil
	case events.EventTypeBookingCreated:
		return events.NewBookingCreatedEvent(id, hotelID, uuid.NewString(), "Sample Guest", eventEmail,
			"2025-01-20", "2025-01-22", 100000), nil
	}
	return nil, fmt.Errorf("unknown event type %q (want %s, %s or %s)", eventType,
		events.EventTypeStaffSignedUp, events.EventTypeStaffApprovalChange, events.EventTypeBookingCreated)
}

func publishSampleEvent(eventType string) error {
	lg := logger.LoggerWrapper()

	event, err := sampleEvent(eventType)
	if err != nil {
		return err
	}

	bus := events.NewEventBus(lg)
	notification.NewEventHandler(notification.NewLogMailer(lg), lg).RegisterEventHandlers(bus)

	lg.Info("publishing sample event", "event_type", eventType, "event_id", event.EventID())
	return bus.PublishSync(context.Background(), event)
}

func init() {
	publishEventCmd.Flags().StringVar(&eventEmail, "email", "someone@example.com", "recipient used in the sample event")

	eventCmd.AddCommand(publishEventCmd)
	rootCmd.AddCommand(eventCmd)
}
