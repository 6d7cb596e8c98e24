package worker

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/sla-engine/internal/events"
	"github.com/spec-kit/sla-engine/internal/service"
)

const notificationQueueSize = 256

// NotificationWorker moves committed domain events from the dispatcher to the
// notification service on a background goroutine, so outbound delivery never
// adds latency to the request path. A full queue drops the event instead of
// blocking request handling; notifications are best-effort.
type NotificationWorker struct {
	queue  chan events.Event
	svc    *service.NotificationService
	logger *zap.Logger
}

// StartNotificationWorker subscribes the worker to every notification-relevant
// event type and starts the drain loop. The loop stops when ctx is cancelled.
func StartNotificationWorker(ctx context.Context, dispatcher events.Dispatcher, svc *service.NotificationService, logger *zap.Logger) *NotificationWorker {
	if dispatcher == nil || svc == nil {
		return nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	w := &NotificationWorker{
		queue:  make(chan events.Event, notificationQueueSize),
		svc:    svc,
		logger: logger,
	}
	for _, eventType := range []events.EventType{
		events.EventTicketCreated,
		events.EventSlaDeadlinesSet,
		events.EventSlaSkipped,
		events.EventTimeLogged,
	} {
		dispatcher.Subscribe(eventType, w.enqueue)
	}

	go w.run(ctx)
	return w
}

func (w *NotificationWorker) enqueue(_ context.Context, event events.Event) error {
	select {
	case w.queue <- event:
	default:
		w.logger.Warn("notification queue full, dropping event",
			zap.String("event_type", string(event.Type)),
			zap.String("ticket_id", event.TicketID))
	}
	return nil
}

func (w *NotificationWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case event := <-w.queue:
			if err := w.svc.Handle(ctx, event); err != nil {
				w.logger.Warn("notification handling failed",
					zap.String("event_type", string(event.Type)),
					zap.Error(err))
			}
		}
	}
}
