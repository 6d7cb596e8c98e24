package worker

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spec-kit/sla-engine/internal/config"
	"github.com/spec-kit/sla-engine/internal/events"
	"github.com/spec-kit/sla-engine/internal/service"
)

func TestNotificationWorkerDeliversEvents(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := service.NewNotificationService(zap.New(core), config.NotificationConfig{})
	dispatcher := events.NewDispatcher(nil, "", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := StartNotificationWorker(ctx, dispatcher, svc, zap.NewNop())
	require.NotNil(t, w)

	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID:       "evt-1",
		Type:     events.EventTicketCreated,
		TicketID: "ticket-1",
	}))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("TicketCreated").Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestNotificationWorkerSkippedEventWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	svc := service.NewNotificationService(zap.New(core), config.NotificationConfig{})
	dispatcher := events.NewDispatcher(nil, "", zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NotNil(t, StartNotificationWorker(ctx, dispatcher, svc, zap.NewNop()))
	require.NoError(t, dispatcher.Publish(ctx, events.Event{
		ID:       "evt-2",
		Type:     events.EventSlaSkipped,
		TicketID: "ticket-2",
	}))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("SlaSkipped").Len() == 1
	}, time.Second, 10*time.Millisecond)
}

func TestStartNotificationWorkerMissingDependencies(t *testing.T) {
	assert.Nil(t, StartNotificationWorker(context.Background(), nil, nil, nil))
}
