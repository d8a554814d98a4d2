package notification

import (
	"context"
	"encoding/json"
	"time"

	"go-hrms/internal/events"
	"go-hrms/internal/messaging/kafka"
	"go-hrms/internal/shared/contextutil"
	"go-hrms/internal/user"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gateway is the fan-out boundary the core calls after committing a
// domain change. Every method is fire-and-forget: failures are logged
// and swallowed, never surfaced to the caller. A leave stays approved
// even when no notification goes out.
//
//go:generate mockgen -source=notification_gateway.go -destination=mock/notification_gateway_mock.go -package=mock
type Gateway interface {
	NotifyUser(ctx context.Context, userID, event string, payload any)
	NotifyRole(ctx context.Context, role, event string, payload any)
}

type gateway struct {
	users  user.Repository
	repo   Repository
	outbox kafka.OutboxRepository
	logger *zap.Logger
}

func NewGateway(users user.Repository, repo Repository, outbox kafka.OutboxRepository, logger ...*zap.Logger) Gateway {
	l := zap.L().Named("notification.gateway")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.gateway")
	}
	return &gateway{users: users, repo: repo, outbox: outbox, logger: l}
}

var eventTitles = map[string]string{
	events.EventLeaveCreated:        "New leave request",
	events.EventLeaveDecided:        "Your leave request was decided",
	events.EventCorrectionRequested: "New attendance correction request",
	events.EventCorrectionDecided:   "Your attendance correction was decided",
	events.EventCompOffGranted:      "Comp-off granted",
}

func (g *gateway) NotifyUser(ctx context.Context, userID, event string, payload any) {
	uid, err := uuid.Parse(userID)
	if err != nil {
		g.logger.Warn("notify user skipped, bad user id", zap.String("user_id", userID), zap.String("event", event))
		return
	}
	g.dispatch(ctx, []uuid.UUID{uid}, "", event, payload)
}

func (g *gateway) NotifyRole(ctx context.Context, role, event string, payload any) {
	ids, err := g.users.ActiveIDsByRole(ctx, role)
	if err != nil {
		g.logger.Error("notify role lookup failed", zap.String("role", role), zap.String("event", event), zap.Error(err))
		return
	}
	g.dispatch(ctx, ids, role, event, payload)
}

func (g *gateway) dispatch(ctx context.Context, userIDs []uuid.UUID, role, event string, payload any) {
	if len(userIDs) == 0 {
		return
	}

	title := eventTitles[event]
	if title == "" {
		title = event
	}
	body, err := json.Marshal(payload)
	if err != nil {
		g.logger.Error("notification payload marshal failed", zap.String("event", event), zap.Error(err))
		return
	}

	rows := make([]Notification, 0, len(userIDs))
	for _, id := range userIDs {
		rows = append(rows, Notification{
			ID:     uuid.New(),
			UserID: id,
			Event:  event,
			Title:  title,
			Body:   string(body),
		})
	}
	if err := g.repo.CreateBatch(ctx, rows); err != nil {
		g.logger.Error("persist notifications failed", zap.String("event", event), zap.Error(err))
		// fall through: still try to reach connected clients
	}

	dispatch := events.NotificationDispatchEvent{
		EventType:  event,
		Role:       role,
		Title:      title,
		Body:       string(body),
		Payload:    payload,
		OccurredAt: time.Now().UTC(),
	}
	if len(userIDs) == 1 && role == "" {
		dispatch.UserID = userIDs[0].String()
	}
	envelope, err := json.Marshal(dispatch)
	if err != nil {
		g.logger.Error("notification event marshal failed", zap.String("event", event), zap.Error(err))
		return
	}

	outboxEvent := kafka.OutboxEvent{
		ID:            uuid.New().String(),
		RequestID:     contextutil.GetRequestID(ctx),
		AggregateType: "notification",
		AggregateID:   userIDs[0].String(),
		EventType:     event,
		Topic:         events.NotificationDispatchTopic,
		Payload:       envelope,
		Status:        kafka.OutboxStatusPending,
	}
	if err := g.outbox.Create(ctx, outboxEvent); err != nil {
		g.logger.Error("enqueue notification event failed", zap.String("event", event), zap.Error(err))
		return
	}

	g.logger.Debug("notification dispatched",
		zap.String("event", event),
		zap.Int("recipients", len(userIDs)),
	)
}
