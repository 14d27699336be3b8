package admin

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
	"github.com/mamadbah2/livestockcare/internal/repository"
	"github.com/mamadbah2/livestockcare/internal/service/audit"
)

const (
	deliveryTimeout       = 5 * time.Minute
	userNotificationLimit = 20
)

// CreateNotification stores a broadcast and, when messaging is configured,
// delivers it over WhatsApp in the background.
func (s *Service) CreateNotification(ctx context.Context, actor models.Principal, in models.NotificationInput) (*models.Notification, error) {
	if in.TargetRoles == nil {
		in.TargetRoles = []models.Role{}
	}
	if in.TargetRegions == nil {
		in.TargetRegions = []string{}
	}
	if in.Priority == "" {
		in.Priority = "normal"
	}

	n := &models.Notification{
		ID:                uuid.NewString(),
		NotificationInput: in,
		CreatedBy:         actor.ID,
		CreatedAt:         s.now().UTC(),
	}
	if err := s.store.Insert(ctx, repository.CollNotifications, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}

	err := s.recorder.Record(ctx, actor, audit.Entry{
		Action:     models.ActionNotificationSend,
		TargetType: "notification",
		TargetID:   n.ID,
		After:      bson.M{"title": n.Title, "priority": n.Priority},
	})
	if err != nil {
		return nil, err
	}

	if s.messenger != nil {
		s.deliveries.Add(1)
		go func() {
			defer s.deliveries.Done()
			dctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), deliveryTimeout)
			defer cancel()
			sent, err := s.Deliver(dctx, *n)
			if err != nil {
				s.logger.Warn("notification delivery incomplete", zap.String("notification_id", n.ID), zap.Int("sent", sent), zap.Error(err))
				return
			}
			s.logger.Info("notification delivered", zap.String("notification_id", n.ID), zap.Int("sent", sent))
		}()
	}
	return n, nil
}

// Deliver sends a notification to the phones of active users in its target
// roles and reports how many messages went out. Individual failures are
// logged and do not stop the fan-out.
func (s *Service) Deliver(ctx context.Context, n models.Notification) (int, error) {
	if s.messenger == nil {
		return 0, nil
	}

	query := bson.M{"is_active": true, "phone": bson.M{"$ne": ""}}
	if len(n.TargetRoles) > 0 {
		query["role"] = bson.M{"$in": n.TargetRoles}
	}
	users := []models.User{}
	if err := s.store.Find(ctx, repository.CollUsers, query, repository.FindOptions{}, &users); err != nil {
		return 0, fmt.Errorf("find notification recipients: %w", err)
	}

	body := fmt.Sprintf("%s\n%s", n.Title, n.Message)
	sent := make([]bool, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.fanout)
	for i, u := range users {
		g.Go(func() error {
			if err := s.messenger.Send(gctx, u.Phone, body); err != nil {
				s.logger.Warn("notification send failed", zap.String("user_id", u.ID), zap.Error(err))
				return nil
			}
			sent[i] = true
			return nil
		})
	}
	err := g.Wait()

	count := 0
	for _, ok := range sent {
		if ok {
			count++
		}
	}
	if err == nil {
		err = ctx.Err()
	}
	return count, err
}

// Notifications lists every notification for the admin console.
func (s *Service) Notifications(ctx context.Context) ([]models.Notification, error) {
	out := []models.Notification{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "created_at", Value: -1}}, Limit: 100}
	if err := s.store.Find(ctx, repository.CollNotifications, bson.M{}, opts, &out); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}

// NotificationsFor lists the notifications addressed to the caller's role.
func (s *Service) NotificationsFor(ctx context.Context, p models.Principal) ([]models.Notification, error) {
	query := bson.M{"$or": bson.A{
		bson.M{"target_roles": bson.M{"$size": 0}},
		bson.M{"target_roles": p.Role},
	}}
	out := []models.Notification{}
	opts := repository.FindOptions{Sort: bson.D{{Key: "created_at", Value: -1}}, Limit: userNotificationLimit}
	if err := s.store.Find(ctx, repository.CollNotifications, query, opts, &out); err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return out, nil
}
