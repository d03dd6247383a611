package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"starsbot/models"
)

// broadcastService implements the BroadcastService interface
type broadcastService struct {
	uowFactory UnitOfWorkFactory
	sender     MessageSender
	auth       Authorizer
	limiter    *rate.Limiter
}

// NewBroadcastService creates a broadcast service sending at most perSecond messages per second.
// perSecond <= 0 disables pacing.
func NewBroadcastService(uowFactory UnitOfWorkFactory, sender MessageSender, auth Authorizer, perSecond int) BroadcastService {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &broadcastService{
		uowFactory: uowFactory,
		sender:     sender,
		auth:       auth,
		limiter:    rate.NewLimiter(limit, 1),
	}
}

// Broadcast sends text to every user exactly once. A failed recipient is
// counted and skipped; it never stops delivery to the rest.
func (s *broadcastService) Broadcast(ctx context.Context, actorID int64, text string) (*models.BroadcastResult, error) {
	if err := requireAdmin(s.auth, actorID); err != nil {
		return nil, err
	}
	if text == "" {
		return nil, fmt.Errorf("broadcast text is empty: %w", ErrInvalidInput)
	}

	ids, err := s.recipients(ctx)
	if err != nil {
		return nil, err
	}

	result := &models.BroadcastResult{Total: len(ids)}
	for i, id := range ids {
		if err := s.limiter.Wait(ctx); err != nil {
			result.Failed += len(ids) - i
			log.WithFields(log.Fields{
				"sent":    result.Sent,
				"skipped": len(ids) - i,
			}).Warn("Broadcast interrupted")
			return result, fmt.Errorf("broadcast interrupted: %w", err)
		}

		if err := s.sender.SendText(ctx, id, text); err != nil {
			result.Failed++
			log.WithFields(log.Fields{
				"telegramID": id,
				"error":      err,
			}).Warn("Broadcast delivery failed")
			continue
		}
		result.Sent++
	}

	log.WithFields(log.Fields{
		"total":  result.Total,
		"sent":   result.Sent,
		"failed": result.Failed,
	}).Info("Broadcast finished")

	return result, nil
}

func (s *broadcastService) recipients(ctx context.Context) ([]int64, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	ids, err := uow.UserRepository().GetAllIDs(ctx)
	if err != nil {
		return nil, storeError("failed to list users", err)
	}
	return ids, nil
}
