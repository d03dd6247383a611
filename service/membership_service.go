package service

import (
	"context"

	log "github.com/sirupsen/logrus"
)

// Membership statuses that mean the user is not in the channel
const (
	MemberStatusLeft   = "left"
	MemberStatusKicked = "kicked"
)

// membershipService implements the MembershipService interface
type membershipService struct {
	uowFactory UnitOfWorkFactory
	checker    MembershipChecker
}

// NewMembershipService creates a new membership service
func NewMembershipService(uowFactory UnitOfWorkFactory, checker MembershipChecker) MembershipService {
	return &membershipService{
		uowFactory: uowFactory,
		checker:    checker,
	}
}

// IsMember reports whether the user has joined every gate channel.
// No channels means no gating. Any lookup failure counts as not joined.
func (s *membershipService) IsMember(ctx context.Context, telegramID int64) (bool, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	channels, err := uow.ChannelRepository().GetAll(ctx)
	if err != nil {
		return false, storeError("failed to list gate channels", err)
	}

	for _, ch := range channels {
		status, err := s.checker.MemberStatus(ctx, ch.ChannelID, telegramID)
		if err != nil {
			log.WithFields(log.Fields{
				"telegramID": telegramID,
				"channelID":  ch.ChannelID,
				"error":      err,
			}).Debug("Membership lookup failed")
			return false, nil
		}
		if status == MemberStatusLeft || status == MemberStatusKicked {
			return false, nil
		}
	}

	return true, nil
}
