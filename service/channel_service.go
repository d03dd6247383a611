package service

import (
	"context"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"starsbot/models"
)

// channelService implements the ChannelService interface
type channelService struct {
	uowFactory UnitOfWorkFactory
	auth       Authorizer
}

// NewChannelService creates a new gate channel service
func NewChannelService(uowFactory UnitOfWorkFactory, auth Authorizer) ChannelService {
	return &channelService{
		uowFactory: uowFactory,
		auth:       auth,
	}
}

// Add validates link and stores a new gate channel labelled name
func (s *channelService) Add(ctx context.Context, actorID int64, name, link string) (*models.GateChannel, error) {
	if err := requireAdmin(s.auth, actorID); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("channel button name is empty: %w", ErrInvalidInput)
	}

	channelID, err := ParseChannelLink(link)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	channel := &models.GateChannel{
		ChannelID: channelID,
		Name:      name,
		Link:      strings.TrimSpace(link),
	}

	created, err := uow.ChannelRepository().Create(ctx, channel)
	if err != nil {
		return nil, storeError("failed to create gate channel", err)
	}
	if !created {
		return nil, fmt.Errorf("channel %s: %w", channelID, ErrAlreadyExists)
	}

	if err := uow.Commit(); err != nil {
		return nil, storeError("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"channelID": channelID,
		"actorID":   actorID,
	}).Info("Gate channel added")

	return channel, nil
}

// Remove deletes a gate channel
func (s *channelService) Remove(ctx context.Context, actorID int64, channelID string) error {
	if err := requireAdmin(s.auth, actorID); err != nil {
		return err
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	removed, err := uow.ChannelRepository().Delete(ctx, channelID)
	if err != nil {
		return storeError("failed to delete gate channel", err)
	}
	if !removed {
		return fmt.Errorf("channel %s: %w", channelID, ErrNotFound)
	}

	if err := uow.Commit(); err != nil {
		return storeError("failed to commit transaction", err)
	}

	log.WithFields(log.Fields{
		"channelID": channelID,
		"actorID":   actorID,
	}).Info("Gate channel removed")

	return nil
}

// List returns every gate channel
func (s *channelService) List(ctx context.Context) ([]*models.GateChannel, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, storeError("failed to begin transaction", err)
	}
	defer uow.Rollback()

	channels, err := uow.ChannelRepository().GetAll(ctx)
	if err != nil {
		return nil, storeError("failed to list gate channels", err)
	}
	return channels, nil
}
