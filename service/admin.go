package service

import "fmt"

// adminAuthorizer allows exactly one configured administrator
type adminAuthorizer struct {
	adminID int64
}

// NewAdminAuthorizer creates an authorizer for a single admin identity
func NewAdminAuthorizer(adminID int64) Authorizer {
	return &adminAuthorizer{adminID: adminID}
}

func (a *adminAuthorizer) IsAdmin(telegramID int64) bool {
	return a.adminID != 0 && a.adminID == telegramID
}

func requireAdmin(auth Authorizer, actorID int64) error {
	if !auth.IsAdmin(actorID) {
		return fmt.Errorf("user %d: %w", actorID, ErrUnauthorized)
	}
	return nil
}
