package conversation

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNoDialog means the user has no open dialog
	ErrNoDialog = errors.New("no open dialog")

	// ErrInvalidTransition means the requested step does not follow the current one
	ErrInvalidTransition = errors.New("invalid dialog transition")
)

// entry tags may start a dialog; next maps each step to the step after it
var (
	entry = map[Tag]bool{
		TagWithdrawUsername: true,
		TagChannelLink:      true,
		TagBroadcastText:    true,
	}
	next = map[Tag]Tag{
		TagWithdrawUsername: TagWithdrawAmount,
		TagChannelLink:      TagChannelName,
	}
)

// Machine drives per-user dialogs over a Store
type Machine struct {
	store Store
}

// NewMachine creates a dialog state machine backed by store
func NewMachine(store Store) *Machine {
	return &Machine{store: store}
}

// Begin opens a dialog at tag. An already open dialog is cancelled first and
// its tag returned, TagNone otherwise.
func (m *Machine) Begin(ctx context.Context, userID int64, tag Tag) (Tag, error) {
	if !entry[tag] {
		return TagNone, fmt.Errorf("%s cannot start a dialog: %w", tag, ErrInvalidTransition)
	}

	cancelled, err := m.CancelCurrent(ctx, userID)
	if err != nil {
		return TagNone, err
	}

	session := &Session{
		UserID: userID,
		Tag:    tag,
		Data:   map[string]string{},
	}
	if err := m.store.Put(ctx, session); err != nil {
		return cancelled, fmt.Errorf("failed to open dialog: %w", err)
	}
	return cancelled, nil
}

// CancelCurrent closes any open dialog and returns the tag it was at
func (m *Machine) CancelCurrent(ctx context.Context, userID int64) (Tag, error) {
	current, err := m.Current(ctx, userID)
	if err != nil {
		return TagNone, err
	}
	if current == nil {
		return TagNone, nil
	}
	if err := m.store.Delete(ctx, userID); err != nil {
		return TagNone, fmt.Errorf("failed to cancel dialog: %w", err)
	}
	return current.Tag, nil
}

// Current returns the open session, nil when none
func (m *Machine) Current(ctx context.Context, userID int64) (*Session, error) {
	session, err := m.store.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load dialog: %w", err)
	}
	return session, nil
}

// Advance records value under key and moves the dialog to its next step
func (m *Machine) Advance(ctx context.Context, userID int64, key, value string) (*Session, error) {
	session, err := m.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoDialog
	}

	to, ok := next[session.Tag]
	if !ok {
		return nil, fmt.Errorf("%s is a final step: %w", session.Tag, ErrInvalidTransition)
	}

	session.Data[key] = value
	session.Tag = to
	if err := m.store.Put(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to advance dialog: %w", err)
	}
	return session, nil
}

// Finish closes the dialog after its final step and returns the collected session
func (m *Machine) Finish(ctx context.Context, userID int64) (*Session, error) {
	session, err := m.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrNoDialog
	}
	if err := m.store.Delete(ctx, userID); err != nil {
		return nil, fmt.Errorf("failed to finish dialog: %w", err)
	}
	return session, nil
}
