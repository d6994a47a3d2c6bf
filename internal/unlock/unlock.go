package unlock

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Window is how long an unlock stays valid.
const Window = 7 * 24 * time.Hour

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ErrInvalidEmail is returned by Record for empty or malformed addresses.
var ErrInvalidEmail = errors.New("unlock: invalid email")

// State records who unlocked the gated resources and when.
type State struct {
	Email      string    `json:"email"`
	UnlockedAt time.Time `json:"unlocked_at"`
}

// IsValid reports whether state was recorded less than Window before now.
func IsValid(state State, now time.Time) bool {
	if state.Email == "" || state.UnlockedAt.IsZero() {
		return false
	}
	return now.Sub(state.UnlockedAt) < Window
}

// Store persists a single State.
type Store interface {
	Load(ctx context.Context) (State, bool, error)
	Save(ctx context.Context, state State) error
	Clear(ctx context.Context) error
}

// Check loads the stored state and reports whether it is still valid. A
// complete but expired state is cleared.
func Check(ctx context.Context, store Store, now time.Time) (State, bool, error) {
	state, ok, err := store.Load(ctx)
	if err != nil || !ok {
		return State{}, false, err
	}
	if IsValid(state, now) {
		return state, true, nil
	}
	if state.Email != "" && !state.UnlockedAt.IsZero() {
		if err := store.Clear(ctx); err != nil {
			return State{}, false, err
		}
	}
	return State{}, false, nil
}

// Record validates email and stores a fresh unlock at now.
func Record(ctx context.Context, store Store, email string, now time.Time) (State, error) {
	email = strings.TrimSpace(email)
	err := validation.Validate(email,
		validation.Required.ErrorObject(validation.NewError("folio.unlock.email_required", "email is required")),
		validation.Match(emailPattern).ErrorObject(validation.NewError("folio.unlock.email_invalid", "email is not valid")),
	)
	if err != nil {
		return State{}, errors.Join(ErrInvalidEmail, err)
	}

	state := State{Email: email, UnlockedAt: now}
	if err := store.Save(ctx, state); err != nil {
		return State{}, err
	}
	return state, nil
}
