package service

import (
	"errors"
	"fmt"
)

// ErrUserNotFound is matched by every UserNotFoundError.
var ErrUserNotFound = errors.New("user not found")

// UserNotFoundError carries the id of the missing user.
type UserNotFoundError struct {
	ID uint
}

func (e *UserNotFoundError) Error() string {
	return fmt.Sprintf("User with ID %d not found.", e.ID)
}

// Is makes errors.Is(err, ErrUserNotFound) hold.
func (e *UserNotFoundError) Is(target error) bool {
	return target == ErrUserNotFound
}
