package service

import (
	"time"

	"github.com/kevinclancy/kboard/shared/domain"
	internal_errors "github.com/kevinclancy/kboard/shared/errors"
)

// Clock stamps writes. Tests pass a fixed one.
type Clock func() time.Time

func UTCClock() time.Time {
	return time.Now().UTC()
}

// canWrite rejects suspended accounts. Reads stay open to them.
func canWrite(user domain.User) error {
	if user.IsBanned {
		return internal_errors.Forbidden("Account suspended")
	}
	return nil
}
