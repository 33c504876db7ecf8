package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// A healthy random source should essentially never collide; repeated
// collisions mean something is wrong with it.
const tokenCollisionWarnThreshold = 3

type tokenExistsFunc func(ctx context.Context, token string) (bool, error)

// issueToken mints a candidate invitation token and retries until no
// persisted invitation, in any status, already holds it. The loop is
// unbounded on purpose: the pre-check is an optimization and the unique
// index on invitations.token is the real guarantee, so capping retries
// could only introduce spurious failures.
func issueToken(ctx context.Context, exists tokenExistsFunc) (string, error) {
	for attempt := 0; ; attempt++ {
		token := uuid.NewString()
		taken, err := exists(ctx, token)
		if err != nil {
			return "", err
		}
		if !taken {
			return token, nil
		}
		if attempt+1 >= tokenCollisionWarnThreshold {
			logrus.WithField("collisions", attempt+1).
				Warn("invitation token generation keeps colliding; random source may be broken")
		}
	}
}
