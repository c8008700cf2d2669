// Package throttle holds the short-lived booking-attempt marker. It lives in
// Redis so every instance of the service sees the same cooldown.
package throttle

import (
	"context"
	"fmt"
	"time"

	"booking/entities"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultCooldown = 5 * time.Minute

type Attempts struct {
	redis    *redis.Client
	cooldown time.Duration
}

func NewAttempts(redisClient *redis.Client, cooldown time.Duration) *Attempts {
	if redisClient == nil {
		panic("redis client is nil")
	}
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	return &Attempts{
		redis:    redisClient,
		cooldown: cooldown,
	}
}

// Touch marks a booking attempt for the (user, ticket) pair. The marker is
// set before the duplicate and capacity checks run, so repeated attempts are
// throttled whatever the first attempt's outcome. Returns ErrTooManyAttempts
// when a marker is already present.
func (a *Attempts) Touch(ctx context.Context, userID, ticketID uuid.UUID) error {
	key := attemptKey(userID, ticketID)

	set, err := a.redis.SetNX(ctx, key, time.Now().Unix(), a.cooldown).Result()
	if err != nil {
		return fmt.Errorf("could not set booking attempt marker: %w", err)
	}
	if !set {
		return entities.ErrTooManyAttempts
	}

	return nil
}

func attemptKey(userID, ticketID uuid.UUID) string {
	return fmt.Sprintf("booking_attempt:%s:%s", userID, ticketID)
}
