// internal/pkg/guard/factory.go
package guard

import (
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Factory builds per-session guards over a shared Redis client. Guard
// values are cheap; every request constructs one scoped to its session so
// two users can never see each other's flags.
type Factory struct {
	client   *redis.Client
	ttl      time.Duration
	cooldown time.Duration
	debounce time.Duration
	logger   *zap.Logger
}

func NewFactory(client *redis.Client, ttl, cooldown, debounce time.Duration, logger *zap.Logger) *Factory {
	return &Factory{
		client:   client,
		ttl:      ttl,
		cooldown: cooldown,
		debounce: debounce,
		logger:   logger,
	}
}

// ForSession returns a Guard scoped to sessionID.
func (f *Factory) ForSession(sessionID string) *Guard {
	return New(NewRedisStore(f.client, sessionID, f.ttl), f.logger)
}

// ReloadPolicyForSession returns the reload policy over the session's
// guard flags.
func (f *Factory) ReloadPolicyForSession(sessionID string) *ReloadPolicy {
	return NewReloadPolicy(f.ForSession(sessionID), f.cooldown, f.debounce)
}
