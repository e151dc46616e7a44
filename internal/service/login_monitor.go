package service

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// LoginMonitor is the intrusion-detection signal: every login attempt
// is logged structurally, and consecutive failures per username are
// counted in Redis so operators can watch for brute forcing. The
// counters are advisory; a Redis outage never blocks a login.
type LoginMonitor struct {
	client *redis.Client
	logger *zap.Logger
}

const failureWindow = 24 * time.Hour

// NewLoginMonitor builds a monitor. A nil client disables counting but
// keeps the structured log.
func NewLoginMonitor(client *redis.Client, logger *zap.Logger) *LoginMonitor {
	return &LoginMonitor{client: client, logger: logger}
}

// RecordSuccess logs a successful attempt and clears the failure count.
func (m *LoginMonitor) RecordSuccess(ctx context.Context, username, clientIP string) {
	m.logger.Info("login attempt",
		zap.String("username", username),
		zap.String("client_ip", clientIP),
		zap.String("result", "success"))

	if m.client == nil {
		return
	}
	if err := m.client.Del(ctx, failureKey(username)).Err(); err != nil {
		m.logger.Warn("login monitor reset failed", zap.Error(err))
	}
}

// RecordFailure logs a failed attempt and bumps the failure count.
func (m *LoginMonitor) RecordFailure(ctx context.Context, username, clientIP, reason string) {
	m.logger.Warn("login attempt",
		zap.String("username", username),
		zap.String("client_ip", clientIP),
		zap.String("result", "failure"),
		zap.String("reason", reason))

	if m.client == nil {
		return
	}
	key := failureKey(username)
	count, err := m.client.Incr(ctx, key).Result()
	if err != nil {
		m.logger.Warn("login monitor increment failed", zap.Error(err))
		return
	}
	if count == 1 {
		m.client.Expire(ctx, key, failureWindow)
	}
	if count >= 5 {
		m.logger.Warn("repeated login failures",
			zap.String("username", username),
			zap.String("client_ip", clientIP),
			zap.Int64("count", count))
	}
}

func failureKey(username string) string {
	return "login_failures:" + username
}
