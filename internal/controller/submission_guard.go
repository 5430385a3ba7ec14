package controller

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/serogonpi/desarrollo-mobile-EAII/pkg/contactapi"
)

// DefaultDedupeWindow is how long an identical payload is refused.
const DefaultDedupeWindow = 5 * time.Minute

// RedisSubmissionGuard marks payload checksums in redis with SETNX.
type RedisSubmissionGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSubmissionGuard constructs a guard. A non-positive ttl uses DefaultDedupeWindow.
func NewRedisSubmissionGuard(client *redis.Client, ttl time.Duration) *RedisSubmissionGuard {
	if ttl <= 0 {
		ttl = DefaultDedupeWindow
	}
	return &RedisSubmissionGuard{client: client, ttl: ttl}
}

// Acquire returns false when the same payload was accepted within the window.
func (g *RedisSubmissionGuard) Acquire(ctx context.Context, payload contactapi.ContactRequest) (bool, error) {
	return g.client.SetNX(ctx, dedupeKey(payload), 1, g.ttl).Result()
}

// Release forgets a payload so a failed send can be retried immediately.
func (g *RedisSubmissionGuard) Release(ctx context.Context, payload contactapi.ContactRequest) error {
	return g.client.Del(ctx, dedupeKey(payload)).Err()
}

func dedupeKey(payload contactapi.ContactRequest) string {
	return fmt.Sprintf("contact:dedupe:%s", computeChecksum(payload.Name, payload.Email, payload.ProjectType, payload.Subject, payload.Message))
}

func computeChecksum(parts ...string) string {
	hasher := sha256.New()
	for _, part := range parts {
		hasher.Write([]byte(strings.TrimSpace(strings.ToLower(part))))
		hasher.Write([]byte("|"))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

func maskEmail(email string) string {
	if email == "" {
		return ""
	}
	local, domain, ok := strings.Cut(email, "@")
	if !ok || local == "" || strings.Contains(domain, "@") {
		return "***"
	}
	runes := []rune(local)
	if len(runes) <= 2 {
		return string(runes[0]) + "***@" + domain
	}
	return string(runes[0]) + "***" + string(runes[len(runes)-1]) + "@" + domain
}
