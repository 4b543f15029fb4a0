package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"bazaar_back_end/internal/apperr"
)

const (
	loginMaxAttempts = 5
	loginWindow      = 15 * time.Minute
	loginCooldown    = 15 * time.Minute
)

// attemptStore tracks failed logins per email. The Redis implementation keeps
// the counters shared across instances.
type attemptStore interface {
	cooldown(ctx context.Context, email string) (time.Duration, bool)
	recordFailure(ctx context.Context, email string) int64
	startCooldown(ctx context.Context, email string)
	clear(ctx context.Context, email string)
}

type redisAttempts struct {
	rdb *redis.Client
}

func (r redisAttempts) cooldown(ctx context.Context, email string) (time.Duration, bool) {
	key := "login_cooldown:" + email
	if r.rdb.Exists(ctx, key).Val() == 0 {
		return 0, false
	}
	return r.rdb.TTL(ctx, key).Val(), true
}

func (r redisAttempts) recordFailure(ctx context.Context, email string) int64 {
	key := "login_attempts:" + email
	attempts, _ := r.rdb.Incr(ctx, key).Result()
	if attempts == 1 {
		r.rdb.Expire(ctx, key, loginWindow)
	}
	return attempts
}

func (r redisAttempts) startCooldown(ctx context.Context, email string) {
	r.rdb.Set(ctx, "login_cooldown:"+email, 1, loginCooldown)
	r.rdb.Del(ctx, "login_attempts:"+email)
}

func (r redisAttempts) clear(ctx context.Context, email string) {
	r.rdb.Del(ctx, "login_attempts:"+email, "login_cooldown:"+email)
}

// LoginRateLimit throttles login attempts per email. Only failures count: the
// counter moves after the handler answered 401, and a successful login wipes
// both the counter and any cooldown.
func LoginRateLimit(rdb *redis.Client) gin.HandlerFunc {
	if rdb == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return loginRateLimit(redisAttempts{rdb: rdb})
}

func loginRateLimit(attempts attemptStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Peek at the body without consuming it.
		bodyBytes, _ := io.ReadAll(c.Request.Body)
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		var input struct {
			Email string `json:"email"`
		}
		if err := json.Unmarshal(bodyBytes, &input); err != nil || input.Email == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		if ttl, blocked := attempts.cooldown(ctx, input.Email); blocked {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": fmt.Sprintf("Too many failed attempts. Try again in %d minutes", int(ttl.Minutes())+1),
			})
			return
		}

		c.Next()

		switch loginOutcome(c) {
		case http.StatusUnauthorized:
			if attempts.recordFailure(ctx, input.Email) >= loginMaxAttempts {
				attempts.startCooldown(ctx, input.Email)
			}
		case http.StatusOK:
			attempts.clear(ctx, input.Email)
		}
	}
}

// loginOutcome reports the status the request will answer with. When the
// handler attached an error instead of writing, the error formatter sits
// outside this middleware and has not run yet, so the status comes from the
// error itself.
func loginOutcome(c *gin.Context) int {
	if c.Writer.Written() || len(c.Errors) == 0 {
		return c.Writer.Status()
	}
	var ae *apperr.Error
	if errors.As(c.Errors.Last().Err, &ae) {
		return ae.Status()
	}
	return http.StatusInternalServerError
}
