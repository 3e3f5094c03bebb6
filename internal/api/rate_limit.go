package api

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

// RequestRateLimiter is satisfied by *redis_rate.Limiter.
type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimitMiddleware allows allowedPerMin requests per minute for each user on
// the named route. It must run after AuthMiddleware. onLimited may be nil.
func RateLimitMiddleware(rateLimiter RequestRateLimiter, routeName string, allowedPerMin int, onLimited func()) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := getUserIDFromContext(c)
		if err != nil {
			userID = c.ClientIP()
		}

		res, err := rateLimiter.Allow(
			c.Request.Context(),
			"rate:"+routeName+":"+userID,
			redis_rate.PerMinute(allowedPerMin),
		)
		if err != nil {
			log.Errorf("rate limiter for %s: %s", routeName, err)
			abortWithError(c, http.StatusInternalServerError, "rate limit internal error")
			return
		}

		if res.Allowed > 0 {
			c.Next()
			return
		}

		if onLimited != nil {
			onLimited()
		}
		retryAfter := int(math.Ceil(res.RetryAfter.Seconds()))
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		abortWithError(c, http.StatusTooManyRequests, fmt.Sprintf("Too many requests, retry after %d seconds", retryAfter))
	}
}
