package middlewares

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/reconized/LittleLemon/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// Throttle limits list-endpoint traffic per caller: authenticated requests
// are keyed by user id, anonymous ones by client IP, each with its own rate.
type Throttle struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	anon     rate.Limit
	user     rate.Limit
	burst    int
}

func NewThrottle(anonRPM, userRPM int) *Throttle {
	return &Throttle{
		limiters: make(map[string]*rate.Limiter),
		anon:     rate.Limit(float64(anonRPM) / 60.0),
		user:     rate.Limit(float64(userRPM) / 60.0),
		burst:    5,
	}
}

func (t *Throttle) limiter(key string, limit rate.Limit) *rate.Limiter {
	t.mu.Lock()
	defer t.mu.Unlock()
	if l, ok := t.limiters[key]; ok {
		return l
	}
	l := rate.NewLimiter(limit, t.burst)
	t.limiters[key] = l
	return l
}

func (t *Throttle) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var key string
		limit := t.anon
		if uid := utils.CurrentUserID(c); uid != 0 {
			key = fmt.Sprintf("u:%d", uid)
			limit = t.user
		} else {
			key = "ip:" + c.ClientIP()
		}

		if !t.limiter(key, limit).Allow() {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "request was throttled"})
			c.Abort()
			return
		}
		c.Next()
	}
}
