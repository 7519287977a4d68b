package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// KeyFunc extrai a chave de contagem de uma requisição.
type KeyFunc func(c *gin.Context) string

// ByClientIP agrupa requisições pelo IP de origem.
func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// ByUserID agrupa pelo usuário autenticado, caindo para o IP quando a
// requisição ainda não passou pela autenticação.
func ByUserID(c *gin.Context) string {
	if userID, exists := c.Get("user_id"); exists {
		if id, ok := userID.(string); ok && id != "" {
			return id
		}
	}
	return c.ClientIP()
}

// RateLimiter conta requisições por chave em uma janela deslizante.
type RateLimiter struct {
	hits   map[string][]time.Time
	mu     sync.Mutex
	limit  int
	window time.Duration
}

func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	rl := &RateLimiter{
		hits:   make(map[string][]time.Time),
		limit:  limit,
		window: window,
	}

	go rl.sweep()

	return rl
}

func (rl *RateLimiter) sweep() {
	ticker := time.NewTicker(time.Minute)
	for range ticker.C {
		cutoff := time.Now().Add(-rl.window)

		rl.mu.Lock()
		for key, hits := range rl.hits {
			valid := pruneHits(hits, cutoff)
			if len(valid) == 0 {
				delete(rl.hits, key)
			} else {
				rl.hits[key] = valid
			}
		}
		rl.mu.Unlock()
	}
}

func (rl *RateLimiter) Allow(key string) bool {
	return rl.AllowAt(key, time.Now())
}

// AllowAt registra uma requisição no instante dado e diz se ela cabe na
// janela. Separado de Allow para os testes controlarem o relógio.
func (rl *RateLimiter) AllowAt(key string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	valid := pruneHits(rl.hits[key], now.Add(-rl.window))

	if len(valid) >= rl.limit {
		rl.hits[key] = valid
		return false
	}

	rl.hits[key] = append(valid, now)
	return true
}

func pruneHits(hits []time.Time, cutoff time.Time) []time.Time {
	var valid []time.Time
	for _, t := range hits {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	return valid
}

func RateLimit(limiter *RateLimiter, key KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(key(c)) {
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error":   "RATE_LIMIT_EXCEEDED",
				"message": "Muitas requisicoes. Tente novamente em alguns minutos.",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}
