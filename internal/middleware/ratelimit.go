package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

// window counts one client's requests since start.
type window struct {
	start time.Time
	count int
}

// RateLimit allows each client IP at most maxRequests per fixed period and
// answers the rest with 429. It wraps only the routes that rasterize images
// (card download and QR), which are the expensive ones.
func RateLimit(maxRequests int, period time.Duration) echo.MiddlewareFunc {
	var (
		mu      sync.Mutex
		clients = make(map[string]*window)
	)

	// Windows idle for two periods are dropped once a minute.
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for now := range ticker.C {
			mu.Lock()
			for ip, w := range clients {
				if now.Sub(w.start) > 2*period {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	allow := func(ip string, now time.Time) bool {
		mu.Lock()
		defer mu.Unlock()
		w, ok := clients[ip]
		if !ok || now.Sub(w.start) > period {
			clients[ip] = &window{start: now, count: 1}
			return true
		}
		w.count++
		return w.count <= maxRequests
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !allow(c.RealIP(), time.Now()) {
				return echo.NewHTTPError(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.")
			}
			return next(c)
		}
	}
}
