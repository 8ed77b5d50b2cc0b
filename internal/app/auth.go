package app

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vasptech/vaspx-actions/internal/config"
)

const metricsRealm = `Basic realm="vaspx-metrics"`

// metricsAuthMiddleware guards /metrics with Basic Auth when a metrics
// password is configured, and passes through otherwise.
func metricsAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	if !cfg.MetricsAuthEnabled() {
		return func(c *gin.Context) { c.Next() }
	}
	wantUser := []byte(cfg.MetricsUsername)
	wantPass := []byte(cfg.MetricsPassword)

	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		// Both parts are always compared.
		userOK := subtle.ConstantTimeCompare([]byte(user), wantUser) == 1
		passOK := subtle.ConstantTimeCompare([]byte(pass), wantPass) == 1
		if !ok || !userOK || !passOK {
			c.Header("WWW-Authenticate", metricsRealm)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}
