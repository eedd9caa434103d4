package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"handcrafted_gifts/pkg"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	bearerPrefix       = "Bearer "
	adminTokenQueryKey = "token"
)

var (
	errUnauthorized  = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid admin token", http.StatusUnauthorized)
	errAdminDisabled = pkg.NewDomainErrorSimple("ADMIN_DISABLED", "Admin API is not configured", http.StatusServiceUnavailable)
)

// AdminAuth guards the admin routes with a shared bearer token. EventSource
// cannot set headers, so the token is also accepted as ?token= on GET requests.
// An empty token disables the admin API.
func AdminAuth(token string) gin.HandlerFunc {
	expected := []byte(token)
	return func(c *gin.Context) {
		if len(expected) == 0 {
			c.AbortWithStatusJSON(errAdminDisabled.HTTPStatus, errAdminDisabled.ToHTTPError())
			return
		}

		presented := ""
		if h := c.GetHeader("Authorization"); strings.HasPrefix(h, bearerPrefix) {
			presented = strings.TrimSpace(strings.TrimPrefix(h, bearerPrefix))
		} else if c.Request.Method == http.MethodGet {
			presented = c.Query(adminTokenQueryKey)
		}

		if subtle.ConstantTimeCompare([]byte(presented), expected) != 1 {
			log.Warn().Str("path", c.FullPath()).Str("remote", c.ClientIP()).Msg("[http][auth] admin token rejected")
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}
		c.Next()
	}
}
