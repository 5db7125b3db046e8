package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// publicPaths lists URL paths that bypass authentication for every method.
// These are infrastructure endpoints (health checks) and the WebSocket
// upgrade, which carries no Authorization header from browsers.
var publicPaths = map[string]bool{
	"/health":    true,
	"/health/db": true,
	"/ws":        true,
}

// publicCreates lists paths where creation is open to unauthenticated
// callers so the public site can submit leads. Reads and management on the
// same paths stay authenticated.
var publicCreates = map[string]bool{
	"/api/v1/demo-requests":     true,
	"/api/v1/feature-interests": true,
}

// AuthSkipper reports whether the request should skip authentication. Pass
// it to JWTMiddleware so public endpoints stay reachable without a bearer
// token.
func AuthSkipper(c echo.Context) bool {
	path := c.Request().URL.Path
	if publicPaths[path] {
		return true
	}
	return c.Request().Method == http.MethodPost && publicCreates[path]
}

// IsPublicPath reports whether the given path bypasses auth for every
// method.
func IsPublicPath(path string) bool {
	return publicPaths[path]
}
