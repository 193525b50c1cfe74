package handlers

import (
	"net/http"
	"strings"
	"time"

	"blogapi/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	currentUserKey  = "currentUser"
	requestIDHeader = "X-Request-ID"
)

// abortUnauthorized writes a 401 with the bearer challenge header so clients
// know to retry with a (new) token.
func abortUnauthorized(c *gin.Context, msg string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
}

// bearerAuthMiddleware resolves the Authorization header to the acting user.
// Every failure mode (missing header, bad scheme, invalid/expired token,
// unknown subject) is a 401; the request never reaches storage mutations
// without a resolved principal.
func (h *Handler) bearerAuthMiddleware(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if header == "" {
		abortUnauthorized(c, "missing Authorization header")
		return
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		abortUnauthorized(c, "invalid Authorization header format")
		return
	}

	user, err := h.services.ResolveUser(c.Request.Context(), parts[1])
	if err != nil {
		abortUnauthorized(c, "could not validate credentials")
		return
	}

	c.Set(currentUserKey, user)
	c.Next()
}

// currentUser returns the principal stored by bearerAuthMiddleware.
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil
	}
	u, _ := v.(*models.User)
	return u
}

// requestIDMiddleware tags each request with a uuid and logs the outcome.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	reqID := c.GetHeader(requestIDHeader)
	if reqID == "" {
		reqID = uuid.NewString()
	}
	c.Header(requestIDHeader, reqID)

	start := time.Now()
	c.Next()

	if h.log != nil {
		h.log.Infow("http_request",
			"request_id", reqID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
