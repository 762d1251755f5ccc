package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

const csrfCookie = "csrf_token"

// IssueCSRFToken genera el token de doble cookie y lo devuelve también en
// el cuerpo para clientes que no leen cookies.
func IssueCSRFToken(c *gin.Context) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}
	token := hex.EncodeToString(buf)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(csrfCookie, token, 3600, "/", "", false, false)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CSRFMiddleware exige que las mutaciones públicas traigan el header
// X-CSRF-Token igual a la cookie emitida por /api/csrf. Los GET pasan
// libres.
func CSRFMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		cookie, err := c.Cookie(csrfCookie)
		header := c.GetHeader("X-CSRF-Token")

		if err != nil || cookie == "" || header == "" ||
			subtle.ConstantTimeCompare([]byte(cookie), []byte(header)) != 1 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "csrf_token_invalid"})
			return
		}

		c.Next()
	}
}
