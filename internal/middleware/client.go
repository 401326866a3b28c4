package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/unicatalog/internal/response"
	"github.com/stemsi/unicatalog/internal/service"
)

const (
	// ClientCookieName holds the signed client token.
	ClientCookieName = "catalog_client"
	// ContextKeyClientID is the gin context key for the resolved client id.
	ContextKeyClientID = "client_id"
)

// ClientIdentity resolves the browser's client id from its cookie, issuing a
// fresh one when the cookie is missing or fails verification. Downstream
// handlers scope the comparison set by this id.
func ClientIdentity(clients *service.ClientService, secure bool, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "client_identity").Logger()

	return func(c *gin.Context) {
		if token, err := c.Cookie(ClientCookieName); err == nil && token != "" {
			if clientID, err := clients.Validate(token); err == nil {
				c.Set(ContextKeyClientID, clientID)
				c.Next()
				return
			}
			log.Debug().Str("request_id", response.RequestID(c)).Msg("Client cookie rejected, issuing a new one")
		}

		clientID, token, err := clients.Issue()
		if err != nil {
			log.Error().Err(err).Msg("Issue client token")
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(ClientCookieName, token, int(clients.TTL().Seconds()), "/", "", secure, true)
		c.Set(ContextKeyClientID, clientID)
		c.Next()
	}
}

// GetClientID returns the client id set by ClientIdentity.
func GetClientID(c *gin.Context) string {
	return c.GetString(ContextKeyClientID)
}
