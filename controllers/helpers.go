package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// authScope reads the identity the auth middleware stored on the context.
// clientID is uuid.Nil for admins and for users without a client link.
func authScope(c *gin.Context) (role string, clientID uuid.UUID) {
	if v, ok := c.Get("role"); ok {
		role, _ = v.(string)
	}
	if v, ok := c.Get("client_id"); ok {
		if s, ok := v.(string); ok && s != "" {
			if id, err := uuid.Parse(s); err == nil {
				clientID = id
			}
		}
	}
	return role, clientID
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return uuid.Nil, false
	}
	return id, true
}
