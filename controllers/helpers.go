package controllers

import (
	"breakage-exchange-api/services"

	"github.com/gin-gonic/gin"
)

// currentActor builds the policy actor from the auth middleware context.
func currentActor(c *gin.Context) services.Actor {
	userID, _ := c.Get("userID")
	roleID, _ := c.Get("roleID")

	actor := services.Actor{}
	if id, ok := userID.(int); ok {
		actor.UserID = id
	}
	if id, ok := roleID.(int); ok {
		actor.RoleID = id
	}
	return actor
}
