package middleware

import (
	"net/http"
	"strings"

	"github.com/developia-II/vendor-lifecycle/utils"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Context keys set by AuthMiddleware.
const (
	ContextUserID  = "userId"
	ContextRole    = "role"
	ContextActorID = "actorId"
	ContextIsAdmin = "isAdmin"
)

func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("Authorization header is required"))
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("Authorization header must be Bearer token"))
			return
		}

		claims, err := utils.VerifyToken(parts[1])
		if err != nil {
			// 401 lets the frontend trigger a refresh
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse(err.Error()))
			return
		}

		actorID, err := primitive.ObjectIDFromHex(claims.UserID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("invalid user id in token"))
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextRole, claims.Role)
		c.Set(ContextActorID, actorID)
		c.Set(ContextIsAdmin, strings.EqualFold(claims.Role, utils.RoleAdmin))
		c.Next()
	}
}

func RoleMiddleware(allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString(ContextRole)
		if role == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, utils.ErrorResponse("Role not found in context"))
			return
		}

		for _, r := range allowedRoles {
			if strings.EqualFold(role, r) {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse("You do not have permission to access this resource"))
	}
}

// ActorID returns the authenticated user's id. It is only valid behind
// AuthMiddleware.
func ActorID(c *gin.Context) primitive.ObjectID {
	id, _ := c.Get(ContextActorID)
	actorID, _ := id.(primitive.ObjectID)
	return actorID
}

func IsAdmin(c *gin.Context) bool {
	return c.GetBool(ContextIsAdmin)
}
