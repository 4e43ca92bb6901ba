package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pizza6inch/ProjectNest/internal/auth"
	"github.com/pizza6inch/ProjectNest/internal/types"
)

// AuthMiddleware validates the Authorization header and stores the verified
// claims in the request context. The header may carry a scheme prefix
// ("Bearer <token>") or the bare token.
func AuthMiddleware(tokens *auth.Service) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		if authHeader == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			return
		}

		tokenString := authHeader

		if idx := strings.Index(authHeader, " "); idx >= 0 {
			tokenString = authHeader[idx+1:]
		}

		claims, err := tokens.Validate(tokenString)

		if err != nil {
			switch {
			case errors.Is(err, auth.ErrTokenExpired):
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			case errors.Is(err, auth.ErrIncompleteClaims):
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			default:
				ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		ctx.Set(types.ContextClaimsKey, claims)
		ctx.Next()
	}
}
