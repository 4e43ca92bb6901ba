package utils

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/pizza6inch/ProjectNest/internal/auth"
	"github.com/pizza6inch/ProjectNest/internal/types"
)

func CurrentClaims(ctx *gin.Context) (*auth.Claims, error) {
	value, exists := ctx.Get(types.ContextClaimsKey)

	if !exists {
		return nil, fmt.Errorf("User not authenticated")
	}

	claims, ok := value.(*auth.Claims)

	if !ok {
		return nil, fmt.Errorf("Invalid claims type in context")
	}

	return claims, nil
}
