package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"todoapp/internal/auth"
	"todoapp/internal/domain/errors"
)

const userIDKey = "authUserID"

func RequestID() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		requestID := ctx.GetHeader("X-Request-Id")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		ctx.Set("requestID", requestID)
		ctx.Writer.Header().Set("X-Request-Id", requestID)
		ctx.Next()
	}
}

// CORS пропускает браузерные запросы только с настроенного origin фронтенда.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		origin := ctx.GetHeader("Origin")

		vary := ctx.Writer.Header().Get("Vary")
		if vary == "" {
			ctx.Writer.Header().Set("Vary", "Origin")
		} else if !strings.Contains(vary, "Origin") {
			ctx.Writer.Header().Set("Vary", vary+", Origin")
		}

		if origin != "" && origin == allowedOrigin {
			ctx.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			ctx.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			ctx.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			ctx.Writer.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Id")
		}

		if ctx.Request.Method == http.MethodOptions {
			ctx.AbortWithStatus(http.StatusNoContent)
			return
		}

		ctx.Next()
	}
}

// Auth выполняет цепочку: заголовок Authorization → токен → сессия → сверка с
// пользователем из пути. Сверка идёт до любого обращения к задачам, поэтому 403
// не зависит от существования ресурса.
func Auth(sessions *auth.Validator) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := auth.ExtractBearerToken(ctx.GetHeader("Authorization"))
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		userID, err := sessions.Validate(ctx.Request.Context(), token)
		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		if err := auth.VerifyUserAccess(userID, ctx.Param("userID")); err != nil {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": errors.ErrForbidden.Error()})
			return
		}

		ctx.Set(userIDKey, userID)
		ctx.Next()
	}
}
