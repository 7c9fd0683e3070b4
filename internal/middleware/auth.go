package middleware

import (
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Identity headers populated from verified token claims. Handlers read
// these instead of parsing the token again.
const (
	HeaderEmployeeID = "X-Employee-ID"
	HeaderRole       = "X-Role"
)

// JWTAuth verifies the bearer token and stamps the employee identity onto
// the request. Requests without a valid token never reach the handler.
func JWTAuth(secret string, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			tokenString := extractToken(ctx)
			if tokenString == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				logger.Warn("invalid jwt token", zap.Error(err))
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			// Identity headers are owned by this middleware. Drop any
			// client-supplied copies so a forged X-Role can never pass
			// through when the token omits the claim.
			ctx.Request.Header.Del(HeaderEmployeeID)
			ctx.Request.Header.Del(HeaderRole)

			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if employeeID, ok := claims["employee_id"].(string); ok {
					ctx.Request.Header.Set(HeaderEmployeeID, employeeID)
				}
				if role, ok := claims["role"].(string); ok {
					ctx.Request.Header.Set(HeaderRole, role)
				}
			}

			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return header
}
