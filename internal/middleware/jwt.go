package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the token's subject, role and tenant claims into the request
// context. Tokens are issued by the external identity service; this
// middleware only verifies them with the shared secret. Handlers access
// the authenticated caller via c.Get("user_id"), c.Get("role") and
// c.Get("tenant_id"), all strings.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the JWT.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            // Parse with HS256 and our secret; reject any other signing
            // method instead of trusting the token header.
            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
            }

            sub, _ := claims["sub"].(string)
            role, _ := claims["role"].(string)
            tenant, _ := claims["tenant_id"].(string)
            // Every caller belongs to a tenant; a token without the claim
            // cannot be scoped and is rejected outright.
            if sub == "" || tenant == "" {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "token missing subject or tenant"})
            }

            c.Set("user_id", sub)
            c.Set("role", role)
            c.Set("tenant_id", tenant)
            return next(c)
        }
    }
}
