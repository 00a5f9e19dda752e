package middleware

// identity.go defines helper functions shared across middleware files:
// extraction of the authenticated user and tenant set by JWTAuth. Both
// degrade to fixed placeholders on public routes so cache and rate-limit
// keys stay well-formed for anonymous traffic.

import (
    "github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's identifier, or "anon"
// when the route is public.
func currentUserID(c echo.Context) string {
    if v := c.Get("user_id"); v != nil {
        if s, ok := v.(string); ok && s != "" {
            return s
        }
    }
    return "anon"
}

// currentTenantID returns the caller's tenant, or "public" on
// unauthenticated routes. Keying caches and buckets by tenant keeps one
// tenant's traffic from evicting or starving another's.
func currentTenantID(c echo.Context) string {
    if v := c.Get("tenant_id"); v != nil {
        if s, ok := v.(string); ok && s != "" {
            return s
        }
    }
    return "public"
}
