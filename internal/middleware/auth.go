package middleware

import (
	"net/http"
	"strings"

	"boletapos/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ClaimsKey is the gin context key under which authenticated claims are stored.
const ClaimsKey = "auth_claims"

// JWTClaims carries the identity of the authenticated user for downstream
// handlers.
type JWTClaims struct {
	UserID uuid.UUID
	Nombre string
	Rut    string
	Rol    string
}

// JWTAuth validates the Bearer token and stores the parsed claims in the
// request context. Requests without a valid token are rejected with 401.
func JWTAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token requerido"))
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token invalido o expirado"))
			return
		}

		mapClaims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token invalido"))
			return
		}

		userIDStr, _ := mapClaims["user_id"].(string)
		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("token invalido"))
			return
		}

		nombre, _ := mapClaims["nombre"].(string)
		rut, _ := mapClaims["rut"].(string)
		rol, _ := mapClaims["rol"].(string)

		c.Set(ClaimsKey, &JWTClaims{
			UserID: userID,
			Nombre: nombre,
			Rut:    rut,
			Rol:    rol,
		})
		c.Next()
	}
}

// RequireRole allows the request through only when the authenticated user
// holds one of the given roles. Must run after JWTAuth.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("no autenticado"))
			return
		}
		for _, r := range roles {
			if claims.Rol == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, apierror.New("permisos insuficientes"))
	}
}

// GetClaims returns the claims stored by JWTAuth, or nil when the route is
// unauthenticated.
func GetClaims(c *gin.Context) *JWTClaims {
	v, ok := c.Get(ClaimsKey)
	if !ok {
		return nil
	}
	claims, ok := v.(*JWTClaims)
	if !ok {
		return nil
	}
	return claims
}
