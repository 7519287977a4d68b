package middleware

import (
	"net/http"
	"strings"
	"time"

	"Finora/config"
	appErrors "Finora/internal/errors"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

type JwtService struct {
	secret    []byte
	expiresIn time.Duration
}

func NewJwtService(cfg *config.Config) *JwtService {
	return &JwtService{
		secret:    []byte(cfg.JWT.Secret),
		expiresIn: cfg.JWT.ExpiresIn,
	}
}

func (s *JwtService) GenerateToken(userID ulid.ULID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", appErrors.ErrInternalServer.WithError(err)
	}
	return signed, nil
}

func (s *JwtService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, appErrors.NewAuthError("INVALID_SIGNING_METHOD", "Método de assinatura inválido")
		}
		return s.secret, nil
	})
	if err != nil {
		return "", appErrors.NewAuthError("TOKEN_INVALID", "Token inválido ou expirado").WithError(err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", appErrors.NewAuthError("TOKEN_INVALID", "Token inválido ou expirado")
	}

	return claims.Subject, nil
}

// AuthMiddleware valida o bearer token e injeta "user_id" no contexto.
func AuthMiddleware(jwtSvc *JwtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":   "UNAUTHORIZED",
				"message": "Token de autenticação não fornecido",
			})
			c.Abort()
			return
		}

		userID, err := jwtSvc.ValidateToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			appErr := appErrors.FromError(err)
			c.JSON(appErr.StatusCode, gin.H{
				"error":   appErr.Code,
				"message": appErr.Message,
			})
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
