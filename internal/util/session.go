package util

import (
	"time"

	"lms_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const SessionCookieName = "lms_session"

// SessionClaims 会话只携带这三项身份信息，其余一律查库
type SessionClaims struct {
	UserID   uint           `json:"user_id"`
	UserName string         `json:"user_name"`
	UserRole model.UserRole `json:"user_role"`
	jwt.RegisteredClaims
}

func GenerateSessionToken(user *model.User, secret string, expiration time.Duration) (string, error) {
	claims := &SessionClaims{
		UserID:   user.ID,
		UserName: user.Name,
		UserRole: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func ParseSessionToken(tokenString, secret string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrTokenInvalidClaims
}

func SetSessionCookie(c *gin.Context, token string, maxAge int, secure bool) {
	c.SetCookie(SessionCookieName, token, maxAge, "/", "", secure, true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookieName, "", -1, "/", "", false, true)
}

func GetSessionFromContext(c *gin.Context) *SessionClaims {
	v, exists := c.Get("session")
	if !exists {
		return nil
	}
	claims, ok := v.(*SessionClaims)
	if !ok {
		return nil
	}
	return claims
}
