package jwt

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/mira-dev/mira/shared/domain"
	internal_errors "github.com/mira-dev/mira/shared/errors"
	"github.com/mira-dev/mira/shared/logger"
)

// JwtService decodes the access token the backend issues at login. NewToken exists for
// tests and local tooling; production tokens always come from the backend.
type JwtService interface {
	NewToken(user domain.User) (string, error)
	DecodeUser(jwtStr string) (*domain.User, error)
}

type Jwt struct {
	secretKey string
	ttl       time.Duration
}

func New(secretKey string, ttl time.Duration) JwtService {
	return &Jwt{secretKey, ttl}
}

func (j *Jwt) NewToken(user domain.User) (string, error) {
	claims := jwt.MapClaims{
		"uid":   user.Id,
		"name":  user.Name,
		"email": user.Email,
		"admin": user.Admin,
		"exp":   time.Now().Add(j.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("can't sign token: %w", err)
	}
	return tokenString, nil
}

func (j *Jwt) DecodeUser(jwtStr string) (*domain.User, error) {
	token, err := jwt.Parse(jwtStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	if err != nil || !token.Valid {
		logger.Log.Debug("rejected access token", "error", err)
		return nil, &internal_errors.ErrorWithStatusCode{Message: "Invalid access token", StatusCode: http.StatusUnauthorized}
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidClaims
	}
	uid, ok := claims["uid"].(float64)
	if !ok || uid <= 0 {
		return nil, ErrInvalidClaims
	}
	user := &domain.User{Id: int64(uid)}
	user.Name, _ = claims["name"].(string)
	user.Email, _ = claims["email"].(string)
	user.Admin, _ = claims["admin"].(bool)
	return user, nil
}

var ErrInvalidClaims = &internal_errors.ErrorWithStatusCode{Message: "Invalid token claims", StatusCode: http.StatusUnauthorized}
