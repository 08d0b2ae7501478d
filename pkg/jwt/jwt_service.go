package jwt

import (
	"errors"
	"fmt"
	"time"

	"foodbank-backend/domain"

	"github.com/golang-jwt/jwt/v4"
)

const tokenTTL = 7 * 24 * time.Hour

type (
	JWTService interface {
		GenerateTokenUser(userID string) (string, error)
		GetUserIDByToken(token string) (string, error)
	}

	jwtUserClaim struct {
		UserID string `json:"user_id"`
		jwt.RegisteredClaims
	}

	jwtService struct {
		secretKey string
		issuer    string
		now       func() time.Time
	}
)

func NewJWTService(secretKey, issuer string) JWTService {
	return &jwtService{
		secretKey: secretKey,
		issuer:    issuer,
		now:       time.Now,
	}
}

func (j *jwtService) GenerateTokenUser(userID string) (string, error) {
	now := j.now()
	claims := jwtUserClaim{
		userID,
		jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
			Issuer:    j.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.secretKey))
}

func (j *jwtService) parseToken(t_ *jwt.Token) (any, error) {
	if _, ok := t_.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unexpected signing method %v", t_.Header["alg"])
	}
	return []byte(j.secretKey), nil
}

func (j *jwtService) validateToken(token string) (*jwt.Token, error) {
	return jwt.ParseWithClaims(token, &jwtUserClaim{}, j.parseToken)
}

func (j *jwtService) GetUserIDByToken(token string) (string, error) {
	t_Token, err := j.validateToken(token)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		return "", domain.ErrTokenInvalid
	}
	if !t_Token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := t_Token.Claims.(*jwtUserClaim)
	if !ok || claims.UserID == "" {
		return "", domain.ErrTokenInvalid
	}
	if j.issuer != "" && claims.Issuer != j.issuer {
		return "", domain.ErrTokenInvalid
	}
	return claims.UserID, nil
}
