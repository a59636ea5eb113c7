package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Tipos de token emitidos. El discriminador token_type evita que un refresh
// token se use como credencial de acceso.
const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

// Vigencia de cada tipo de token.
const (
	AccessTokenTTL  = 7 * 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
)

// Claims incluye los claims estándar JWT más los datos del usuario que el
// middleware necesita sin consultar la DB.
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
	TokenType string `json:"token_type"` // access | refresh
}

// UserInfo datos del usuario que viajan dentro del token.
type UserInfo struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Email     string
	Role      string
}

// TokenPair par de tokens firmados con sus vencimientos.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
}

// GeneratePair emite el par access (7 días) + refresh (30 días) para el usuario.
func GeneratePair(secret, issuer string, user UserInfo) (*TokenPair, error) {
	now := time.Now()
	accessExp := now.Add(AccessTokenTTL)
	refreshExp := now.Add(RefreshTokenTTL)

	access, err := sign(secret, issuer, user, TokenTypeAccess, now, accessExp)
	if err != nil {
		return nil, err
	}
	refresh, err := sign(secret, issuer, user, TokenTypeRefresh, now, refreshExp)
	if err != nil {
		return nil, err
	}
	return &TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
	}, nil
}

// RefreshAccess valida un refresh token y emite un nuevo access token para el mismo usuario.
func RefreshAccess(secret, issuer, refreshToken string) (string, time.Time, error) {
	claims, err := Parse(secret, refreshToken)
	if err != nil {
		return "", time.Time{}, err
	}
	if claims.TokenType != TokenTypeRefresh {
		return "", time.Time{}, fmt.Errorf("jwt: se esperaba un refresh token")
	}
	now := time.Now()
	exp := now.Add(AccessTokenTTL)
	access, err := sign(secret, issuer, UserInfo{
		ID:        claims.UserID,
		FirstName: claims.FirstName,
		LastName:  claims.LastName,
		Phone:     claims.Phone,
		Email:     claims.Email,
		Role:      claims.Role,
	}, TokenTypeAccess, now, exp)
	if err != nil {
		return "", time.Time{}, err
	}
	return access, exp, nil
}

// Parse valida firma y vigencia, y devuelve los claims.
// No distingue tipo de token; el caller debe revisar TokenType.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

func sign(secret, issuer string, user UserInfo, tokenType string, now, exp time.Time) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
		UserID:    user.ID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Email:     user.Email,
		Role:      user.Role,
		TokenType: tokenType,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
