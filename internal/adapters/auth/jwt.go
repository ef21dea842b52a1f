package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkeye/Helpline/internal/core"
	"github.com/dkeye/Helpline/internal/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

var ErrNoSecret = errors.New("jwt secret not configured")

// JWTVerifier validates HS256 tokens issued by the login service.
type JWTVerifier struct {
	secretKey []byte
}

var _ core.IdentityVerifier = (*JWTVerifier)(nil)

func NewJWTVerifier(secret string) *JWTVerifier {
	if secret == "" {
		log.Warn().Str("module", "auth").Msg("jwt secret empty, every helper join will be rejected")
	}
	return &JWTVerifier{secretKey: []byte(secret)}
}

// Verify parses and validates the token. The identity id comes from the
// userId claim, falling back to sub.
func (v *JWTVerifier) Verify(_ context.Context, tokenStr string) (*domain.Identity, error) {
	if len(v.secretKey) == 0 {
		return nil, ErrNoSecret
	}
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}

	ident := &domain.Identity{
		ID:    stringClaim(claims, "userId"),
		Name:  stringClaim(claims, "name"),
		Email: stringClaim(claims, "email"),
	}
	if ident.ID == "" {
		ident.ID, _ = claims.GetSubject()
	}
	if ident.ID == "" {
		return nil, errors.New("subject not found in token")
	}
	return ident, nil
}

func stringClaim(claims jwt.MapClaims, key string) string {
	s, _ := claims[key].(string)
	return s
}
