package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gamezonia/gzone/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// actorClaims is the claim set minted by the external identity service.
type actorClaims struct {
	jwt.RegisteredClaims
	UserID  string `json:"user_id"`
	IsAdmin bool   `json:"is_admin"`
}

// TokenParser turns an actor token into an Identity. It only consumes
// tokens; issuance lives with the identity collaborator.
type TokenParser struct {
	secret []byte
}

func NewTokenParser(secret string) *TokenParser {
	return &TokenParser{secret: []byte(secret)}
}

// Identify parses and verifies a bearer token. An empty token is a valid
// anonymous, unprivileged identity.
func (p *TokenParser) Identify(token string) (domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return domain.Identity{}, nil
	}

	if len(p.secret) == 0 {
		return domain.Identity{}, errors.New("token secret is not configured")
	}

	var claims actorClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return domain.Identity{}, fmt.Errorf("parse actor token: %w", err)
	}

	actorID := claims.UserID
	if actorID == "" {
		actorID = claims.Subject
	}

	return domain.Identity{ActorID: actorID, Privileged: claims.IsAdmin}, nil
}
