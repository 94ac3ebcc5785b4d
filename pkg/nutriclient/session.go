package nutriclient

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/pageza/nutriapp/backend/pkg/types"
)

// Session is a signed-in user: the bearer token and what it says about its
// owner. The signature is checked by the server, not here.
type Session struct {
	Token  string
	UserID uuid.UUID
	Name   string
}

// NewSession decodes the subject and name claims of token.
func NewSession(token string) (*Session, error) {
	claims := &types.TokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("malformed token: %w", err)
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, UserID: userID, Name: claims.Name}, nil
}
