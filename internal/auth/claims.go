package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoUserID is returned when the access token carries no recognizable
// user identifier claim.
var ErrNoUserID = errors.New("no user ID claim in token")

// CurrentUserID extracts the user ID from the stored access token's
// payload. The token is decoded without signature verification: the client
// is not the party that vouches for the token, it only needs the identity
// the server already encoded in it. Backends differ on the claim name, so
// sub, id and user_id are all accepted.
func (s *Service) CurrentUserID() (string, error) {
	token := s.AccessToken()
	if token == "" {
		return "", errors.New("no authentication token found")
	}
	return userIDFromToken(token)
}

func userIDFromToken(token string) (string, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", fmt.Errorf("invalid token format: %w", err)
	}

	for _, name := range []string{"sub", "id", "user_id"} {
		if v, ok := claims[name]; ok {
			if id, ok := v.(string); ok && id != "" {
				return id, nil
			}
		}
	}
	return "", ErrNoUserID
}
