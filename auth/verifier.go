//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=../mocks/mock_identity_verifier.go -package=mocks
package auth

import (
	"baro-server/domain"
	serrors "baro-server/errors"
	"strings"
)

// IIdentityVerifier turns a bearer credential into a verified identity.
// The profile endpoints consume it as a capability; the chat endpoints
// do not consult it at all.
type IIdentityVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// ParseBearer extracts the token from an "Authorization: Bearer <token>"
// header value. Every malformation maps to a dedicated sentinel so the
// HTTP layer can answer with a precise detail string.
func ParseBearer(header string) (string, error) {
	if header == "" {
		return "", serrors.ErrMissingAuthHeader
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", serrors.ErrMalformedAuthHeader
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", serrors.ErrMalformedAuthHeader
	}
	return token, nil
}
