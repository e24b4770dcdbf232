package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// TokenSize256 provides 256 bits of entropy (43 chars base64url). This is
// the size used for password-reset tokens.
const TokenSize256 = 32

// GenerateToken creates a cryptographically secure random token of the
// specified byte length. The token is returned as a base64url-encoded string
// (URL-safe, no padding), suitable for embedding in reset links.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}
