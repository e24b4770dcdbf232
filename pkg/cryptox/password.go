package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Scheme selects how new passwords are digested. Verification is scheme
// agnostic: VerifyPassword inspects the stored hash format, so a deployment
// can switch schemes without invalidating existing rows.
type Scheme string

const (
	// SchemeSHA256 is the legacy deterministic digest: hex(sha256(password)),
	// no salt. Weak against offline attacks but preserved for compatibility
	// with databases written by the original backend.
	SchemeSHA256 Scheme = "sha256"

	// SchemeArgon2id produces a PHC-format Argon2id hash with a random
	// per-password salt. Use this for new deployments.
	SchemeArgon2id Scheme = "argon2id"
)

// Argon2id parameters (RFC 9106 second recommended option).
const (
	argonMemory      = 64 * 1024
	argonIterations  = 3
	argonParallelism = 2
	argonSaltLength  = 16
	argonKeyLength   = 32
)

var ErrPasswordMismatch = errors.New("cryptox: password does not match")

// HashPassword digests a password under the given scheme.
func HashPassword(scheme Scheme, password string) (string, error) {
	switch scheme {
	case SchemeArgon2id:
		return hashArgon2id(password)
	case SchemeSHA256, "":
		return hashSHA256(password), nil
	default:
		return "", fmt.Errorf("cryptox: unknown password scheme %q", scheme)
	}
}

// VerifyPassword compares a plaintext password against a stored hash,
// dispatching on the hash format. Returns nil on match and
// ErrPasswordMismatch otherwise.
func VerifyPassword(password, storedHash string) error {
	if strings.HasPrefix(storedHash, "$argon2id$") {
		return verifyArgon2id(password, storedHash)
	}
	computed := hashSHA256(password)
	if subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}

func hashSHA256(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// hashArgon2id returns a PHC-style encoded string including salt and
// parameters: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
func hashArgon2id(password string) (string, error) {
	salt := make([]byte, argonSaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey(
		[]byte(password),
		salt,
		argonIterations,
		argonMemory,
		argonParallelism,
		argonKeyLength,
	)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		argonMemory,
		argonIterations,
		argonParallelism,
		b64Salt,
		b64Hash,
	), nil
}

func verifyArgon2id(password, encodedHash string) error {
	// Structure: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", "salt", "hash"]
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return errors.New("cryptox: invalid hash format: expected 6 parts")
	}
	if parts[1] != "argon2id" {
		return errors.New("cryptox: invalid hash format: not argon2id")
	}
	if parts[2] != "v=19" {
		return errors.New("cryptox: invalid hash format: wrong version")
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("cryptox: invalid hash format: failed to parse parameters: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash format: failed to decode salt: %w", err)
	}
	expectedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("cryptox: invalid hash format: failed to decode hash: %w", err)
	}

	computed := argon2.IDKey(
		[]byte(password),
		salt,
		iters,
		mem,
		par,
		uint32(len(expectedHash)), // #nosec G115 - hash lengths are tiny
	)

	if subtle.ConstantTimeCompare(computed, expectedHash) == 1 {
		return nil
	}
	return ErrPasswordMismatch
}
