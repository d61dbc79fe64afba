// Package tokenx mints and verifies the EdDSA-signed tokens embedded in
// account e-mail links (verification and password reset). Tokens are
// stateless JWTs; single-use enforcement happens in the store via the jti.
package tokenx

import (
	"crypto/ed25519"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Token purposes. A token minted for one flow must never be redeemable in
// another.
const (
	PurposeVerify = "verify"
	PurposeReset  = "reset"
)

var (
	// ErrInvalidToken covers malformed, tampered or mistyped tokens.
	ErrInvalidToken = errors.New("tokenx: invalid token")
	// ErrExpiredToken is returned for structurally valid but expired tokens.
	ErrExpiredToken = errors.New("tokenx: token expired")
)

// Claims carried by an action token.
type Claims struct {
	Purpose string `json:"purpose"`

	jwt.RegisteredClaims
}

// Signer mints and verifies action tokens with a single Ed25519 key pair.
type Signer struct {
	priv   ed25519.PrivateKey
	pub    ed25519.PublicKey
	issuer string
}

// NewSigner generates an ephemeral key pair. Tokens do not survive restarts
// in this mode; links in already-sent mail become invalid.
func NewSigner(issuer string) (*Signer, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("tokenx: failed to generate key: %w", err)
	}
	return &Signer{priv: priv, pub: pub, issuer: issuer}, nil
}

// NewSignerFromSeedFile loads the Ed25519 seed from a file, creating it on
// first run. Persistent mode keeps mailed links valid across restarts.
func NewSignerFromSeedFile(issuer, path string) (*Signer, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		seed := make([]byte, ed25519.SeedSize)
		if _, err := rand.Read(seed); err != nil {
			return nil, err
		}
		encoded := base64.RawStdEncoding.EncodeToString(seed)
		if err := os.WriteFile(path, []byte(encoded), 0600); err != nil {
			return nil, err
		}
		raw = []byte(encoded)
	} else if err != nil {
		return nil, err
	}

	seed, err := base64.RawStdEncoding.DecodeString(string(raw))
	if err != nil || len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("tokenx: malformed seed file %s", path)
	}

	priv := ed25519.NewKeyFromSeed(seed)
	return &Signer{
		priv:   priv,
		pub:    priv.Public().(ed25519.PublicKey),
		issuer: issuer,
	}, nil
}

// Mint creates a signed token for the given user and purpose. The returned
// jti must be recorded so the token can be burned after first use.
func (s *Signer) Mint(userID int64, purpose string, ttl time.Duration) (token, jti string, err error) {
	now := time.Now().UTC()
	jti = uuid.NewString()

	claims := Claims{
		Purpose: purpose,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   strconv.FormatInt(userID, 10),
			ID:        jti,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims).SignedString(s.priv)
	if err != nil {
		return "", "", fmt.Errorf("tokenx: failed to sign token: %w", err)
	}
	return token, jti, nil
}

// Verify checks signature, issuer, expiry and purpose, and returns the
// subject user id and jti.
func (s *Signer) Verify(token, wantPurpose string) (userID int64, jti string, err error) {
	var claims Claims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodEd25519); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.pub, nil
	}, jwt.WithIssuer(s.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return 0, "", ErrExpiredToken
		}
		return 0, "", ErrInvalidToken
	}
	if !parsed.Valid || claims.Purpose != wantPurpose || claims.ID == "" {
		return 0, "", ErrInvalidToken
	}

	userID, err = strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, "", ErrInvalidToken
	}
	return userID, claims.ID, nil
}
