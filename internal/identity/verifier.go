package identity

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"github.com/luisnguyen2k9-alt/LibraNCT/internal/liberr"
)

// Identity is the authenticated caller as seen by admin-only operations.
type Identity struct {
	Email string
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Verifier checks HS256 bearer tokens and enforces the admin email
// allow-list. The lending core itself is identity-agnostic; only
// admin-facing entry points go through here.
type Verifier struct {
	secret      []byte
	adminEmails map[string]bool
}

func NewVerifier(secret string, adminEmails []string) *Verifier {
	allowed := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		e = strings.ToLower(strings.TrimSpace(e))
		if e != "" {
			allowed[e] = true
		}
	}
	return &Verifier{secret: []byte(secret), adminEmails: allowed}
}

// Verify parses and validates the token, returning the embedded identity.
// Missing or malformed tokens are unauthorized.
func (v *Verifier) Verify(token string) (Identity, error) {
	if token == "" {
		return Identity{}, errors.Wrap(liberr.ErrUnauthorized, "missing token")
	}

	parsed, err := jwt.ParseWithClaims(token, &claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return Identity{}, errors.Wrap(liberr.ErrUnauthorized, err.Error())
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || c.Email == "" {
		return Identity{}, errors.Wrap(liberr.ErrUnauthorized, "invalid token claims")
	}
	return Identity{Email: c.Email}, nil
}

// VerifyAdmin is Verify plus the allow-list check: a valid token whose
// email is not an admin is forbidden, not unauthorized.
func (v *Verifier) VerifyAdmin(token string) (Identity, error) {
	id, err := v.Verify(token)
	if err != nil {
		return Identity{}, err
	}
	if !v.adminEmails[strings.ToLower(id.Email)] {
		return Identity{}, errors.Wrapf(liberr.ErrForbidden, "admin privileges required for %s", id.Email)
	}
	return id, nil
}

// MintToken issues a signed token for the given email. Used by the CLI
// token command and by tests; production tokens normally come from the
// identity provider.
func (v *Verifier) MintToken(email string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Subject:   email,
			Issuer:    "libranct",
		},
	})
	return token.SignedString(v.secret)
}
