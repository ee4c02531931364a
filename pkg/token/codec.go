package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL is how long an issued token stays valid.
const DefaultTTL = 2 * time.Hour

// Codec issues and verifies signed bearer tokens carrying a user id as
// the subject claim. The signing key is injected so tests can use their
// own; there is no package-level secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret []byte, ttl time.Duration) *Codec {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Codec{secret: secret, ttl: ttl}
}

// Issue signs a token for userID with iat=now and exp=now+ttl.
func (c *Codec) Issue(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
}

func (c *Codec) keyFunc(t *jwt.Token) (interface{}, error) {
	if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, jwt.ErrInvalidKeyType
	}
	return c.secret, nil
}

// Verify reports whether token has a valid signature and structure.
// With ignoreExpired true an expired but otherwise valid token still
// passes; a bad signature never does. All parse failures collapse to
// false, nothing is propagated.
func (c *Codec) Verify(token string, ignoreExpired bool) bool {
	var opts []jwt.ParserOption
	if ignoreExpired {
		opts = append(opts, jwt.WithoutClaimsValidation())
	}
	_, err := jwt.Parse(token, c.keyFunc, opts...)
	return err == nil
}

// Subject returns the user id carried in the token's subject claim, or
// uuid.Nil when the token cannot be parsed or its subject is not a
// UUID. Expiry is not checked here; callers decide that via Verify.
func (c *Codec) Subject(token string) uuid.UUID {
	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(token, claims, c.keyFunc, jwt.WithoutClaimsValidation()); err != nil {
		return uuid.Nil
	}
	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil
	}
	return id
}
