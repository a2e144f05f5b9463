package identity

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const DefaultRolesClaim = "https://cafeteria.com/roles"

var (
	ErrInvalidToken = errors.New("invalid bearer token")
	ErrNoVerifyKey  = errors.New("no token verification key configured")
)

type VerifierConfig struct {
	Issuer       string
	Audience     string
	HMACSecret   []byte
	RSAPublicKey *rsa.PublicKey
	// RolesClaim is the namespaced claim holding the role list.
	RolesClaim string
}

// Verifier checks access tokens minted by the identity provider.
type Verifier struct {
	cfg    VerifierConfig
	parser *jwt.Parser
}

func NewVerifier(cfg VerifierConfig) (*Verifier, error) {
	if len(cfg.HMACSecret) == 0 && cfg.RSAPublicKey == nil {
		return nil, ErrNoVerifyKey
	}
	if cfg.RolesClaim == "" {
		cfg.RolesClaim = DefaultRolesClaim
	}

	opts := []jwt.ParserOption{jwt.WithLeeway(30 * time.Second), jwt.WithExpirationRequired()}
	if cfg.RSAPublicKey != nil {
		opts = append(opts, jwt.WithValidMethods([]string{"RS256", "RS384", "RS512"}))
	} else {
		opts = append(opts, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}
	if cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(cfg.Audience))
	}

	return &Verifier{cfg: cfg, parser: jwt.NewParser(opts...)}, nil
}

// ParseRSAPublicKey reads a PEM encoded RSA public key.
func ParseRSAPublicKey(pem []byte) (*rsa.PublicKey, error) {
	return jwt.ParseRSAPublicKeyFromPEM(pem)
}

// Verify validates raw and builds the caller's identity from its claims.
func (v *Verifier) Verify(raw string) (Identity, error) {
	claims := jwt.MapClaims{}
	_, err := v.parser.ParseWithClaims(raw, claims, v.key)
	if err != nil {
		return Anonymous, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	sub, _ := claims.GetSubject()
	if sub == "" {
		return Anonymous, fmt.Errorf("%w: missing sub", ErrInvalidToken)
	}

	return Identity{
		User: User{
			ID:    sub,
			Email: stringClaim(claims, "email"),
			Name:  stringClaim(claims, "name"),
			Roles: v.roles(claims),
		},
		Credential: raw,
	}, nil
}

func (v *Verifier) key(t *jwt.Token) (any, error) {
	if v.cfg.RSAPublicKey != nil {
		return v.cfg.RSAPublicKey, nil
	}
	return v.cfg.HMACSecret, nil
}

// roles reads the role list; a token without the claim is a plain customer.
func (v *Verifier) roles(claims jwt.MapClaims) []Role {
	raw, ok := claims[v.cfg.RolesClaim]
	if !ok {
		return []Role{RoleCliente}
	}

	var names []string
	switch vals := raw.(type) {
	case []any:
		for _, x := range vals {
			if s, ok := x.(string); ok {
				names = append(names, s)
			}
		}
	case string:
		names = strings.Split(vals, ",")
	}

	var out []Role
	for _, n := range names {
		if r, ok := ParseRole(n); ok && !containsRole(out, r) {
			out = append(out, r)
		}
	}
	return out
}

func containsRole(rs []Role, r Role) bool {
	for _, x := range rs {
		if x == r {
			return true
		}
	}
	return false
}

func stringClaim(claims jwt.MapClaims, name string) string {
	s, _ := claims[name].(string)
	return s
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	tok := strings.TrimSpace(header[len(prefix):])
	return tok, tok != ""
}
