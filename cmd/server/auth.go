package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mallard-db/mallard/core"
)

// AuthConfig configures the server's JWT handshake.
type AuthConfig struct {
	// Enabled requires every connection to authenticate before queries.
	Enabled bool

	// Secret is the shared secret for HS256 validation.
	Secret string

	// Issuer is the expected "iss" claim, checked when set.
	Issuer string

	// Audience is the expected "aud" claim, checked when set.
	Audience string

	// NameClaim and EmailClaim name the identity claims (defaults
	// "name" and "email").
	NameClaim  string
	EmailClaim string
}

// connState tracks one connection's authentication.
type connState struct {
	identity      core.Identity
	authenticated bool
	tokenExpiry   time.Time
}

// validateToken checks an HS256 token against the configured secret and
// claims and extracts the caller's identity.
func (s *Server) validateToken(tokenString string) (core.Identity, time.Time, error) {
	cfg := s.auth
	if cfg == nil || cfg.Secret == "" {
		return core.Identity{}, time.Time{}, errors.New("authentication not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}))
	if err != nil {
		return core.Identity{}, time.Time{}, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return core.Identity{}, time.Time{}, errors.New("invalid token claims")
	}

	if cfg.Issuer != "" {
		issuer, _ := claims.GetIssuer()
		if issuer != cfg.Issuer {
			return core.Identity{}, time.Time{}, fmt.Errorf("invalid issuer: expected %s, got %s", cfg.Issuer, issuer)
		}
	}
	if cfg.Audience != "" {
		audiences, _ := claims.GetAudience()
		found := false
		for _, aud := range audiences {
			if aud == cfg.Audience {
				found = true
				break
			}
		}
		if !found {
			return core.Identity{}, time.Time{}, fmt.Errorf("invalid audience: expected %s", cfg.Audience)
		}
	}

	nameClaim := cfg.NameClaim
	if nameClaim == "" {
		nameClaim = "name"
	}
	emailClaim := cfg.EmailClaim
	if emailClaim == "" {
		emailClaim = "email"
	}

	name, _ := claims[nameClaim].(string)
	email, _ := claims[emailClaim].(string)
	if name == "" && email == "" {
		return core.Identity{}, time.Time{}, fmt.Errorf("token missing identity claims (%s or %s)", nameClaim, emailClaim)
	}

	var expiresAt time.Time
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}

	return core.Identity{Name: name, Email: email}, expiresAt, nil
}

// parseAuthCommand splits "AUTH JWT <token>" into its parts.
func parseAuthCommand(line string) (authType, token string, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(strings.ToUpper(line), "AUTH ") {
		return "", "", errors.New("not an AUTH command")
	}

	parts := strings.Fields(line)
	if len(parts) < 3 {
		return "", "", errors.New("invalid AUTH command: expected AUTH <type> <credentials>")
	}
	if strings.ToUpper(parts[1]) != "JWT" {
		return "", "", fmt.Errorf("unsupported auth type: %s", parts[1])
	}
	return "JWT", parts[2], nil
}

// handleAuth runs the AUTH handshake for one connection.
func (s *Server) handleAuth(line string, state *connState) Response {
	_, token, err := parseAuthCommand(line)
	if err != nil {
		return Response{Success: false, Type: "auth", Error: err.Error()}
	}

	identity, expiresAt, err := s.validateToken(token)
	if err != nil {
		return Response{Success: false, Type: "auth", Error: err.Error()}
	}

	state.identity = identity
	state.authenticated = true
	state.tokenExpiry = expiresAt

	ar := AuthResponse{
		Authenticated: true,
		Identity:      fmt.Sprintf("%s <%s>", identity.Name, identity.Email),
	}
	if !expiresAt.IsZero() {
		ar.ExpiresIn = int(time.Until(expiresAt).Seconds())
	}

	data, _ := json.Marshal(ar)
	return Response{Success: true, Type: "auth", Result: data}
}
