package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/form3tech-oss/jwt-go"

	"belote/internal/domain"
)

// ErrInvalidSnapshot is returned for tokens that fail verification or decoding.
var ErrInvalidSnapshot = errors.New("invalid round snapshot")

// SnapshotService seals round snapshots into signed tokens a client can
// hold and hand back to resume the round.
type SnapshotService struct {
	secret string
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewSnapshotService signs tokens with secret and stamps them with issuer.
// Tokens expire ttl after they are sealed.
func NewSnapshotService(secret, issuer string, ttl time.Duration) *SnapshotService {
	return &SnapshotService{
		secret: secret,
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Seal signs state with HS256. The round id is the subject.
func (s *SnapshotService) Seal(state domain.State) (string, error) {
	if s == nil {
		return "", fmt.Errorf("snapshot service is nil")
	}
	if s.secret == "" {
		return "", fmt.Errorf("snapshot secret is not configured")
	}
	data, err := domain.MarshalState(state)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	now := s.now()
	claims := jwt.MapClaims{
		"iss":   s.issuer,
		"sub":   state.TableInfo().RoundID,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
		"state": string(data),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.secret))
}

// Open verifies token and decodes the state it carries.
func (s *SnapshotService) Open(tokenString string) (domain.State, error) {
	if s == nil {
		return nil, fmt.Errorf("snapshot service is nil")
	}
	if s.secret == "" {
		return nil, fmt.Errorf("snapshot secret is not configured")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidSnapshot
	}
	if !claims.VerifyIssuer(s.issuer, true) {
		return nil, fmt.Errorf("%w: unexpected issuer", ErrInvalidSnapshot)
	}
	raw, ok := claims["state"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: missing state", ErrInvalidSnapshot)
	}

	state, err := domain.UnmarshalState([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	if sub, _ := claims["sub"].(string); sub != state.TableInfo().RoundID {
		return nil, fmt.Errorf("%w: subject does not match round", ErrInvalidSnapshot)
	}
	if err := domain.CheckConservation(state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
	}
	return state, nil
}
