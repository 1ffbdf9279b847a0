package app

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/form3tech-oss/jwt-go"
)

func TestSnapshotRoundTrip(t *testing.T) {
	svc := NewSnapshotService("test-secret", "belote", time.Hour)
	state := humanTrick()

	token, err := svc.Seal(state)
	if err != nil {
		t.Fatalf("seal error: %v", err)
	}
	opened, err := svc.Open(token)
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	if !bytes.Equal(marshal(t, opened), marshal(t, state)) {
		t.Fatalf("opened snapshot differs from the sealed one")
	}

	parsed, _ := jwt.Parse(token, func(*jwt.Token) (interface{}, error) { return []byte("test-secret"), nil })
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != state.RoundID || claims["iss"] != "belote" {
		t.Fatalf("claims = %v", claims)
	}
}

func TestSnapshotRejectsForgery(t *testing.T) {
	svc := NewSnapshotService("test-secret", "belote", time.Hour)
	token, err := svc.Seal(humanTrick())
	if err != nil {
		t.Fatalf("seal error: %v", err)
	}

	other := NewSnapshotService("other-secret", "belote", time.Hour)
	if _, err := other.Open(token); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("wrong secret: err = %v", err)
	}

	issuer := NewSnapshotService("test-secret", "someone-else", time.Hour)
	if _, err := issuer.Open(token); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("wrong issuer: err = %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := svc.Open(tampered); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("tampered token: err = %v", err)
	}
}

func TestSnapshotExpires(t *testing.T) {
	svc := NewSnapshotService("test-secret", "belote", time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.Seal(humanTrick())
	if err != nil {
		t.Fatalf("seal error: %v", err)
	}
	if _, err := svc.Open(token); !errors.Is(err, ErrInvalidSnapshot) {
		t.Fatalf("expired token: err = %v", err)
	}
}

func TestSnapshotNeedsSecret(t *testing.T) {
	svc := NewSnapshotService("", "belote", time.Hour)
	if _, err := svc.Seal(humanTrick()); err == nil {
		t.Fatalf("expected an error without a secret")
	}
}
