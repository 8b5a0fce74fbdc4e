package server

import (
	"errors"
	"testing"
)

func TestSessionGateAuthenticates(t *testing.T) {
	gate, err := NewSessionGate("table-secret")
	if err != nil {
		t.Fatalf("gate init failed: %v", err)
	}
	if !gate.Enabled() {
		t.Fatal("expected gate to be enabled")
	}

	token, err := gate.Authenticate("table-secret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if !gate.Resolve(token) {
		t.Fatal("expected valid session")
	}

	gate.Logout(token)
	if gate.Resolve(token) {
		t.Fatal("expected logged out token to be invalid")
	}
}

func TestSessionGateRejectsWrongPassword(t *testing.T) {
	gate, err := NewSessionGate("table-secret")
	if err != nil {
		t.Fatalf("gate init failed: %v", err)
	}
	if _, err := gate.Authenticate("wrong-password"); !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got %v", err)
	}
	if gate.Resolve("") {
		t.Fatal("expected empty token to be invalid")
	}
}

func TestSessionGateOpenWithoutPassword(t *testing.T) {
	gate, err := NewSessionGate("")
	if err != nil {
		t.Fatalf("gate init failed: %v", err)
	}
	if gate.Enabled() {
		t.Fatal("expected gate to be open")
	}
	token, err := gate.Authenticate("anything")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}
	if token != "" {
		t.Fatal("open gate must not issue tokens")
	}
	if !gate.Resolve("") {
		t.Fatal("open gate must accept any token")
	}
}
