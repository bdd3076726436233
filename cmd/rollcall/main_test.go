package main

import "testing"

func TestResolveSecretKey(t *testing.T) {
	t.Setenv("SECRET_KEY", "")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is empty")
	}

	t.Setenv("SECRET_KEY", "change_me_in_production")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY uses insecure placeholder")
	}

	t.Setenv("SECRET_KEY", "too-short-secret")
	if _, err := resolveSecretKey(); err == nil {
		t.Fatal("expected error when SECRET_KEY is too short")
	}

	valid := "0123456789abcdef0123456789abcdef"
	t.Setenv("SECRET_KEY", valid)

	secret, err := resolveSecretKey()
	if err != nil {
		t.Fatalf("expected valid secret, got error: %v", err)
	}
	if secret != valid {
		t.Fatalf("expected %q, got %q", valid, secret)
	}
}

func TestResolveDefaultOffset(t *testing.T) {
	t.Setenv("DEFAULT_TZ_OFFSET", "")
	offset, err := resolveDefaultOffset()
	if err != nil {
		t.Fatalf("expected fallback offset, got error: %v", err)
	}
	if offset != "+00:00" {
		t.Fatalf("expected +00:00, got %q", offset)
	}

	t.Setenv("DEFAULT_TZ_OFFSET", "08:00")
	offset, err = resolveDefaultOffset()
	if err != nil {
		t.Fatalf("expected normalized offset, got error: %v", err)
	}
	if offset != "+08:00" {
		t.Fatalf("expected +08:00, got %q", offset)
	}

	t.Setenv("DEFAULT_TZ_OFFSET", "bogus")
	if _, err := resolveDefaultOffset(); err == nil {
		t.Fatal("expected error for malformed offset")
	}
}
