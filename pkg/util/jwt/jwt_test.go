package jwt

import (
	"testing"
)

func TestGenerateAndParse(t *testing.T) {
	Init("test-secret", 30)

	token, err := GenerateAccessToken("U123")
	if err != nil {
		t.Fatal(err)
	}

	claims, err := ParseToken(token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.UserID != "U123" {
		t.Fatalf("expected U123, got %s", claims.UserID)
	}
	if claims.Issuer != "cedar_roots" {
		t.Fatalf("unexpected issuer %s", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	Init("secret-a", 30)
	token, err := GenerateAccessToken("U123")
	if err != nil {
		t.Fatal(err)
	}

	Init("secret-b", 30)
	if _, err := ParseToken(token); err == nil {
		t.Fatal("expected signature validation failure")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	Init("test-secret", -1)
	token, err := GenerateAccessToken("U123")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ParseToken(token); err == nil {
		t.Fatal("expected expired token to fail")
	}
}
