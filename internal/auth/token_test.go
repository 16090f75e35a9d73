package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, false)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Admin {
		t.Error("plain token carries admin claim")
	}
	if claims.ID == "" {
		t.Error("token missing JTI")
	}
}

func TestAdminClaim(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, true)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatal(err)
	}
	if !claims.Admin {
		t.Error("admin token missing admin claim")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("right-secret", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := ValidateToken("wrong-secret", token); err == nil {
		t.Error("token validated with wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	for _, tok := range []string{"", "not.a.token", "aaaa.bbbb.cccc"} {
		if _, err := ValidateToken("secret", tok); err == nil {
			t.Errorf("garbage token %q validated", tok)
		}
	}
}

func TestValidateTokenExpired(t *testing.T) {
	secret := "test-secret"
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatal(err)
	}

	if _, err := ValidateToken(secret, signed); err == nil {
		t.Error("expired token validated")
	}
}

func TestTokensUniquePerIssue(t *testing.T) {
	secret := "test-secret"
	first, err := GenerateToken(secret, false)
	if err != nil {
		t.Fatal(err)
	}
	second, err := GenerateToken(secret, false)
	if err != nil {
		t.Fatal(err)
	}
	if strings.EqualFold(first, second) {
		t.Error("two issued tokens are identical")
	}
}
