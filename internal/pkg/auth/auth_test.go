// internal/pkg/auth/auth_test.go
package auth

import (
	"testing"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "storefront-test"},
		JWT: config.JWTConfig{
			Secret:             "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4}, // min cost keeps tests fast
	}
}

func TestJWT_AccessTokenRoundTrip(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateAccessToken(7, "user@example.com", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken failed: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("expected user id 7, got %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("expected email user@example.com, got %q", claims.Email)
	}
	if !claims.IsAdmin {
		t.Error("expected admin claim to survive the round trip")
	}
}

func TestJWT_RefreshTokenRejectedAsAccess(t *testing.T) {
	m := NewJWTManager(testConfig())

	token, err := m.GenerateRefreshToken(7, "user@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken failed: %v", err)
	}

	if _, err := m.ValidateAccessToken(token); err == nil {
		t.Error("refresh token must not validate as an access token")
	}
	if _, err := m.ValidateRefreshToken(token); err != nil {
		t.Errorf("refresh token must validate as a refresh token: %v", err)
	}
}

func TestJWT_WrongSecretRejected(t *testing.T) {
	m := NewJWTManager(testConfig())
	token, err := m.GenerateAccessToken(7, "user@example.com", false)
	if err != nil {
		t.Fatalf("GenerateAccessToken failed: %v", err)
	}

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "ffffffffffffffffffffffffffffffff"
	other := NewJWTManager(otherCfg)

	if _, err := other.ValidateToken(token); err == nil {
		t.Error("token signed with a different secret must be rejected")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	cases := []struct {
		header string
		want   string
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi"},
		{"bearer abc.def.ghi", "abc.def.ghi"},
		{"Basic dXNlcjpwYXNz", ""},
		{"Bearer", ""},
		{"", ""},
	}

	for _, tc := range cases {
		if got := ExtractTokenFromHeader(tc.header); got != tc.want {
			t.Errorf("ExtractTokenFromHeader(%q) = %q, want %q", tc.header, got, tc.want)
		}
	}
}

func TestPassword_HashAndVerify(t *testing.T) {
	p := NewPasswordManager(testConfig())

	hash, err := p.HashPassword("Sup3rSecret")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "Sup3rSecret" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := p.VerifyPassword("Sup3rSecret", hash); err != nil {
		t.Errorf("expected password to verify: %v", err)
	}
	if err := p.VerifyPassword("wrongPassw0rd", hash); err == nil {
		t.Error("expected wrong password to fail verification")
	}
}

func TestPassword_ValidationRules(t *testing.T) {
	p := NewPasswordManager(testConfig())

	invalid := []string{
		"short1A",     // too short
		"alllowercase1", // no upper
		"ALLUPPERCASE1", // no lower
		"NoNumbersHere", // no digit
	}
	for _, pw := range invalid {
		if err := p.ValidatePassword(pw); err == nil {
			t.Errorf("expected %q to fail validation", pw)
		}
	}

	if err := p.ValidatePassword("Sup3rSecret"); err != nil {
		t.Errorf("expected valid password to pass: %v", err)
	}
}
