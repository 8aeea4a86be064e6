package auth

import (
	"testing"

	"github.com/google/uuid"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	jm := NewJWTManager(testConfig())
	userID := uuid.New()

	token, err := jm.GenerateAccessToken(userID, "user@example.com", true)
	if err != nil {
		t.Fatalf("GenerateAccessToken: %v", err)
	}

	claims, err := jm.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("user id = %s, want %s", claims.UserID, userID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("email = %q", claims.Email)
	}
	if !claims.IsAdmin {
		t.Error("is_admin lost in round trip")
	}
}

func TestRefreshTokenIsNotAnAccessToken(t *testing.T) {
	jm := NewJWTManager(testConfig())

	refresh, err := jm.GenerateRefreshToken(uuid.New(), "user@example.com")
	if err != nil {
		t.Fatalf("GenerateRefreshToken: %v", err)
	}

	if _, err := jm.ValidateAccessToken(refresh); err == nil {
		t.Error("refresh token accepted as access token")
	}
	if _, err := jm.ValidateRefreshToken(refresh); err != nil {
		t.Errorf("ValidateRefreshToken: %v", err)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	jm := NewJWTManager(testConfig())

	if _, err := jm.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}
}

func TestExtractTokenFromHeader(t *testing.T) {
	if got := ExtractTokenFromHeader("Bearer abc.def.ghi"); got != "abc.def.ghi" {
		t.Errorf("got %q", got)
	}
	if got := ExtractTokenFromHeader("abc.def.ghi"); got != "" {
		t.Errorf("missing Bearer prefix accepted: %q", got)
	}
	if got := ExtractTokenFromHeader(""); got != "" {
		t.Errorf("empty header produced %q", got)
	}
}
