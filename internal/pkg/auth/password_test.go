package auth

import (
	"testing"
	"time"

	"github.com/your-org/shopping-cart-backend/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Name: "test"},
		JWT: config.JWTConfig{
			Secret:             "0123456789abcdef0123456789abcdef",
			AccessTokenExpiry:  time.Hour,
			RefreshTokenExpiry: 2 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4}, // min cost keeps tests fast
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	hash, err := pm.HashPassword("correct-horse1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "correct-horse1" {
		t.Fatal("password stored in the clear")
	}

	if err := pm.VerifyPassword("correct-horse1", hash); err != nil {
		t.Errorf("VerifyPassword rejected correct password: %v", err)
	}
	if err := pm.VerifyPassword("wrong-password1", hash); err == nil {
		t.Error("VerifyPassword accepted wrong password")
	}
}

func TestValidatePassword(t *testing.T) {
	pm := NewPasswordManager(testConfig())

	tests := []struct {
		password string
		wantErr  bool
	}{
		{"short1", true},
		{"allletters", true},
		{"12345678", true},
		{"valid-pass1", false},
	}
	for _, tt := range tests {
		err := pm.ValidatePassword(tt.password)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePassword(%q) err = %v, wantErr %v", tt.password, err, tt.wantErr)
		}
	}
}
