package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aibeeinyass/rideboss-system/internal/config"
	"github.com/aibeeinyass/rideboss-system/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (AuthService, *memStaffStore) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	hashStr := string(hash)
	staff := newMemStaffStore(
		domain.User{Username: "ade", Name: "Ade", PasswordHash: &hashStr, Role: domain.RoleManager, Dept: domain.DeptManagement, Active: true},
		domain.User{Username: "gone", Name: "Gone", PasswordHash: &hashStr, Role: domain.RoleStaff, Dept: domain.DeptWetBay, Active: false},
		domain.User{Username: "nopass", Name: "NoPass", Role: domain.RoleStaff, Dept: domain.DeptWetBay, Active: true},
	)
	svc := AuthService{
		Config: config.Config{
			JWTSecret:       "test-secret",
			AccessTokenTTL:  time.Hour,
			RefreshTokenTTL: 24 * time.Hour,
		},
		Users: staff,
	}
	return svc, staff
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)

	res, err := svc.Login(ctx, "ade", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccessToken == "" || res.RefreshToken == "" {
		t.Fatalf("expected both tokens")
	}
	if res.User.Role != domain.RoleManager {
		t.Fatalf("role = %q, want manager", res.User.Role)
	}

	claims, err := svc.parseToken(res.AccessToken, "access")
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}
	if claims["sub"] != "ade" {
		t.Fatalf("sub = %v, want ade", claims["sub"])
	}
}

func TestLoginRejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuthFixture(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "ade", "wrong"},
		{"unknown user", "ghost", "s3cret"},
		{"inactive user", "gone", "s3cret"},
		{"no password set", "nopass", "s3cret"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(ctx, tt.username, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("got %v, want ErrInvalidCredentials", err)
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	svc, staff := newAuthFixture(t)

	res, err := svc.Login(ctx, "ade", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	refreshed, err := svc.Refresh(ctx, res.RefreshToken)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if refreshed.User.Username != "ade" {
		t.Fatalf("refreshed user = %q, want ade", refreshed.User.Username)
	}

	// An access token is not accepted on the refresh path.
	if _, err := svc.Refresh(ctx, res.AccessToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh with access token: got %v, want ErrInvalidToken", err)
	}

	if err := staff.SetActive(ctx, "ade", false); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Refresh(ctx, res.RefreshToken); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("refresh for a deactivated user: got %v, want ErrInvalidToken", err)
	}
}
