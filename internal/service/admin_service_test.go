package service

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/otp"
)

func newAdminFixture(t *testing.T, adminEmail, adminPassword string) (*AdminService, *otp.Store, *fakeMailer, *AuthService) {
	t.Helper()
	cfg := testConfig()
	cfg.AdminEmail = adminEmail
	cfg.AdminPassword = adminPassword

	pending := otp.NewStore()
	mailer := &fakeMailer{}
	auth := NewAuthService(cfg)
	svc := NewAdminService(pending, mailer, auth, cfg, zerolog.Nop())
	return svc, pending, mailer, auth
}

func TestAdminLoginDisabledWithoutCredentials(t *testing.T) {
	svc, _, _, _ := newAdminFixture(t, "", "")

	if _, err := svc.StartLogin("anything"); !errors.Is(err, ErrAdminDisabled) {
		t.Fatalf("StartLogin err = %v, want ErrAdminDisabled", err)
	}
	if _, err := svc.VerifyLogin("123456"); !errors.Is(err, ErrAdminDisabled) {
		t.Fatalf("VerifyLogin err = %v, want ErrAdminDisabled", err)
	}
}

func TestAdminLoginWrongPassword(t *testing.T) {
	svc, pending, mailer, _ := newAdminFixture(t, "admin@uni.edu", "s3cret")

	if _, err := svc.StartLogin("wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
	if pending.Len() != 0 {
		t.Error("entry staged despite wrong password")
	}
	if len(mailer.sent) != 0 {
		t.Error("mail sent despite wrong password")
	}
}

func TestAdminLoginHappyPath(t *testing.T) {
	svc, pending, mailer, auth := newAdminFixture(t, "admin@uni.edu", "s3cret")

	masked, err := svc.StartLogin("s3cret")
	if err != nil {
		t.Fatalf("StartLogin: %v", err)
	}
	if masked != "adm****@uni.edu" {
		t.Errorf("masked = %q", masked)
	}
	if len(mailer.sent) != 1 || mailer.sent[0] != "admin@uni.edu" {
		t.Fatalf("mailer sent = %v", mailer.sent)
	}

	entry, ok := pending.Get("admin@uni.edu")
	if !ok {
		t.Fatal("no staged admin code")
	}
	if len(entry.Code) != 6 {
		t.Errorf("admin code %q, want 6 digits", entry.Code)
	}

	token, err := svc.VerifyLogin(entry.Code)
	if err != nil {
		t.Fatalf("VerifyLogin: %v", err)
	}
	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Role != model.RoleAdmin {
		t.Errorf("role = %q", claims.Role)
	}
	if _, ok := pending.Get("admin@uni.edu"); ok {
		t.Error("entry survived verification")
	}
}

func TestAdminVerifyWrongCodeBurnsEntry(t *testing.T) {
	svc, pending, _, _ := newAdminFixture(t, "admin@uni.edu", "s3cret")

	if _, err := svc.StartLogin("s3cret"); err != nil {
		t.Fatal(err)
	}
	entry, _ := pending.Get("admin@uni.edu")

	wrong := "000000"
	if wrong == entry.Code {
		wrong = "000001"
	}
	if _, err := svc.VerifyLogin(wrong); !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("err = %v, want ErrOTPMismatch", err)
	}
	if _, err := svc.VerifyLogin(entry.Code); !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("err = %v, want ErrOTPNotFound after burned entry", err)
	}
}
