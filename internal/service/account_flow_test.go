package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduport/eduport-backend/internal/config"
	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/otp"
	"github.com/eduport/eduport-backend/internal/repository"
)

// fakeAccounts is an in-memory AccountStore.
type fakeAccounts struct {
	byEmail   map[string]model.Account
	insertErr error
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{byEmail: make(map[string]model.Account)}
}

func (f *fakeAccounts) FindByEmail(_ context.Context, email string) (model.Account, error) {
	acct, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return acct, nil
}

func (f *fakeAccounts) Insert(_ context.Context, acct model.Account) (primitive.ObjectID, error) {
	if f.insertErr != nil {
		return primitive.NilObjectID, f.insertErr
	}
	if _, ok := f.byEmail[acct.AccountEmail()]; ok {
		return primitive.NilObjectID, repository.ErrDuplicate
	}
	id := primitive.NewObjectID()
	acct.SetAccountID(id)
	f.byEmail[acct.AccountEmail()] = acct
	return id, nil
}

func (f *fakeAccounts) UpdatePasswordByEmail(_ context.Context, email, hash string) error {
	acct, ok := f.byEmail[email]
	if !ok {
		return repository.ErrNotFound
	}
	acct.SetPasswordDigest(hash)
	return nil
}

// fakeMailer records outgoing messages.
type fakeMailer struct {
	sent    []string // recipients in order
	bodies  []string
	sendErr error
}

func (f *fakeMailer) Send(to, _, body string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	f.bodies = append(f.bodies, body)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		JWTSecret:      "test-secret",
		BcryptCost:     bcrypt.MinCost,
		OTPTTL:         10 * time.Minute,
		OTPDigits:      5,
		AdminOTPDigits: 6,
		SessionTTL:     24 * time.Hour,
		RememberedTTL:  180 * 24 * time.Hour,
		VerifiedTTL:    7 * 24 * time.Hour,
		AdminTTL:       time.Hour,
	}
}

type flowFixture struct {
	flow     *AccountFlow
	accounts *fakeAccounts
	mailer   *fakeMailer
	pending  *otp.Store
	cfg      *config.Config
	auth     *AuthService
	now      *time.Time
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()
	cfg := testConfig()
	accounts := newFakeAccounts()
	mailer := &fakeMailer{}
	pending := otp.NewStore()
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	pending.SetClock(func() time.Time { return now })
	auth := NewAuthService(cfg)

	profile := RoleProfile{
		Role:      model.RoleStudent,
		OTPDigits: cfg.OTPDigits,
		Finalize: func(acct model.Account, now time.Time) {
			if s, ok := acct.(*model.Student); ok {
				s.SeedDefaults(now)
			}
		},
	}
	flow := NewAccountFlow(profile, accounts, pending, mailer, auth, cfg, zerolog.Nop())
	return &flowFixture{flow: flow, accounts: accounts, mailer: mailer, pending: pending, cfg: cfg, auth: auth, now: &now}
}

func stagedCode(t *testing.T, pending *otp.Store, email string) string {
	t.Helper()
	entry, ok := pending.Get(email)
	if !ok {
		t.Fatalf("no pending entry for %s", email)
	}
	return entry.Code
}

func TestRegistrationHappyPath(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()
	student := &model.Student{Name: "Alice", Username: "alice", Email: "alice@example.com"}

	masked, err := fx.flow.StartRegistration(ctx, student, "hunter42")
	if err != nil {
		t.Fatalf("StartRegistration: %v", err)
	}
	if masked != "ali****@example.com" {
		t.Errorf("masked = %q", masked)
	}
	if len(fx.mailer.sent) != 1 || fx.mailer.sent[0] != "alice@example.com" {
		t.Fatalf("mailer sent = %v", fx.mailer.sent)
	}

	// Staged, not persisted; password already hashed.
	if _, ok := fx.accounts.byEmail["alice@example.com"]; ok {
		t.Fatal("account persisted before verification")
	}
	entry, _ := fx.pending.Get("alice@example.com")
	if entry.Payload.PasswordDigest() == "hunter42" {
		t.Fatal("staged password not hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(entry.Payload.PasswordDigest()), []byte("hunter42")) != nil {
		t.Fatal("staged digest does not match submitted password")
	}

	token, acct, err := fx.flow.VerifyRegistration(ctx, "alice@example.com", entry.Code)
	if err != nil {
		t.Fatalf("VerifyRegistration: %v", err)
	}
	if acct.AccountID().IsZero() {
		t.Error("persisted account has zero id")
	}
	if _, ok := fx.pending.Get("alice@example.com"); ok {
		t.Error("pending entry survived verification")
	}

	// Seeded defaults applied at verification time.
	persisted := fx.accounts.byEmail["alice@example.com"].(*model.Student)
	if persisted.Role != model.RoleStudent {
		t.Errorf("role = %q", persisted.Role)
	}
	if len(persisted.Attendance) != 1 || persisted.Attendance[0].Month != "August" {
		t.Errorf("seeded attendance = %+v", persisted.Attendance)
	}

	claims, err := fx.auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Role != model.RoleStudent || claims.Email != "alice@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestVerifyWrongCodeBurnsEntry(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()
	student := &model.Student{Email: "bob@example.com"}

	if _, err := fx.flow.StartRegistration(ctx, student, "password1"); err != nil {
		t.Fatal(err)
	}
	code := stagedCode(t, fx.pending, "bob@example.com")

	wrong := "00000"
	if wrong == code {
		wrong = "00001"
	}
	_, _, err := fx.flow.VerifyRegistration(ctx, "bob@example.com", wrong)
	if !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("err = %v, want ErrOTPMismatch", err)
	}

	// One wrong guess deletes the entry; the right code now misses.
	_, _, err = fx.flow.VerifyRegistration(ctx, "bob@example.com", code)
	if !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("err = %v, want ErrOTPNotFound after burned entry", err)
	}
}

func TestVerifyExpiredCode(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()
	student := &model.Student{Email: "carol@example.com"}

	if _, err := fx.flow.StartRegistration(ctx, student, "password1"); err != nil {
		t.Fatal(err)
	}
	code := stagedCode(t, fx.pending, "carol@example.com")

	*fx.now = fx.now.Add(fx.cfg.OTPTTL + time.Second)

	_, _, err := fx.flow.VerifyRegistration(ctx, "carol@example.com", code)
	if !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("err = %v, want ErrOTPExpired", err)
	}
	if _, ok := fx.pending.Get("carol@example.com"); ok {
		t.Error("expired entry not deleted")
	}
}

func TestVerifyUnknownEmail(t *testing.T) {
	fx := newFlowFixture(t)
	_, _, err := fx.flow.VerifyRegistration(context.Background(), "nobody@example.com", "12345")
	if !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("err = %v, want ErrOTPNotFound", err)
	}
}

func TestDoubleRegistrationSecondCodeWins(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()

	if _, err := fx.flow.StartRegistration(ctx, &model.Student{Email: "dave@example.com"}, "first-pass"); err != nil {
		t.Fatal(err)
	}
	first := stagedCode(t, fx.pending, "dave@example.com")

	if _, err := fx.flow.StartRegistration(ctx, &model.Student{Email: "dave@example.com"}, "second-pass"); err != nil {
		t.Fatal(err)
	}
	second := stagedCode(t, fx.pending, "dave@example.com")

	if first == second {
		t.Skip("codes collided; re-run would distinguish")
	}

	if _, _, err := fx.flow.VerifyRegistration(ctx, "dave@example.com", first); !errors.Is(err, ErrOTPMismatch) {
		t.Fatalf("stale code err = %v, want ErrOTPMismatch", err)
	}
}

func TestDeliveryFailureKeepsEntry(t *testing.T) {
	fx := newFlowFixture(t)
	fx.mailer.sendErr = errors.New("relay down")

	_, err := fx.flow.StartRegistration(context.Background(), &model.Student{Email: "eve@example.com"}, "password1")
	if !errors.Is(err, ErrDeliveryFailed) {
		t.Fatalf("err = %v, want ErrDeliveryFailed", err)
	}
	if _, ok := fx.pending.Get("eve@example.com"); !ok {
		t.Error("pending entry dropped on delivery failure")
	}
}

func TestLogin(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()

	hash, _ := fx.auth.HashPassword("correct-horse")
	fx.accounts.byEmail["frank@example.com"] = &model.Student{
		ID:       primitive.NewObjectID(),
		Email:    "frank@example.com",
		Password: hash,
	}

	token, _, err := fx.flow.Login(ctx, "frank@example.com", "correct-horse", false)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	if _, _, err := fx.flow.Login(ctx, "frank@example.com", "wrong", false); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("wrong password err = %v", err)
	}
	if _, _, err := fx.flow.Login(ctx, "ghost@example.com", "whatever", false); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("unknown email err = %v", err)
	}
}

func TestLoginTTL(t *testing.T) {
	fx := newFlowFixture(t)
	if got := fx.flow.LoginTTL(false); got != fx.cfg.SessionTTL {
		t.Errorf("plain TTL = %v", got)
	}
	if got := fx.flow.LoginTTL(true); got != fx.cfg.RememberedTTL {
		t.Errorf("remembered TTL = %v", got)
	}
}

func TestPasswordResetHappyPath(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()

	hash, _ := fx.auth.HashPassword("old-password")
	fx.accounts.byEmail["grace@example.com"] = &model.Student{
		ID:       primitive.NewObjectID(),
		Email:    "grace@example.com",
		Password: hash,
	}

	masked, err := fx.flow.RequestPasswordReset(ctx, "grace@example.com")
	if err != nil {
		t.Fatalf("RequestPasswordReset: %v", err)
	}
	if masked != "gra****@example.com" {
		t.Errorf("masked = %q", masked)
	}
	entry, _ := fx.pending.Get("grace@example.com")
	if entry.Payload != nil {
		t.Error("reset entry should carry no staged account")
	}

	token, err := fx.flow.ResetPassword(ctx, "grace@example.com", entry.Code, "new-password")
	if err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}
	if _, ok := fx.pending.Get("grace@example.com"); ok {
		t.Error("pending entry survived reset")
	}

	stored := fx.accounts.byEmail["grace@example.com"].PasswordDigest()
	if bcrypt.CompareHashAndPassword([]byte(stored), []byte("new-password")) != nil {
		t.Error("stored digest does not match the new password")
	}
}

func TestPasswordResetSamePasswordRejected(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()

	hash, _ := fx.auth.HashPassword("unchanged")
	fx.accounts.byEmail["heidi@example.com"] = &model.Student{
		ID:       primitive.NewObjectID(),
		Email:    "heidi@example.com",
		Password: hash,
	}

	if _, err := fx.flow.RequestPasswordReset(ctx, "heidi@example.com"); err != nil {
		t.Fatal(err)
	}
	code := stagedCode(t, fx.pending, "heidi@example.com")

	_, err := fx.flow.ResetPassword(ctx, "heidi@example.com", code, "unchanged")
	if !errors.Is(err, ErrSamePassword) {
		t.Fatalf("err = %v, want ErrSamePassword", err)
	}
}

func TestPasswordResetUnknownEmailStagesNothing(t *testing.T) {
	fx := newFlowFixture(t)

	_, err := fx.flow.RequestPasswordReset(context.Background(), "ghost@example.com")
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("err = %v, want ErrAccountNotFound", err)
	}
	if fx.pending.Len() != 0 {
		t.Error("entry staged for unknown email")
	}
	if len(fx.mailer.sent) != 0 {
		t.Error("mail sent for unknown email")
	}
}

func TestVerifyDuplicateAccount(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()

	fx.accounts.byEmail["ivan@example.com"] = &model.Student{
		ID:    primitive.NewObjectID(),
		Email: "ivan@example.com",
	}

	if _, err := fx.flow.StartRegistration(ctx, &model.Student{Email: "ivan@example.com"}, "password1"); err != nil {
		t.Fatal(err)
	}
	code := stagedCode(t, fx.pending, "ivan@example.com")

	_, _, err := fx.flow.VerifyRegistration(ctx, "ivan@example.com", code)
	if !errors.Is(err, ErrDuplicateAccount) {
		t.Fatalf("err = %v, want ErrDuplicateAccount", err)
	}
}

func TestVerifyThroughOtherFlowRejected(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()

	// Wired the way the server wires it: the faculty flow gets its own
	// pending store and its own collection.
	facultyAccounts := newFakeAccounts()
	facultyPending := otp.NewStore()
	facultyFlow := NewAccountFlow(
		RoleProfile{
			Role:      model.RoleFaculty,
			OTPDigits: fx.cfg.OTPDigits,
			Finalize: func(acct model.Account, now time.Time) {
				if f, ok := acct.(*model.Faculty); ok {
					f.SeedDefaults(now)
				}
			},
		},
		facultyAccounts, facultyPending, fx.mailer, fx.auth, fx.cfg, zerolog.Nop(),
	)

	student := &model.Student{Name: "Judy", Username: "judy", Email: "judy@example.com"}
	if _, err := fx.flow.StartRegistration(ctx, student, "password1"); err != nil {
		t.Fatal(err)
	}
	code := stagedCode(t, fx.pending, "judy@example.com")

	_, _, err := facultyFlow.VerifyRegistration(ctx, "judy@example.com", code)
	if !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("err = %v, want ErrOTPNotFound", err)
	}
	if len(facultyAccounts.byEmail) != 0 {
		t.Fatal("student registration landed in the faculty collection")
	}

	// The legitimate verify is unaffected.
	if _, _, err := fx.flow.VerifyRegistration(ctx, "judy@example.com", code); err != nil {
		t.Fatalf("VerifyRegistration: %v", err)
	}
}

func TestResetCodeRejectedForRegistration(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()

	hash, _ := fx.auth.HashPassword("original")
	fx.accounts.byEmail["kate@example.com"] = &model.Student{
		ID:       primitive.NewObjectID(),
		Email:    "kate@example.com",
		Password: hash,
	}

	if _, err := fx.flow.RequestPasswordReset(ctx, "kate@example.com"); err != nil {
		t.Fatal(err)
	}
	code := stagedCode(t, fx.pending, "kate@example.com")

	// A reset entry stages no account and must not complete a registration.
	_, _, err := fx.flow.VerifyRegistration(ctx, "kate@example.com", code)
	if !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("err = %v, want ErrOTPNotFound", err)
	}

	// The entry survives the rejected attempt and still completes the reset.
	if _, err := fx.flow.ResetPassword(ctx, "kate@example.com", code, "brand-new"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
}

func TestRegistrationCodeRejectedForReset(t *testing.T) {
	fx := newFlowFixture(t)
	ctx := context.Background()

	student := &model.Student{Name: "Liam", Username: "liam", Email: "liam@example.com"}
	if _, err := fx.flow.StartRegistration(ctx, student, "password1"); err != nil {
		t.Fatal(err)
	}
	code := stagedCode(t, fx.pending, "liam@example.com")

	_, err := fx.flow.ResetPassword(ctx, "liam@example.com", code, "another1")
	if !errors.Is(err, ErrOTPNotFound) {
		t.Fatalf("err = %v, want ErrOTPNotFound", err)
	}
}

func TestMaskEmail(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"alice@example.com", "ali****@example.com"},
		{"ab@example.com", "ab****@example.com"},
		{"a@example.com", "a****@example.com"},
		{"abcdef@uni.edu", "abc****@uni.edu"},
		{"łukasz@uni.edu", "łuk****@uni.edu"},
		{"no-at-sign", "no-at-sign"},
	}
	for _, tc := range cases {
		if got := MaskEmail(tc.in); got != tc.want {
			t.Errorf("MaskEmail(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
