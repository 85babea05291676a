package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/eduport/eduport-backend/internal/config"
	"github.com/eduport/eduport-backend/internal/mail"
	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/otp"
	"github.com/eduport/eduport-backend/internal/repository"
)

// Workflow errors.
var (
	ErrAccountNotFound  = errors.New("no account matches this email")
	ErrOTPNotFound      = errors.New("no pending code for this email")
	ErrOTPExpired       = errors.New("pending code has expired")
	ErrOTPMismatch      = errors.New("submitted code does not match")
	ErrSamePassword     = errors.New("new password matches the current one")
	ErrDeliveryFailed   = errors.New("could not deliver the code")
	ErrDuplicateAccount = errors.New("an account with this email or username already exists")
)

// RoleProfile is the per-role capability set the shared workflow is
// parameterized over: the role marker, its OTP digit width, and the defaults
// seeded onto a record at verification time.
type RoleProfile struct {
	Role      model.Role
	OTPDigits int
	Finalize  func(acct model.Account, now time.Time)
}

// AccountFlow is the credential workflow for one role: the
// register → verify → persist → authenticate state machine, plus login and
// the two-step password reset. Student and faculty instances share all the
// code and differ only in their RoleProfile and backing collection.
type AccountFlow struct {
	profile  RoleProfile
	accounts repository.AccountStore
	pending  *otp.Store
	mailer   mail.Mailer
	auth     *AuthService
	cfg      *config.Config
	log      zerolog.Logger
}

// NewAccountFlow wires a credential workflow for one role.
func NewAccountFlow(
	profile RoleProfile,
	accounts repository.AccountStore,
	pending *otp.Store,
	mailer mail.Mailer,
	auth *AuthService,
	cfg *config.Config,
	log zerolog.Logger,
) *AccountFlow {
	return &AccountFlow{
		profile:  profile,
		accounts: accounts,
		pending:  pending,
		mailer:   mailer,
		auth:     auth,
		cfg:      cfg,
		log:      log.With().Str("component", "account_flow").Str("role", string(profile.Role)).Logger(),
	}
}

// StartRegistration hashes the password, stages the record beside a freshly
// generated code, and dispatches the code by mail. The staged entry survives
// a delivery failure so the user can still verify if the message went out
// partially. A second start for the same email overwrites the first.
// Returns the masked email shown to the caller.
func (f *AccountFlow) StartRegistration(ctx context.Context, acct model.Account, password string) (string, error) {
	hash, err := f.auth.HashPassword(password)
	if err != nil {
		return "", err
	}
	acct.SetPasswordDigest(hash)

	code, err := otp.Generate(f.profile.OTPDigits)
	if err != nil {
		return "", err
	}

	email := acct.AccountEmail()
	f.pending.Put(email, code, acct, f.cfg.OTPTTL)

	if err := f.sendCode(email, code); err != nil {
		return "", err
	}

	return MaskEmail(email), nil
}

// VerifyRegistration consumes the pending entry for email. A wrong code or an
// elapsed TTL deletes the entry, so a single bad guess forces the user to
// restart registration. On success the staged record is finalized, persisted,
// and a session token is issued.
func (f *AccountFlow) VerifyRegistration(ctx context.Context, email, code string) (string, model.Account, error) {
	entry, ok := f.pending.Get(email)
	if !ok {
		return "", nil, ErrOTPNotFound
	}
	// A reset-scoped entry carries no staged account and cannot complete a
	// registration. Left in place so the reset itself still goes through.
	if entry.Payload == nil {
		return "", nil, ErrOTPNotFound
	}
	if entry.Expired(f.pending.Now()) {
		f.pending.Delete(email)
		return "", nil, ErrOTPExpired
	}
	if entry.Code != code {
		f.pending.Delete(email)
		return "", nil, ErrOTPMismatch
	}

	acct := entry.Payload
	if f.profile.Finalize != nil {
		f.profile.Finalize(acct, f.pending.Now())
	}

	id, err := f.accounts.Insert(ctx, acct)
	if err != nil {
		f.log.Error().Err(err).Str("email", MaskEmail(email)).Msg("Persisting verified account failed")
		if errors.Is(err, repository.ErrDuplicate) {
			return "", nil, ErrDuplicateAccount
		}
		return "", nil, fmt.Errorf("persist account: %w", err)
	}
	acct.SetAccountID(id)
	f.pending.Delete(email)

	token, err := f.auth.GenerateToken(id.Hex(), email, f.profile.Role, f.cfg.VerifiedTTL)
	if err != nil {
		return "", nil, err
	}

	f.log.Info().Str("email", MaskEmail(email)).Msg("Account verified and persisted")
	return token, acct, nil
}

// Login authenticates a persisted account. The remember flag trades the
// short session lifetime for the long remembered one.
func (f *AccountFlow) Login(ctx context.Context, email, password string, remember bool) (string, model.Account, error) {
	acct, err := f.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, ErrAccountNotFound
		}
		return "", nil, err
	}

	if err := f.auth.CheckPassword(acct.PasswordDigest(), password); err != nil {
		return "", nil, err
	}

	ttl := f.cfg.SessionTTL
	if remember {
		ttl = f.cfg.RememberedTTL
	}

	token, err := f.auth.GenerateToken(acct.AccountID().Hex(), email, f.profile.Role, ttl)
	if err != nil {
		return "", nil, err
	}
	return token, acct, nil
}

// LoginTTL reports the token lifetime Login would pick, so the transport
// layer can align the cookie max-age with the token expiry.
func (f *AccountFlow) LoginTTL(remember bool) time.Duration {
	if remember {
		return f.cfg.RememberedTTL
	}
	return f.cfg.SessionTTL
}

// VerifiedTTL reports the lifetime of tokens issued by VerifyRegistration
// and ResetPassword.
func (f *AccountFlow) VerifiedTTL() time.Duration {
	return f.cfg.VerifiedTTL
}

// RequestPasswordReset stages a code-only entry for an email that must
// already have a persisted record, and dispatches the code. The reset reuses
// the registration store and TTL unchanged.
func (f *AccountFlow) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	if _, err := f.accounts.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	code, err := otp.Generate(f.profile.OTPDigits)
	if err != nil {
		return "", err
	}
	f.pending.Put(email, code, nil, f.cfg.OTPTTL)

	if err := f.sendCode(email, code); err != nil {
		return "", err
	}

	return MaskEmail(email), nil
}

// ResetPassword commits a password reset: the pending-entry checks mirror
// VerifyRegistration, then the new password is rejected if it compares equal
// to the digest on file, else hashed and persisted. A fresh session token is
// issued so the caller is logged in immediately.
func (f *AccountFlow) ResetPassword(ctx context.Context, email, code, newPassword string) (string, error) {
	entry, ok := f.pending.Get(email)
	if !ok {
		return "", ErrOTPNotFound
	}
	// A registration-scoped entry is not a reset code.
	if entry.Payload != nil {
		return "", ErrOTPNotFound
	}
	if entry.Expired(f.pending.Now()) {
		f.pending.Delete(email)
		return "", ErrOTPExpired
	}
	if entry.Code != code {
		f.pending.Delete(email)
		return "", ErrOTPMismatch
	}

	acct, err := f.accounts.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	// Comparison, not raw equality: bcrypt digests of equal passwords differ.
	if bcrypt.CompareHashAndPassword([]byte(acct.PasswordDigest()), []byte(newPassword)) == nil {
		return "", ErrSamePassword
	}

	hash, err := f.auth.HashPassword(newPassword)
	if err != nil {
		return "", err
	}
	if err := f.accounts.UpdatePasswordByEmail(ctx, email, hash); err != nil {
		f.log.Error().Err(err).Str("email", MaskEmail(email)).Msg("Persisting password reset failed")
		return "", fmt.Errorf("persist password: %w", err)
	}
	f.pending.Delete(email)

	token, err := f.auth.GenerateToken(acct.AccountID().Hex(), email, f.profile.Role, f.cfg.VerifiedTTL)
	if err != nil {
		return "", err
	}

	f.log.Info().Str("email", MaskEmail(email)).Msg("Password reset committed")
	return token, nil
}

func (f *AccountFlow) sendCode(email, code string) error {
	subject, body := mail.OTPMessage(code, int(f.cfg.OTPTTL.Minutes()))
	if err := f.mailer.Send(email, subject, body); err != nil {
		f.log.Error().Err(err).Str("email", MaskEmail(email)).Msg("OTP delivery failed")
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}
	return nil
}

// MaskEmail redacts an address for display: the first three runes of the
// local part survive, the rest is replaced, the domain stays intact.
func MaskEmail(email string) string {
	at := strings.IndexByte(email, '@')
	if at < 0 {
		return email
	}
	local := []rune(email[:at])
	if len(local) > 3 {
		local = local[:3]
	}
	return string(local) + "****" + email[at:]
}
