package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/eduport/eduport-backend/internal/config"
	"github.com/eduport/eduport-backend/internal/mail"
	"github.com/eduport/eduport-backend/internal/model"
	"github.com/eduport/eduport-backend/internal/otp"
)

// ErrAdminDisabled is returned when the admin surface has no configured
// credentials and is therefore switched off.
var ErrAdminDisabled = errors.New("admin login is not configured")

// AdminService runs the operator login: a single configured identity, a
// wider OTP sent to the configured address, and a short-lived token. There
// is no admin collection; the identity lives entirely in configuration.
type AdminService struct {
	pending *otp.Store
	mailer  mail.Mailer
	auth    *AuthService
	cfg     *config.Config
	log     zerolog.Logger
}

// NewAdminService creates the operator login service.
func NewAdminService(pending *otp.Store, mailer mail.Mailer, auth *AuthService, cfg *config.Config, log zerolog.Logger) *AdminService {
	return &AdminService{
		pending: pending,
		mailer:  mailer,
		auth:    auth,
		cfg:     cfg,
		log:     log.With().Str("component", "admin_service").Logger(),
	}
}

// StartLogin checks the submitted password against the configured one and
// stages a code keyed by the configured admin address. Returns the masked
// address the code was sent to.
func (s *AdminService) StartLogin(password string) (string, error) {
	if !s.cfg.AdminEnabled() {
		return "", ErrAdminDisabled
	}
	if password != s.cfg.AdminPassword {
		return "", ErrInvalidCredentials
	}

	code, err := otp.Generate(s.cfg.AdminOTPDigits)
	if err != nil {
		return "", err
	}
	s.pending.Put(s.cfg.AdminEmail, code, nil, s.cfg.OTPTTL)

	subject, body := mail.OTPMessage(code, int(s.cfg.OTPTTL.Minutes()))
	if err := s.mailer.Send(s.cfg.AdminEmail, subject, body); err != nil {
		s.log.Error().Err(err).Msg("Admin OTP delivery failed")
		return "", fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return MaskEmail(s.cfg.AdminEmail), nil
}

// VerifyLogin consumes the staged admin code and issues the short operator
// token. Wrong or expired codes burn the entry, same as the account flows.
func (s *AdminService) VerifyLogin(code string) (string, error) {
	if !s.cfg.AdminEnabled() {
		return "", ErrAdminDisabled
	}

	entry, ok := s.pending.Get(s.cfg.AdminEmail)
	if !ok {
		return "", ErrOTPNotFound
	}
	if entry.Expired(s.pending.Now()) {
		s.pending.Delete(s.cfg.AdminEmail)
		return "", ErrOTPExpired
	}
	if entry.Code != code {
		s.pending.Delete(s.cfg.AdminEmail)
		return "", ErrOTPMismatch
	}
	s.pending.Delete(s.cfg.AdminEmail)

	token, err := s.auth.GenerateToken("admin", s.cfg.AdminEmail, model.RoleAdmin, s.cfg.AdminTTL)
	if err != nil {
		return "", err
	}

	s.log.Info().Msg("Admin session issued")
	return token, nil
}
