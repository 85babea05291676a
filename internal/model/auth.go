package model

// VerifyOTPRequest confirms a pending registration.
type VerifyOTPRequest struct {
	Email string `json:"email" binding:"required,email"`
	OTP   string `json:"otp" binding:"required,numeric"`
}

// LoginRequest authenticates a persisted account.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Remember bool   `json:"remember_me"`
}

// ForgotPasswordRequest starts the password-reset flow.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ResetPasswordRequest commits a password reset.
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	OTP         string `json:"otp" binding:"required,numeric"`
	NewPassword string `json:"new_password" binding:"required,min=6,max=128"`
}

// CheckEmailRequest asks whether an email is still available.
type CheckEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// AdminLoginRequest starts the fixed-credential admin flow. Only the shared
// secret is submitted; the destination email is configured server-side.
type AdminLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// AdminVerifyOTPRequest completes the admin flow.
type AdminVerifyOTPRequest struct {
	OTP string `json:"otp" binding:"required,numeric"`
}
