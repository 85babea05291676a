package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrAdminDisabled      ErrCode = "ADMIN_LOGIN_DISABLED"

	// ─── OTP workflow ──────────────────────────────────────────────────
	ErrOTPNotFound  ErrCode = "OTP_NOT_FOUND"
	ErrOTPExpired   ErrCode = "OTP_EXPIRED"
	ErrOTPInvalid   ErrCode = "OTP_INVALID"
	ErrSamePassword ErrCode = "SAME_PASSWORD"

	// ─── Authorization ─────────────────────────────────────────────────
	ErrForbidden ErrCode = "FORBIDDEN"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrConflict ErrCode = "CONFLICT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server / collaborators ────────────────────────────────────────
	ErrDeliveryFailed ErrCode = "DELIVERY_FAILED"
	ErrInternal       ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Invalid credentials."
	case ErrTokenRequired:
		return "Authentication token required."
	case ErrTokenInvalid:
		return "Authentication token is invalid or expired."
	case ErrAdminDisabled:
		return "Admin login is not enabled on this server."

	// ─── OTP workflow ──────────────────────────────────────────────────
	case ErrOTPNotFound:
		return "Invalid or expired OTP. Please request a new one."
	case ErrOTPExpired:
		return "OTP has expired. Please request a new one."
	case ErrOTPInvalid:
		return "Invalid OTP."
	case ErrSamePassword:
		return "New password cannot be the same as the previous one."

	// ─── Authorization ─────────────────────────────────────────────────
	case ErrForbidden:
		return "You do not have permission to perform this action."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid ID format."
	case ErrInvalidPayload:
		return "Invalid request payload."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "Resource already exists."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server / collaborators ────────────────────────────────────────
	case ErrDeliveryFailed:
		return "Could not deliver the verification email. Please try again."
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
