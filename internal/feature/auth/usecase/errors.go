package usecase

import "errors"

// authフィーチャーのドメインエラー。ハンドラー層でHTTPステータスに変換されます。
var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidOTP is returned when the submitted verification code does not match.
	ErrInvalidOTP = errors.New("invalid otp")

	// ErrOTPExpired is returned when the verification code is past its expiry.
	ErrOTPExpired = errors.New("otp expired")

	// ErrAlreadyVerified is returned when verification is attempted on an account that is already verified.
	ErrAlreadyVerified = errors.New("account already verified")

	// ErrAccountDeactivated is returned when a deactivated account attempts to log in.
	ErrAccountDeactivated = errors.New("account deactivated")

	// ErrAccountNotVerified is returned when a temp account that never confirmed its OTP attempts to log in.
	ErrAccountNotVerified = errors.New("account not verified")

	// ErrEmailNotVerified is returned when the account exists but the email is still unverified.
	ErrEmailNotVerified = errors.New("email not verified")

	// ErrWrongPassword is returned when the password does not match the stored hash.
	ErrWrongPassword = errors.New("wrong password")
)
