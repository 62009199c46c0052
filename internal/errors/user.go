package errors

var (
	ErrUserNotFound = &DomainError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
	}
	ErrCurrencyNotFound = &DomainError{
		Code:    "CURRENCY_NOT_FOUND",
		Message: "currency not found",
	}
	ErrDuplicateEmail = &DomainError{
		Code:    "DUPLICATE_EMAIL",
		Message: "email is already registered",
	}
	ErrDuplicateUsername = &DomainError{
		Code:    "DUPLICATE_USERNAME",
		Message: "username is already taken",
	}
	// ErrDuplicateUser covers unique-index violations where the database
	// does not say which of email or username collided.
	ErrDuplicateUser = &DomainError{
		Code:    "DUPLICATE_USER",
		Message: "email or username is already registered",
	}
	ErrInvalidCredentials = &DomainError{
		Code:    "INVALID_CREDENTIALS",
		Message: "invalid email or password",
	}
	ErrInactiveUser = &DomainError{
		Code:    "INACTIVE_USER",
		Message: "user account is inactive",
	}
	ErrUserInUse = &DomainError{
		Code:    "USER_IN_USE",
		Message: "user still owns wallets or transactions",
	}
)
