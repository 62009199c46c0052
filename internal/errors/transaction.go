package errors

var (
	ErrTransactionNotFound = &DomainError{
		Code:    "TRANSACTION_NOT_FOUND",
		Message: "transaction not found",
	}
	ErrInvalidTransactionType = &DomainError{
		Code:    "INVALID_TRANSACTION_TYPE",
		Message: "invalid transaction type",
	}
	ErrInvalidTransition = &DomainError{
		Code:    "INVALID_TRANSITION",
		Message: "transaction is already in a terminal state",
	}
	ErrForbidden = &DomainError{
		Code:    "FORBIDDEN",
		Message: "you do not own this resource",
	}
)
