package transaction

import (
	"cryptowallet/internal/models"
)

// CanTransition reports whether a transaction may move from one status to
// another. Pending is the only creation state; Completed, Failed, and
// Cancelled are final. Re-entering a terminal state (including repeating
// Completed) is rejected, so a record that reached Completed keeps its
// completion timestamp forever.
func CanTransition(from, to models.TransactionStatus) bool {
	if from.Terminal() {
		return false
	}
	return to.Terminal()
}
