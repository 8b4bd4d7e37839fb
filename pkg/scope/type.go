package scope

import (
	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
)

// Payload is the verified token payload carried through request context.
type Payload struct {
	UserID    string
	Username  string
	Role      string
	Subject   string
	Issuer    string
	ID        string
	IssuedAt  int64
	ExpiresAt int64
}

// Manager verifies boundary credentials into a scope.
type Manager interface {
	Verify(token string) (Payload, error)
}

// NewScope creates a new scope from a verified payload.
func NewScope(payload Payload) model.Scope {
	userID := payload.UserID
	if userID == "" {
		userID = payload.Subject
	}

	return model.Scope{
		UserID:   userID,
		Username: payload.Username,
		Role:     payload.Role,
	}
}
