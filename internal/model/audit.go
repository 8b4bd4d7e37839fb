package model

import "time"

// GenesisHash is the prev_hash of the first entry ever written.
const GenesisHash = "0000000000000000000000000000000000000000000000000000000000000000"

// Audit action types.
const (
	ActionCreated           = "created"
	ActionCPOAck            = "cpo_ack"
	ActionNGOAck            = "ngo_ack"
	ActionCallGuardian      = "call_guardian"
	ActionSchoolVisitBooked = "school_visit_booked"
	ActionEscortToClinic    = "escort_to_clinic"
	ActionClosed            = "closed"
	ActionMarkedUnfounded   = "marked_unfounded"
)

// AuditEntry is one link in the append-only hash chain. Entries are
// ordered by a global sequence; prev_hash of entry N equals hash of
// entry N-1, or GenesisHash for the first entry.
type AuditEntry struct {
	ID         string
	Seq        int64
	CaseID     string
	ActionType string
	ActorID    string
	Details    map[string]interface{}
	PrevHash   string
	Hash       string
	CreatedAt  time.Time
}

// ReconciliationRecord flags a case whose audit append could not be
// completed nor rolled back, pending operator reconciliation.
type ReconciliationRecord struct {
	ID         string
	CaseID     string
	ActionType string
	ActorID    string
	Reason     string
	ResolvedAt *time.Time
	CreatedAt  time.Time
}
