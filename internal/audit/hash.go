package audit

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// hashPayload is the canonical serialization an entry is hashed over.
// Field order is fixed by the struct; map keys inside details are
// sorted by the JSON encoder. Changing this layout invalidates every
// previously written hash.
type hashPayload struct {
	PrevHash   string      `json:"prev_hash"`
	CaseID     string      `json:"case_id"`
	ActionType string      `json:"action_type"`
	ActorID    string      `json:"actor_id"`
	Details    interface{} `json:"details"`
	CreatedAt  string      `json:"created_at"`
}

// ComputeHash derives the SHA-256 hex digest of one entry. Details are
// round-tripped through JSON first, so a freshly built map and the same
// map read back from the store hash identically. The timestamp must
// carry at most microsecond precision, which is what the store keeps.
func ComputeHash(prevHash, caseID, actionType, actorID string, details map[string]interface{}, createdAt time.Time) (string, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return "", err
	}
	var norm interface{}
	if err := json.Unmarshal(raw, &norm); err != nil {
		return "", err
	}

	payload, err := json.Marshal(hashPayload{
		PrevHash:   prevHash,
		CaseID:     caseID,
		ActionType: actionType,
		ActorID:    actorID,
		Details:    norm,
		CreatedAt:  createdAt.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return "", err
	}

	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}

// EntryTime truncates a timestamp to the precision the store keeps, so
// the value hashed at append time round-trips unchanged for later
// verification.
func EntryTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
