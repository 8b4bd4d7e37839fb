package audit

import (
	"testing"
	"time"

	"github.com/rodgerswisdom/safegal-guardian-alert/internal/model"
)

func TestComputeHash(t *testing.T) {
	at := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	details := map[string]interface{}{"score": 85, "county": "Kisumu"}

	t.Run("deterministic", func(t *testing.T) {
		h1, err := ComputeHash(model.GenesisHash, "case-1", "created", "user-1", details, at)
		if err != nil {
			t.Fatalf("ComputeHash: %v", err)
		}
		h2, err := ComputeHash(model.GenesisHash, "case-1", "created", "user-1", details, at)
		if err != nil {
			t.Fatalf("ComputeHash: %v", err)
		}
		if h1 != h2 {
			t.Errorf("same inputs produced different hashes: %s vs %s", h1, h2)
		}
		if len(h1) != 64 {
			t.Errorf("expected 64 hex chars, got %d", len(h1))
		}
	})

	t.Run("sensitive to every field", func(t *testing.T) {
		base, _ := ComputeHash(model.GenesisHash, "case-1", "created", "user-1", details, at)

		variants := []struct {
			name string
			hash func() (string, error)
		}{
			{"prev hash", func() (string, error) {
				return ComputeHash("ff", "case-1", "created", "user-1", details, at)
			}},
			{"case id", func() (string, error) {
				return ComputeHash(model.GenesisHash, "case-2", "created", "user-1", details, at)
			}},
			{"action type", func() (string, error) {
				return ComputeHash(model.GenesisHash, "case-1", "cpo_ack", "user-1", details, at)
			}},
			{"actor", func() (string, error) {
				return ComputeHash(model.GenesisHash, "case-1", "created", "user-2", details, at)
			}},
			{"details", func() (string, error) {
				return ComputeHash(model.GenesisHash, "case-1", "created", "user-1", map[string]interface{}{"score": 86, "county": "Kisumu"}, at)
			}},
			{"timestamp", func() (string, error) {
				return ComputeHash(model.GenesisHash, "case-1", "created", "user-1", details, at.Add(time.Second))
			}},
		}
		for _, v := range variants {
			h, err := v.hash()
			if err != nil {
				t.Fatalf("%s: %v", v.name, err)
			}
			if h == base {
				t.Errorf("changing %s did not change the hash", v.name)
			}
		}
	})

	t.Run("details survive a store round trip", func(t *testing.T) {
		// Integers become float64 when details come back from JSON
		// storage. Both forms must hash the same.
		fresh := map[string]interface{}{"score": 85}
		stored := map[string]interface{}{"score": float64(85)}

		h1, _ := ComputeHash(model.GenesisHash, "case-1", "created", "user-1", fresh, at)
		h2, _ := ComputeHash(model.GenesisHash, "case-1", "created", "user-1", stored, at)
		if h1 != h2 {
			t.Errorf("fresh and stored details hashed differently: %s vs %s", h1, h2)
		}
	})

	t.Run("nil details", func(t *testing.T) {
		if _, err := ComputeHash(model.GenesisHash, "case-1", "created", "user-1", nil, at); err != nil {
			t.Fatalf("ComputeHash with nil details: %v", err)
		}
	})
}

func TestEntryTime(t *testing.T) {
	in := time.Date(2026, 3, 10, 12, 0, 0, 123456789, time.FixedZone("EAT", 3*3600))
	got := EntryTime(in)
	if got.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", got.Location())
	}
	if got.Nanosecond() != 123456000 {
		t.Errorf("expected microsecond precision, got %d ns", got.Nanosecond())
	}
}
