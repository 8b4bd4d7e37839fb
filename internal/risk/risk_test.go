package risk

import (
	"strings"
	"testing"
)

func TestScore(t *testing.T) {
	t.Run("baseline plus age only", func(t *testing.T) {
		a := Score(AgeBand16To17, nil, "")
		if a.Score != 60 {
			t.Errorf("score = %d, want 60", a.Score)
		}
		if len(a.Reasons) != 1 {
			t.Errorf("reasons = %v, want exactly the age reason", a.Reasons)
		}
	})

	t.Run("injury signs in critical band clamps to 100", func(t *testing.T) {
		a := Score(AgeBand13To15, []string{TagInjurySigns}, "")
		if a.Score != 100 {
			t.Errorf("score = %d, want 100", a.Score)
		}
		if len(a.Reasons) != 2 {
			t.Fatalf("reasons = %v, want age band then injury signs", a.Reasons)
		}
		if !strings.Contains(a.Reasons[0], "Critical age group") {
			t.Errorf("first reason = %q, want age band reason", a.Reasons[0])
		}
		if !strings.Contains(a.Reasons[1], "injury") {
			t.Errorf("second reason = %q, want injury signs reason", a.Reasons[1])
		}
	})

	t.Run("tags evaluated in canonical order", func(t *testing.T) {
		// Submit in reverse order; reasons must still follow canonical order.
		a := Score(AgeBand10To12, []string{TagCommunityRumor, TagUpcomingCeremony}, "")
		b := Score(AgeBand10To12, []string{TagUpcomingCeremony, TagCommunityRumor}, "")

		if a.Score != b.Score {
			t.Errorf("tag order changed score: %d vs %d", a.Score, b.Score)
		}
		if len(a.Reasons) != 3 || len(b.Reasons) != 3 {
			t.Fatalf("reasons = %v / %v, want 3 each", a.Reasons, b.Reasons)
		}
		for i := range a.Reasons {
			if a.Reasons[i] != b.Reasons[i] {
				t.Errorf("reason %d differs: %q vs %q", i, a.Reasons[i], b.Reasons[i])
			}
		}
		if !strings.Contains(a.Reasons[1], "ceremony") {
			t.Errorf("reason order not canonical: %v", a.Reasons)
		}
	})

	t.Run("unknown tags contribute nothing", func(t *testing.T) {
		base := Score(AgeBand16To17, nil, "")
		withUnknown := Score(AgeBand16To17, []string{"not_a_tag", "whatever"}, "")
		if base.Score != withUnknown.Score {
			t.Errorf("unknown tag changed score: %d vs %d", base.Score, withUnknown.Score)
		}
	})

	t.Run("note bonus capped at 20", func(t *testing.T) {
		long := strings.Repeat("x", 500)
		a := Score(AgeBand16To17, nil, long)
		if a.Score != 80 {
			t.Errorf("score = %d, want 80 (60 + capped 20)", a.Score)
		}
		found := false
		for _, r := range a.Reasons {
			if strings.Contains(r, "Detailed") {
				found = true
			}
		}
		if !found {
			t.Errorf("expected detailed-report reason in %v", a.Reasons)
		}
	})

	t.Run("short note adds bonus without reason", func(t *testing.T) {
		// 50 chars -> +5, below the reason threshold.
		note := strings.Repeat("y", 50)
		a := Score(AgeBand16To17, nil, note)
		if a.Score != 65 {
			t.Errorf("score = %d, want 65", a.Score)
		}
		for _, r := range a.Reasons {
			if strings.Contains(r, "Detailed") {
				t.Errorf("unexpected detailed-report reason for short note: %v", a.Reasons)
			}
		}
	})

	t.Run("empty note contributes zero", func(t *testing.T) {
		a := Score(AgeBand10To12, nil, "")
		if a.Score != 70 {
			t.Errorf("score = %d, want 70", a.Score)
		}
	})
}

func TestScoreBounds(t *testing.T) {
	allTags := []string{TagUpcomingCeremony, TagPressureAtHome, TagTravelPlan, TagInjurySigns, TagCommunityRumor}
	bands := []string{AgeBand10To12, AgeBand13To15, AgeBand16To17, "bogus"}
	notes := []string{"", "short", strings.Repeat("z", 1000)}

	for _, band := range bands {
		for _, note := range notes {
			a := Score(band, allTags, note)
			if a.Score < 0 || a.Score > 100 {
				t.Errorf("Score(%q, all, len %d) = %d, out of [0,100]", band, len(note), a.Score)
			}
		}
	}
}

func TestMiddleBandScoresHighest(t *testing.T) {
	tags := []string{TagTravelPlan}
	note := "some redacted note"

	mid := Score(AgeBand13To15, tags, note)
	old := Score(AgeBand16To17, tags, note)
	young := Score(AgeBand10To12, tags, note)

	if mid.Score < old.Score {
		t.Errorf("13-15 scored %d, below 16-17's %d", mid.Score, old.Score)
	}
	if mid.Score < young.Score {
		t.Errorf("13-15 scored %d, below 10-12's %d", mid.Score, young.Score)
	}
}

func TestLevel(t *testing.T) {
	cases := []struct {
		score int
		want  string
	}{
		{100, "Critical"},
		{80, "Critical"},
		{79, "High"},
		{60, "High"},
		{59, "Medium"},
		{40, "Medium"},
		{39, "Low"},
		{0, "Low"},
	}
	for _, c := range cases {
		if got := Level(c.score); got != c.want {
			t.Errorf("Level(%d) = %q, want %q", c.score, got, c.want)
		}
	}
}

func TestVocabulary(t *testing.T) {
	if !ValidAgeBand(AgeBand13To15) || ValidAgeBand("18-20") {
		t.Error("ValidAgeBand vocabulary check failed")
	}
	if !ValidTag(TagOther) || !ValidTag(TagInjurySigns) || ValidTag("made_up") {
		t.Error("ValidTag vocabulary check failed")
	}
}
