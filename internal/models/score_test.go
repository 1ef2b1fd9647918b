package models

import "testing"

func TestSkillMatchRatio(t *testing.T) {
	if got := SkillMatchRatio(nil, []string{"anything"}); got != 1.0 {
		t.Errorf("empty requirement set should match fully, got %v", got)
	}
	if got := SkillMatchRatio([]string{"a", "b"}, []string{"a"}); got != 0.5 {
		t.Errorf("partial match = %v, want 0.5", got)
	}
	if got := SkillMatchRatio([]string{"a", "b"}, nil); got != 0 {
		t.Errorf("no overlap = %v, want 0", got)
	}
}

func TestMissingSkills(t *testing.T) {
	missing := MissingSkills([]string{"a", "b", "c"}, []string{"b"})
	if len(missing) != 2 || missing[0] != "a" || missing[1] != "c" {
		t.Errorf("MissingSkills = %v, want [a c]", missing)
	}
	if !HasAllSkills([]string{"a"}, []string{"a", "b"}) {
		t.Error("superset should satisfy HasAllSkills")
	}
}

func TestClamp01(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-0.1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {1.7, 1},
	}
	for _, c := range cases {
		if got := Clamp01(c.in); got != c.want {
			t.Errorf("Clamp01(%v) = %v, want %v", c.in, got, c.want)
		}
	}
	if got := ClampScore(12, 10); got != 10 {
		t.Errorf("ClampScore(12, 10) = %v, want 10", got)
	}
}
