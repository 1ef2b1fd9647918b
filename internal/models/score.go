package models

// Clamp01 clamps a score to the [0, 1] range.
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampScore clamps a score to [0, cap].
func ClampScore(v, cap float64) float64 {
	if v < 0 {
		return 0
	}
	if v > cap {
		return cap
	}
	return v
}

// SkillMatchRatio returns |required ∩ have| / |required|.
// An empty requirement set always matches fully.
func SkillMatchRatio(required, have []string) float64 {
	if len(required) == 0 {
		return 1.0
	}
	haveSet := make(map[string]struct{}, len(have))
	for _, s := range have {
		haveSet[s] = struct{}{}
	}
	matched := 0
	for _, s := range required {
		if _, ok := haveSet[s]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// MissingSkills returns the required skills absent from the employee's skill set.
func MissingSkills(required, have []string) []string {
	haveSet := make(map[string]struct{}, len(have))
	for _, s := range have {
		haveSet[s] = struct{}{}
	}
	var missing []string
	for _, s := range required {
		if _, ok := haveSet[s]; !ok {
			missing = append(missing, s)
		}
	}
	return missing
}

// HasAllSkills reports whether have is a superset of required.
func HasAllSkills(required, have []string) bool {
	return len(MissingSkills(required, have)) == 0
}
