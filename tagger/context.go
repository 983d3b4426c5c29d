package tagger

import "stoickb/types"

// MapHealthContext derives the stress and time-of-day applicability of a
// passage from its tags. Shared by both tagging strategies. Neither field is
// ever left empty: no stress signal defaults to normal, no time signal
// defaults to all waking times.
func MapHealthContext(tags types.PassageTags) types.HealthContext {
	var stress []types.StressLevel

	if hasAny(tags.Emotions, "anger", "anxiety", "fear") {
		stress = append(stress, types.StressElevated, types.StressHigh)
	}
	if hasAny(tags.Situations, "anger_management", "anxiety", "difficult_people") {
		stress = append(stress, types.StressElevated, types.StressHigh)
	}
	if hasAny(tags.Emotions, "peace") || hasAny(tags.PrimaryConcepts, "amor_fati") {
		stress = append(stress, types.StressLow)
	}
	if len(stress) == 0 {
		stress = []types.StressLevel{types.StressNormal}
	}

	var times []types.TimeOfDay

	if hasAny(tags.Practices, "morning_reflection") {
		times = append(times, types.Morning)
	}
	if hasAny(tags.Practices, "evening_review") {
		times = append(times, types.Evening)
	}
	if hasAny(tags.PrimaryConcepts, "memento_mori") {
		times = append(times, types.Evening, types.Night)
	}
	if hasAny(tags.PrimaryConcepts, "premeditatio_malorum", "present_moment") {
		times = append(times, types.Morning)
	}
	if len(times) == 0 {
		times = []types.TimeOfDay{types.Morning, types.Midday, types.Evening}
	}

	return types.HealthContext{
		StressLevels: dedupe(stress),
		TimesOfDay:   dedupe(times),
	}
}

func hasAny(list []string, values ...string) bool {
	for _, v := range values {
		for _, s := range list {
			if s == v {
				return true
			}
		}
	}
	return false
}

// dedupe removes duplicates keeping first-occurrence order.
func dedupe[T comparable](list []T) []T {
	seen := make(map[T]struct{}, len(list))
	out := list[:0]
	for _, v := range list {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
