package types

// Fixed taxonomy vocabularies. Tag values outside these lists are rejected
// at the boundary instead of being stored.

var PrimaryConcepts = []string{
	"dichotomy_of_control",
	"inner_citadel",
	"premeditatio_malorum",
	"memento_mori",
	"amor_fati",
	"prosoche",
	"view_from_above",
	"living_according_to_nature",
	"preferred_indifferents",
	"cosmopolitanism",
	"impermanence",
	"present_moment",
}

var Virtues = []string{
	"wisdom",
	"courage",
	"justice",
	"temperance",
}

var Practices = []string{
	"negative_visualization",
	"morning_reflection",
	"evening_review",
	"journaling",
	"self_examination",
	"voluntary_discomfort",
}

var Situations = []string{
	"difficult_people",
	"anger_management",
	"anxiety",
	"grief",
	"failure",
	"success",
	"leadership",
	"relationships",
	"health_challenges",
	"career_transition",
	"time_management",
	"finding_purpose",
	"ethical_dilemma",
	"feeling_trapped",
	"overwhelm",
}

var Emotions = []string{
	"anger",
	"fear",
	"anxiety",
	"grief",
	"joy",
	"frustration",
	"envy",
	"regret",
	"hope",
	"peace",
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func IsConcept(v string) bool   { return contains(PrimaryConcepts, v) }
func IsVirtue(v string) bool    { return contains(Virtues, v) }
func IsPractice(v string) bool  { return contains(Practices, v) }
func IsSituation(v string) bool { return contains(Situations, v) }
func IsEmotion(v string) bool   { return contains(Emotions, v) }
