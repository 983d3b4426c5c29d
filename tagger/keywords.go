package tagger

// Keyword tables for the rule-based tagger. A category matches when any of
// its keywords appears as a case-insensitive substring of the passage text.
// Tables are ordered slices: when more categories match than a category cap
// allows, earlier entries win.

type keywordRule struct {
	tag      string
	keywords []string
}

var conceptKeywords = []keywordRule{
	{"dichotomy_of_control", []string{
		"control", "power over", "in our power", "not in our power",
		"up to us", "not up to us", "depends on us", "our choice",
		"within our control", "outside our control", "cannot control",
		"judgment", "disturb",
	}},
	{"inner_citadel", []string{
		"inner", "citadel", "fortress", "mind", "soul", "ruling",
		"governing", "retreat", "within yourself", "inside",
	}},
	{"premeditatio_malorum", []string{
		"anticipate", "prepare", "expect", "foresee", "imagine",
		"what if", "might happen", "could happen", "worst",
	}},
	{"memento_mori", []string{
		"death", "die", "dying", "mortal", "mortality", "finite",
		"last day", "end", "life is short", "brief", "fleeting",
	}},
	{"amor_fati", []string{
		"fate", "accept", "acceptance", "embrace", "love", "welcome",
		"providence", "universe", "nature", "meant to be",
	}},
	{"impermanence", []string{
		"change", "changing", "pass", "passing", "temporary", "transient",
		"nothing lasts", "all things", "flow", "flux", "moment",
	}},
	{"present_moment", []string{
		"present", "now", "today", "this moment", "current", "immediate",
		"at hand", "before you",
	}},
	{"living_according_to_nature", []string{
		"nature", "natural", "according to nature", "rational",
		"reason", "logos", "universal", "cosmos",
	}},
}

var virtueKeywords = []keywordRule{
	{"wisdom", []string{
		"wisdom", "wise", "knowledge", "understand", "judgment",
		"discern", "learn", "truth", "reason", "rational",
	}},
	{"courage", []string{
		"courage", "brave", "bravery", "fear", "fearless", "bold",
		"endure", "persist", "strength", "fortitude", "stand firm",
	}},
	{"justice", []string{
		"justice", "just", "fair", "duty", "obligation", "right",
		"wrong", "others", "society", "fellow", "citizen",
	}},
	{"temperance", []string{
		"temperance", "moderate", "moderation", "restrain", "control",
		"self-control", "discipline", "excess", "pleasure", "desire",
	}},
}

var practiceKeywords = []keywordRule{
	{"morning_reflection", []string{
		"morning", "dawn", "arise", "wake", "begin the day", "start",
	}},
	{"evening_review", []string{
		"evening", "night", "end of day", "review", "examine", "reflect",
		"sleep", "bed",
	}},
	{"journaling", []string{
		"write", "record", "note", "journal", "yourself",
	}},
	{"self_examination", []string{
		"examine", "ask yourself", "question", "reflect", "consider",
		"think about", "look within",
	}},
}

var situationKeywords = []keywordRule{
	{"difficult_people", []string{
		"people", "others", "man", "men", "someone", "they",
		"difficult", "annoying", "fool", "ignorant", "enemy",
	}},
	{"anger_management", []string{
		"anger", "angry", "rage", "fury", "temper", "irritate",
		"provoke", "offend", "insult",
	}},
	{"anxiety", []string{
		"anxious", "anxiety", "worry", "fear", "troubled", "disturbed",
		"concern", "uneasy", "restless",
	}},
	{"grief", []string{
		"grief", "grieve", "loss", "lost", "mourn", "sorrow",
		"sadness", "death of", "passed away",
	}},
	{"failure", []string{
		"fail", "failure", "mistake", "error", "wrong", "setback",
		"disappoint", "fall short",
	}},
	{"success", []string{
		"success", "achieve", "accomplish", "triumph", "victory",
		"praise", "fame", "honor",
	}},
	{"leadership", []string{
		"lead", "leader", "rule", "govern", "command", "authority",
		"power", "emperor", "king",
	}},
	{"health_challenges", []string{
		"sick", "illness", "disease", "pain", "body", "health",
		"suffer", "affliction",
	}},
	{"time_management", []string{
		"time", "busy", "hurry", "waste", "spend", "life is short",
		"procrastinate", "delay",
	}},
	{"finding_purpose", []string{
		"purpose", "meaning", "why", "reason", "goal", "aim",
		"direction", "calling",
	}},
}

var emotionKeywords = []keywordRule{
	{"anger", []string{"anger", "angry", "rage", "fury", "wrath", "irritate"}},
	{"fear", []string{"fear", "afraid", "terror", "dread", "scary", "frighten"}},
	{"anxiety", []string{"anxious", "anxiety", "worry", "worried", "nervous"}},
	{"grief", []string{"grief", "sorrow", "mourn", "sad", "sadness", "loss"}},
	{"joy", []string{"joy", "happy", "happiness", "delight", "pleasure", "glad"}},
	{"frustration", []string{"frustrate", "annoyed", "irritate", "vexed"}},
	{"peace", []string{"peace", "calm", "tranquil", "serene", "quiet", "still"}},
}

// Difficulty vocabulary markers.
var advancedTerms = []string{
	"indifferent", "preferred", "logos", "hegemonikon",
	"prohairesis", "oikeiosis", "cosmopolitan", "determinism",
}

var intermediateTerms = []string{
	"virtue", "rational", "nature", "providence", "soul",
	"judgment", "impression", "assent",
}

// Score vocabulary.
var comfortWords = []string{
	"peace", "calm", "gentle", "accept", "rest", "ease",
	"content", "tranquil", "serene", "grateful",
}

var challengeWords = []string{
	"must", "should", "stop", "cease", "wrong", "foolish",
	"lazy", "weak", "excuse", "complain",
}

var actionWords = []string{
	"do", "practice", "try", "begin", "start", "stop",
	"when you", "if you", "every day", "each morning",
	"remind yourself", "tell yourself", "ask yourself",
}
