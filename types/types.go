package types

type PhilosopherID string

const (
	MarcusAurelius PhilosopherID = "marcus_aurelius"
	Epictetus      PhilosopherID = "epictetus"
	Seneca         PhilosopherID = "seneca"
	MusoniusRufus  PhilosopherID = "musonius_rufus"
	Cato           PhilosopherID = "cato"
)

type WorkID string

const (
	Meditations       WorkID = "meditations"
	Discourses        WorkID = "discourses"
	Enchiridion       WorkID = "enchiridion"
	Letters           WorkID = "letters_to_lucilius"
	OnAnger           WorkID = "on_anger"
	OnShortnessOfLife WorkID = "on_shortness_of_life"
	OnTranquility     WorkID = "on_tranquility_of_mind"
	OnProvidence      WorkID = "on_providence"
	OnHappyLife       WorkID = "on_happy_life"
	Lectures          WorkID = "lectures"
	LifeOfCato        WorkID = "life_of_cato"
)

type StressLevel string

const (
	StressLow      StressLevel = "low"
	StressNormal   StressLevel = "normal"
	StressElevated StressLevel = "elevated"
	StressHigh     StressLevel = "high"
)

func (s StressLevel) Valid() bool {
	switch s {
	case StressLow, StressNormal, StressElevated, StressHigh:
		return true
	}
	return false
}

type ActivityState string

const (
	ActivityActive    ActivityState = "active"
	ActivitySedentary ActivityState = "sedentary"
	ActivityRecovery  ActivityState = "recovery"
)

type TimeOfDay string

const (
	Morning TimeOfDay = "morning"
	Midday  TimeOfDay = "midday"
	Evening TimeOfDay = "evening"
	Night   TimeOfDay = "night"
)

func (t TimeOfDay) Valid() bool {
	switch t {
	case Morning, Midday, Evening, Night:
		return true
	}
	return false
}

type JourneyStage string

const (
	StageNewcomer       JourneyStage = "newcomer"
	StageBuildingHabits JourneyStage = "building_habits"
	StageDeepening      JourneyStage = "deepening"
	StageCrisis         JourneyStage = "crisis"
)

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case Beginner, Intermediate, Advanced:
		return true
	}
	return false
}

// SourceInfo identifies where a passage comes from within a work.
// Book, chapter and letter are zero when the work's form has none.
type SourceInfo struct {
	Philosopher PhilosopherID `json:"philosopher_id"`
	Work        WorkID        `json:"work_id"`
	Book        int           `json:"book,omitempty"`
	Chapter     int           `json:"chapter,omitempty"`
	Letter      int           `json:"letter,omitempty"`
	Section     int           `json:"section,omitempty"`
}

// TranslationInfo carries provenance for the translation a work was taken from.
type TranslationInfo struct {
	Translator string `json:"translator"`
	Year       int    `json:"year"`
	SourceURL  string `json:"source_url"`
	License    string `json:"license"`
}

// PassageTags are the semantic tags used for retrieval. Category caps:
// concepts 3, virtues 2, practices 2, situations 3, emotions 3.
type PassageTags struct {
	PrimaryConcepts []string `json:"primary_concepts"`
	Virtues         []string `json:"virtues"`
	Practices       []string `json:"practices"`
	Situations      []string `json:"situations"`
	Emotions        []string `json:"emotions"`
}

// HealthContext maps a passage to the physiological/temporal contexts it
// suits. StressLevels and TimesOfDay are never empty once tagging has run.
type HealthContext struct {
	StressLevels   []StressLevel   `json:"stress_levels"`
	ActivityStates []ActivityState `json:"activity_states"`
	TimesOfDay     []TimeOfDay     `json:"times_of_day"`
}

type JourneyContext struct {
	Stages     []JourneyStage `json:"stages"`
	Difficulty Difficulty     `json:"difficulty"`
}

// PassageMetadata holds quality scores, each clamped to [1,10].
type PassageMetadata struct {
	Quotability    int `json:"quotability"`
	Actionability  int `json:"actionability"`
	Comfort        int `json:"comfort"`
	WordCount      int `json:"word_count"`
	CharacterCount int `json:"character_count"`
}

// Passage is the retrievable unit of the knowledge base. ID is a
// deterministic function of work id and content hash, so re-segmenting the
// same source text reproduces the same ids. Embedding stays nil until the
// embedding step runs; a passage without one is not eligible for retrieval.
type Passage struct {
	ID             string          `json:"id"`
	Source         SourceInfo      `json:"source"`
	Translation    TranslationInfo `json:"translation"`
	Text           string          `json:"text"`
	TextNormalized string          `json:"text_normalized"`
	Tags           PassageTags     `json:"tags"`
	HealthContext  HealthContext   `json:"health_context"`
	JourneyContext JourneyContext  `json:"journey_context"`
	Metadata       PassageMetadata `json:"metadata"`
	Embedding      []float32       `json:"embedding,omitempty"`
}

// Work is the ingestion-side record for a complete source text.
type Work struct {
	ID          WorkID          `json:"id"`
	Title       string          `json:"title"`
	Philosopher PhilosopherID   `json:"philosopher_id"`
	Translation TranslationInfo `json:"translation"`
}
