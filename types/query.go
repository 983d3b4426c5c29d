package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

type Validater interface {
	Validate() map[string]string
}

func Validate(v Validater) map[string]string {
	return v.Validate()
}

// HealthSnapshot is the caller-supplied physiological/temporal context.
// HeartRate and HRV are passed through for logging only; selection uses the
// derived stress level and time of day.
type HealthSnapshot struct {
	HeartRate   float64     `json:"heart_rate,omitempty"`
	HRV         float64     `json:"hrv,omitempty"`
	StressLevel StressLevel `json:"stress_level" validate:"omitempty,oneof=low normal elevated high"`
	TimeOfDay   TimeOfDay   `json:"time_of_day" validate:"omitempty,oneof=morning midday evening night"`
	IsActive    bool        `json:"is_active"`
}

// QuoteRequest asks for one contextually relevant passage. Query, when set,
// overrides the synthesized context description.
type QuoteRequest struct {
	Context     HealthSnapshot `json:"context"`
	UserID      string         `json:"user_id,omitempty"`
	Philosopher PhilosopherID  `json:"philosopher_id,omitempty"`
	Query       string         `json:"query,omitempty"`
}

func (params *QuoteRequest) Validate() map[string]string {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}

// QuoteResponse renders philosopher and work ids as human-readable titles;
// internal matching always uses the raw ids.
type QuoteResponse struct {
	ID          string      `json:"id"`
	Text        string      `json:"text"`
	Philosopher string      `json:"philosopher"`
	Work        string      `json:"work"`
	Tags        PassageTags `json:"tags"`
	Similarity  float64     `json:"similarity"`
}

type OnboardingAnswer struct {
	QuestionID string `json:"question_id" validate:"required"`
	Answer     string `json:"answer" validate:"required"`
}

type MatchRequest struct {
	UserID  string             `json:"user_id" validate:"required"`
	Answers []OnboardingAnswer `json:"answers" validate:"required,min=1,dive"`
}

func (params *MatchRequest) Validate() map[string]string {
	validate := validator.New()
	if err := validate.Struct(params); err != nil {
		errs := err.(validator.ValidationErrors)
		errors := make(map[string]string)
		for _, e := range errs {
			errors[e.Field()] = fmt.Sprintf("failed on '%s' tag", e.Tag())
		}
		return errors
	}
	return nil
}

type MatchResponse struct {
	PhilosopherID   string  `json:"philosopher_id"`
	PhilosopherName string  `json:"philosopher_name"`
	MatchReason     string  `json:"match_reason"`
	Confidence      float64 `json:"confidence"`
}
