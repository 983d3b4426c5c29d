// Package profile matches users to a philosopher persona from their
// onboarding answers. The catalog is static configuration loaded once at
// process start.
package profile

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
)

// Profile is one persona in the catalog. MatchingCriteria are free-text
// phrases scored word-by-word against answers; UnlockCriteria are passed
// through to the caller untouched.
type Profile struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Era              string         `json:"era"`
	Biography        string         `json:"biography"`
	CoreThemes       []string       `json:"core_themes"`
	TeachingStyle    string         `json:"teaching_style"`
	MatchingCriteria []string       `json:"matching_criteria"`
	UnlockCriteria   map[string]any `json:"unlock_criteria"`
}

//go:embed philosophers.json
var defaultCatalog []byte

// Catalog is an ordered profile list. Order matters: score ties resolve to
// the earliest profile, so the same catalog always matches the same way.
type Catalog struct {
	Profiles []Profile
}

func LoadCatalog(path string) (*Catalog, error) {
	data := defaultCatalog
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read profile catalog: %w", err)
		}
	}

	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("parse profile catalog: %w", err)
	}
	if len(profiles) == 0 {
		return nil, fmt.Errorf("profile catalog is empty")
	}
	for _, p := range profiles {
		if p.ID == "" || p.Name == "" {
			return nil, fmt.Errorf("profile catalog entry missing id or name")
		}
	}

	return &Catalog{Profiles: profiles}, nil
}

// Find returns the profile with the given id.
func (c *Catalog) Find(id string) (Profile, bool) {
	for _, p := range c.Profiles {
		if p.ID == id {
			return p, true
		}
	}
	return Profile{}, false
}
