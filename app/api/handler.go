package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"stoickb/profile"
	"stoickb/retriever"
	"stoickb/types"
)

type QuoteHandler struct {
	retriever *retriever.Retriever
}

func NewQuoteHandler(r *retriever.Retriever) *QuoteHandler {
	return &QuoteHandler{retriever: r}
}

func (h *QuoteHandler) HandleQuote(c *fiber.Ctx) error {
	var params types.QuoteRequest
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errs := types.Validate(&params); len(errs) > 0 {
		return NewValidationError(errs)
	}

	resp, err := h.retriever.Retrieve(c.Context(), params)
	if err != nil {
		if errors.Is(err, retriever.ErrNotFound) {
			return ErrNotFound("quotes")
		}
		return err
	}

	return c.JSON(resp)
}

type MatchHandler struct {
	matcher *profile.Matcher
	catalog *profile.Catalog
}

func NewMatchHandler(matcher *profile.Matcher, catalog *profile.Catalog) *MatchHandler {
	return &MatchHandler{
		matcher: matcher,
		catalog: catalog,
	}
}

func (h *MatchHandler) HandleMatch(c *fiber.Ctx) error {
	var params types.MatchRequest
	if c.BodyParser(&params) != nil {
		return ErrBadRequest()
	}

	if errs := types.Validate(&params); len(errs) > 0 {
		return NewValidationError(errs)
	}

	resp, err := h.matcher.Match(c.Context(), params)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// HandlePhilosophers lists the catalog without the matching internals.
func (h *MatchHandler) HandlePhilosophers(c *fiber.Ctx) error {
	type entry struct {
		ID            string   `json:"id"`
		Name          string   `json:"name"`
		Era           string   `json:"era"`
		Biography     string   `json:"biography"`
		CoreThemes    []string `json:"core_themes"`
		TeachingStyle string   `json:"teaching_style"`
	}

	entries := make([]entry, len(h.catalog.Profiles))
	for i, p := range h.catalog.Profiles {
		entries[i] = entry{
			ID:            p.ID,
			Name:          p.Name,
			Era:           p.Era,
			Biography:     p.Biography,
			CoreThemes:    p.CoreThemes,
			TeachingStyle: p.TeachingStyle,
		}
	}
	return c.JSON(fiber.Map{"philosophers": entries})
}
