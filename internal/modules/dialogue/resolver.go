// README: Place resolver turns a pickup/dropoff slot into a resolution status.
package dialogue

import (
	"context"
	"fmt"

	"courier/internal/maps"
)

type resolution struct {
	Status         ResolutionStatus
	Suggestions    []Suggestion
	SuggestionType SuggestionType
}

// resolvePlace decides how far a single pickup or dropoff slot has been
// filled. A concrete address wins outright and yields the confirm/cancel
// pair. A bare place name goes to the search provider near the fallback
// location. On success the status is always exactly one of the four
// resolution values; a provider failure comes back as an error so the
// caller can decide whether the turn survives it.
func (s *Service) resolvePlace(ctx context.Context, role SuggestionType, placeName, address, fallbackLocation string) (resolution, error) {
	if address != "" {
		return resolution{
			Status:         ResolutionComplete,
			Suggestions:    confirmationPair(),
			SuggestionType: SuggestionOrderConfirmation,
		}, nil
	}

	if placeName != "" {
		places, err := s.places.Search(ctx, placeName, fallbackLocation, maps.SearchTypePlace)
		if err != nil {
			return resolution{}, fmt.Errorf("place search for %q: %w", placeName, err)
		}
		if len(places) > 0 {
			return resolution{
				Status:         ResolutionSuggested,
				Suggestions:    suggestionsFromPlaces(places),
				SuggestionType: role,
			}, nil
		}
		return resolution{Status: ResolutionNotFound}, nil
	}

	return resolution{Status: ResolutionMissingName}, nil
}
