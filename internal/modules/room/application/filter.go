package application

import (
	"strings"

	"github.com/fatimazahra-12/schoolmanage-client/internal/modules/room/domain"
)

// Availability is the tri-state availability filter.
type Availability string

const (
	AvailabilityAll          Availability = "all"
	AvailabilityDisponible   Availability = "disponible"
	AvailabilityIndisponible Availability = "indisponible"
)

// Filter narrows the list view. Zero values mean "no constraint".
type Filter struct {
	Search       string
	Type         string
	Availability Availability
}

// Apply projects the filter over the cached list without mutating it. The
// projection is recomputed from scratch on every call.
func (s *Store) Apply(filter Filter) []domain.Salle {
	salles := s.Salles()

	search := strings.ToLower(filter.Search)
	out := make([]domain.Salle, 0, len(salles))
	for _, salle := range salles {
		if search != "" &&
			!strings.Contains(strings.ToLower(salle.Nom), search) &&
			!strings.Contains(strings.ToLower(salle.Type), search) {
			continue
		}
		if filter.Type != "" && filter.Type != "all" && salle.Type != filter.Type {
			continue
		}
		switch filter.Availability {
		case AvailabilityDisponible:
			if !salle.Disponible {
				continue
			}
		case AvailabilityIndisponible:
			if salle.Disponible {
				continue
			}
		}
		out = append(out, salle)
	}
	return out
}

// Types returns the distinct salle types present in the cache, in first-
// seen order, for populating the type filter.
func (s *Store) Types() []string {
	seen := make(map[string]bool)
	var out []string
	for _, salle := range s.Salles() {
		if salle.Type != "" && !seen[salle.Type] {
			seen[salle.Type] = true
			out = append(out, salle.Type)
		}
	}
	return out
}
