package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/fatimazahra-12/schoolmanage-client/internal/shared/validation"
)

// Salle is a schedulable room or space.
type Salle struct {
	ID         int64      `json:"id"`
	Nom        string     `json:"nom"`
	Capacite   int        `json:"capacite"`
	Type       string     `json:"type"`
	Disponible bool       `json:"disponible"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// SuggestedTypes is the closed suggestion list offered when creating a
// salle. Type remains free text; the server does not enforce this list and
// neither do we.
var SuggestedTypes = []string{"Cours", "TD", "TP", "Laboratoire", "Amphithéâtre", "Conférence"}

// CreateSalleDTO is the creation payload. The same shape is submitted for
// updates; the form always sends every mutable field.
type CreateSalleDTO struct {
	Nom        string `json:"nom" validate:"required"`
	Capacite   int    `json:"capacite" validate:"required,gt=0"`
	Type       string `json:"type"`
	Disponible bool   `json:"disponible"`
}

type UpdateSalleDTO = CreateSalleDTO

var (
	ErrNomRequis        = errors.New("Le nom est requis")
	ErrCapaciteInvalide = errors.New("La capacité doit être supérieure à 0")
)

// Validate enforces the client-side invariants (nom non-empty, capacite
// positive) before submission. Validation here is UX; the server remains
// authoritative.
func (d CreateSalleDTO) Validate() error {
	if strings.TrimSpace(d.Nom) == "" {
		return ErrNomRequis
	}
	if err := validation.Struct(d); err != nil {
		for _, fieldErr := range validation.Fields(err) {
			if fieldErr.StructField() == "Capacite" {
				return ErrCapaciteInvalide
			}
		}
		return err
	}
	return nil
}
