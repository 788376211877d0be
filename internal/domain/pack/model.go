// Package pack holds the membership package concept: a priced plan that a
// member subscribes to via Member.PackageID.
package pack

import (
	"strings"
	"time"

	"github.com/Bhaskar125/gym-management-system/internal/domain/validation"
)

// Package is a membership package stored in the packages collection.
type Package struct {
	ID       string  `json:"-"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration string  `json:"duration"` // e.g. "1 month", "12 months"

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Validate checks if the Package has valid data.
// PRE: Package struct is initialized
// POST: Returns a *validation.Error naming the offending field, nil otherwise
func (p *Package) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return validation.Errf("name", "package name cannot be empty")
	}
	if p.Price < 0 {
		return validation.Errf("price", "package price cannot be negative")
	}
	if strings.TrimSpace(p.Duration) == "" {
		return validation.Errf("duration", "package duration cannot be empty")
	}
	return nil
}
