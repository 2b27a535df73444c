package company

import (
	"context"
	"errors"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Company struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Contact   string    `json:"contact"`
	Website   string    `json:"website"`
	LogoURL   *string   `json:"logo_url"`
	Industry  *string   `json:"industry"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Summary is the projection served by the public company directory.
type Summary struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	LogoURL  *string   `json:"logo_url"`
	Industry *string   `json:"industry"`
}

var (
	ErrNameRequired = errors.New("company name is required")
	ErrInvalidEmail = errors.New("company email is not a valid address")
)

func (c *Company) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return ErrInvalidEmail
	}
	return nil
}

// SortByName orders summaries by name ascending, ties broken by id so the
// order is total.
func SortByName(items []Summary) {
	slices.SortStableFunc(items, func(a, b Summary) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}

type Repository interface {
	Save(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	ListSummaries(ctx context.Context) ([]Summary, error)
	UpdateLogo(ctx context.Context, id uuid.UUID, logoURL string) error
}

// ListCache holds the company directory between writes. Entries are keyed
// by generation: Invalidate moves to a new generation, so a list read from
// the store before a write can only land under the generation it was read at.
type ListCache interface {
	Generation(ctx context.Context) (int64, error)
	GetSummaries(ctx context.Context, gen int64) ([]Summary, bool, error)
	SetSummaries(ctx context.Context, gen int64, items []Summary) error
	Invalidate(ctx context.Context) error
}
