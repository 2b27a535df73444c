package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/hireboard/internal/domain/company"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type postgresCompanyRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCompanyRepo(db *pgxpool.Pool, logger logger.Logger) company.Repository {
	return &postgresCompanyRepo{db: db, logger: logger}
}

var psqlCompany = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func scanCompany(row pgx.Row) (*company.Company, error) {
	c := &company.Company{}
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Email,
		&c.Contact,
		&c.Website,
		&c.LogoURL,
		&c.Industry,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("company", "")
		}
		return nil, persistErr("failed to scan company row", err)
	}
	return c, nil
}

func (r *postgresCompanyRepo) Save(ctx context.Context, c *company.Company) error {
	query := `
		INSERT INTO companies (id, name, email, contact, website, logo_url, industry, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Email, c.Contact, c.Website,
		c.LogoURL, c.Industry, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgUniqueViolation {
			return apperror.NewConflict("company", "name", c.Name)
		}
		return persistErr("failed to save company", err)
	}
	return nil
}

func (r *postgresCompanyRepo) FindByID(ctx context.Context, id uuid.UUID) (*company.Company, error) {
	query := `
		SELECT id, name, email, contact, website, logo_url, industry, created_at, updated_at
		FROM companies
		WHERE id = $1
	`
	c, err := scanCompany(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("company", id.String())
	}
	return c, err
}

func (r *postgresCompanyRepo) ListSummaries(ctx context.Context) ([]company.Summary, error) {
	sql, args, err := psqlCompany.Select("id", "name", "logo_url", "industry").
		From("companies").
		OrderBy("name ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list companies query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, persistErr("failed to query companies", err)
	}
	defer rows.Close()

	items := make([]company.Summary, 0)
	for rows.Next() {
		var s company.Summary
		if err := rows.Scan(&s.ID, &s.Name, &s.LogoURL, &s.Industry); err != nil {
			return nil, persistErr("failed to scan company summary", err)
		}
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("error iterating company rows", err)
	}
	return items, nil
}

func (r *postgresCompanyRepo) UpdateLogo(ctx context.Context, id uuid.UUID, logoURL string) error {
	query := `UPDATE companies SET logo_url = $2, updated_at = NOW() WHERE id = $1`
	cmdTag, err := r.db.Exec(ctx, query, id, logoURL)
	if err != nil {
		return persistErr("failed to update company logo", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("company", id.String())
	}
	return nil
}
