package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/internal/domain/job"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type postgresJobRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresJobRepo(db *pgxpool.Pool, logger logger.Logger) job.Repository {
	return &postgresJobRepo{db: db, logger: logger}
}

var psqlJob = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var listingColumns = []string{
	"j.id", "j.company_id", "j.posted_by", "j.title", "j.description", "j.location",
	"j.employment_type", "j.salary_min", "j.salary_max", "j.is_public", "j.created_at", "j.updated_at",
	"c.name", "c.logo_url",
}

func scanListing(row pgx.Row) (*job.Listing, error) {
	l := &job.Listing{}
	err := row.Scan(
		&l.ID,
		&l.CompanyID,
		&l.PostedBy,
		&l.Title,
		&l.Description,
		&l.Location,
		&l.EmploymentType,
		&l.SalaryMin,
		&l.SalaryMax,
		&l.IsPublic,
		&l.CreatedAt,
		&l.UpdatedAt,
		&l.CompanyName,
		&l.CompanyLogoURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("job", "")
		}
		return nil, persistErr("failed to scan job row", err)
	}
	return l, nil
}

func (r *postgresJobRepo) Save(ctx context.Context, j *job.Job, skillIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return persistErr("failed to begin job transaction", err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	query := `
		INSERT INTO jobs (id, company_id, posted_by, title, description, location, employment_type,
			salary_min, salary_max, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err = tx.Exec(ctx, query,
		j.ID, j.CompanyID, j.PostedBy, j.Title, j.Description, j.Location, j.EmploymentType,
		j.SalaryMin, j.SalaryMax, j.IsPublic, j.CreatedAt, j.UpdatedAt,
	)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return apperror.NewNotFound("company", j.CompanyID.String())
		}
		return persistErr("failed to save job", err)
	}

	if len(skillIDs) > 0 {
		rows := make([][]interface{}, len(skillIDs))
		for i, skillID := range skillIDs {
			rows[i] = []interface{}{j.ID, skillID}
		}
		_, err = tx.CopyFrom(ctx, pgx.Identifier{"job_skills"}, []string{"job_id", "skill_id"}, pgx.CopyFromRows(rows))
		if err != nil {
			if pgErrorCode(err) == pgForeignKeyViolation {
				return apperror.NewInvalidInput("job references an unknown skill", err)
			}
			return persistErr("failed to link job skills", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return persistErr("failed to commit job", err)
	}
	r.logger.Debug("Saved job", zap.String("job_id", j.ID.String()), zap.Int("skills", len(skillIDs)))
	return nil
}

func (r *postgresJobRepo) FindPublicByID(ctx context.Context, id uuid.UUID) (*job.Listing, error) {
	sql, args, err := psqlJob.Select(listingColumns...).
		From("jobs j").
		Join("companies c ON c.id = j.company_id").
		Where(sq.Eq{"j.id": id, "j.is_public": true}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find job query", err)
	}

	l, err := scanListing(r.db.QueryRow(ctx, sql, args...))
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, apperror.NewNotFound("job", id.String())
	}
	return l, err
}

func (r *postgresJobRepo) ListPublic(ctx context.Context, filter job.ListFilter) ([]*job.Listing, error) {
	qb := psqlJob.Select(listingColumns...).
		From("jobs j").
		Join("companies c ON c.id = j.company_id").
		Where(sq.Eq{"j.is_public": true})

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		qb = qb.Where(sq.Or{
			sq.ILike{"j.title": pattern},
			sq.ILike{"j.description": pattern},
			sq.ILike{"c.name": pattern},
		})
	}
	if filter.Location != "" {
		qb = qb.Where(sq.ILike{"j.location": "%" + filter.Location + "%"})
	}
	if filter.EmploymentType != "" {
		qb = qb.Where(sq.Eq{"j.employment_type": filter.EmploymentType})
	}
	if filter.CompanyID != nil {
		qb = qb.Where(sq.Eq{"j.company_id": *filter.CompanyID})
	}

	qb = qb.OrderBy("j.created_at DESC", "j.id ASC")
	if filter.Limit > 0 {
		qb = qb.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		qb = qb.Offset(uint64(filter.Offset))
	}

	sql, args, err := qb.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list jobs query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, persistErr("failed to query jobs", err)
	}
	defer rows.Close()

	listings := make([]*job.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("error iterating job rows", err)
	}
	return listings, nil
}
