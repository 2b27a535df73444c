package persistence

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/hireboard/internal/domain/experience"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type postgresExperienceRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresExperienceRepo(db *pgxpool.Pool, logger logger.Logger) experience.Repository {
	return &postgresExperienceRepo{db: db, logger: logger}
}

func (r *postgresExperienceRepo) ReplaceForUser(ctx context.Context, userID uuid.UUID, experiences []experience.WorkExperience) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return persistErr("failed to begin experience transaction", err)
	}
	defer func() { _ = tx.Rollback(context.Background()) }()

	expIDs := make([]uuid.UUID, len(experiences))
	for i := range experiences {
		e := &experiences[i]
		expIDs[i] = e.ID
		if err := upsertExperience(ctx, tx, userID, e); err != nil {
			return err
		}
	}

	// ON DELETE CASCADE removes accomplishments and skill links of dropped rows
	if _, err := tx.Exec(ctx,
		`DELETE FROM work_experiences WHERE user_id = $1 AND NOT (id = ANY($2))`,
		userID, expIDs,
	); err != nil {
		return persistErr("failed to delete removed work experiences", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM accomplishments WHERE work_experience_id = ANY($1)`, expIDs); err != nil {
		return persistErr("failed to clear accomplishments", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM work_experience_skills WHERE work_experience_id = ANY($1)`, expIDs); err != nil {
		return persistErr("failed to clear work experience skills", err)
	}

	var accRows, skillRows [][]interface{}
	for _, e := range experiences {
		for _, a := range e.Accomplishments {
			accRows = append(accRows, []interface{}{a.ID, e.ID, a.Position, a.Title, a.Description})
		}
		for _, skillID := range e.SkillIDs {
			skillRows = append(skillRows, []interface{}{e.ID, skillID})
		}
	}

	if len(accRows) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"accomplishments"},
			[]string{"id", "work_experience_id", "position", "title", "description"},
			pgx.CopyFromRows(accRows),
		)
		if err != nil {
			if pgErrorCode(err) == pgUniqueViolation {
				return apperror.NewConflict("accomplishment", "id", "submitted")
			}
			return persistErr("failed to insert accomplishments", err)
		}
	}

	if len(skillRows) > 0 {
		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"work_experience_skills"},
			[]string{"work_experience_id", "skill_id"},
			pgx.CopyFromRows(skillRows),
		)
		if err != nil {
			if pgErrorCode(err) == pgForeignKeyViolation {
				return apperror.NewInvalidInput("skill_ids references an unknown skill", err)
			}
			return persistErr("failed to insert work experience skills", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return persistErr("failed to commit experience update", err)
	}

	r.logger.Debug("Replaced work experiences",
		zap.String("user_id", userID.String()),
		zap.Int("experiences", len(experiences)),
		zap.Int("accomplishments", len(accRows)),
	)
	return nil
}

func upsertExperience(ctx context.Context, tx pgx.Tx, userID uuid.UUID, e *experience.WorkExperience) error {
	query := `
		INSERT INTO work_experiences (
			id, user_id, position, title, company, employment_type, is_current,
			start_date, end_date, location, description, job_source, media_url, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			position = EXCLUDED.position,
			title = EXCLUDED.title,
			company = EXCLUDED.company,
			employment_type = EXCLUDED.employment_type,
			is_current = EXCLUDED.is_current,
			start_date = EXCLUDED.start_date,
			end_date = EXCLUDED.end_date,
			location = EXCLUDED.location,
			description = EXCLUDED.description,
			job_source = EXCLUDED.job_source,
			media_url = EXCLUDED.media_url,
			updated_at = NOW()
		WHERE work_experiences.user_id = EXCLUDED.user_id
	`
	cmdTag, err := tx.Exec(ctx, query,
		e.ID, userID, e.Position, e.Title, e.Company, e.EmploymentType, e.IsCurrent,
		e.StartDate, e.EndDate, e.Location, e.Description, e.JobSource, e.MediaURL,
	)
	if err != nil {
		return persistErr("failed to upsert work experience", err)
	}
	// the conflict row belongs to someone else
	if cmdTag.RowsAffected() == 0 {
		return apperror.NewNotFound("work experience", e.ID.String())
	}
	return nil
}

func (r *postgresExperienceRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]experience.WorkExperience, error) {
	query := `
		SELECT id, user_id, position, title, company, employment_type, is_current,
			start_date, end_date, location, description, job_source, media_url, created_at, updated_at
		FROM work_experiences
		WHERE user_id = $1
		ORDER BY position ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, persistErr("failed to query work experiences", err)
	}
	defer rows.Close()

	out := make([]experience.WorkExperience, 0)
	index := make(map[uuid.UUID]int)
	for rows.Next() {
		e := experience.WorkExperience{SkillIDs: []uuid.UUID{}, Accomplishments: []experience.Accomplishment{}}
		if err := rows.Scan(
			&e.ID, &e.UserID, &e.Position, &e.Title, &e.Company, &e.EmploymentType, &e.IsCurrent,
			&e.StartDate, &e.EndDate, &e.Location, &e.Description, &e.JobSource, &e.MediaURL,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, persistErr("failed to scan work experience", err)
		}
		index[e.ID] = len(out)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("error iterating work experiences", err)
	}
	if len(out) == 0 {
		return out, nil
	}

	accRows, err := r.db.Query(ctx, `
		SELECT a.id, a.work_experience_id, a.position, a.title, a.description
		FROM accomplishments a
		JOIN work_experiences w ON w.id = a.work_experience_id
		WHERE w.user_id = $1
		ORDER BY a.work_experience_id, a.position ASC
	`, userID)
	if err != nil {
		return nil, persistErr("failed to query accomplishments", err)
	}
	defer accRows.Close()
	for accRows.Next() {
		var a experience.Accomplishment
		if err := accRows.Scan(&a.ID, &a.WorkExperienceID, &a.Position, &a.Title, &a.Description); err != nil {
			return nil, persistErr("failed to scan accomplishment", err)
		}
		if i, ok := index[a.WorkExperienceID]; ok {
			out[i].Accomplishments = append(out[i].Accomplishments, a)
		}
	}
	if err := accRows.Err(); err != nil {
		return nil, persistErr("error iterating accomplishments", err)
	}

	skillRows, err := r.db.Query(ctx, `
		SELECT ws.work_experience_id, ws.skill_id
		FROM work_experience_skills ws
		JOIN work_experiences w ON w.id = ws.work_experience_id
		WHERE w.user_id = $1
	`, userID)
	if err != nil {
		return nil, persistErr("failed to query work experience skills", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var expID, skillID uuid.UUID
		if err := skillRows.Scan(&expID, &skillID); err != nil {
			return nil, persistErr("failed to scan work experience skill", err)
		}
		if i, ok := index[expID]; ok {
			out[i].SkillIDs = append(out[i].SkillIDs, skillID)
		}
	}
	if err := skillRows.Err(); err != nil {
		return nil, persistErr("error iterating work experience skills", err)
	}

	return out, nil
}
