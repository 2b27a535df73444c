package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/khoahotran/hireboard/internal/domain/skill"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type postgresSkillRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSkillRepo(db *pgxpool.Pool, logger logger.Logger) skill.Repository {
	return &postgresSkillRepo{db: db, logger: logger}
}

func scanSkills(rows pgx.Rows) ([]skill.Skill, error) {
	defer rows.Close()
	skills := make([]skill.Skill, 0)
	for rows.Next() {
		var s skill.Skill
		if err := rows.Scan(&s.ID, &s.Name, &s.Slug); err != nil {
			return nil, persistErr("failed to scan skill", err)
		}
		skills = append(skills, s)
	}
	if err := rows.Err(); err != nil {
		return nil, persistErr("error iterating skills", err)
	}
	return skills, nil
}

func (r *postgresSkillRepo) List(ctx context.Context) ([]skill.Skill, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM skills ORDER BY name ASC`)
	if err != nil {
		return nil, persistErr("failed to query skills", err)
	}
	return scanSkills(rows)
}

func (r *postgresSkillRepo) FindOrCreateSkills(ctx context.Context, names []string) ([]skill.Skill, error) {
	toFind := make(map[string]string)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		toFind[skill.Slugify(name)] = name
	}
	if len(toFind) == 0 {
		return []skill.Skill{}, nil
	}

	slugs := make([]string, 0, len(toFind))
	insertQuery := `INSERT INTO skills (id, name, slug) VALUES `
	var inserts []string
	var args []interface{}
	i := 1
	for slug, name := range toFind {
		slugs = append(slugs, slug)
		inserts = append(inserts, fmt.Sprintf("($%d, $%d, $%d)", i, i+1, i+2))
		args = append(args, uuid.New(), name, slug)
		i += 3
	}
	insertQuery += strings.Join(inserts, ",") + " ON CONFLICT (slug) DO NOTHING"

	if _, err := r.db.Exec(ctx, insertQuery, args...); err != nil {
		return nil, persistErr("failed to bulk insert skills", err)
	}

	rows, err := r.db.Query(ctx, `SELECT id, name, slug FROM skills WHERE slug = ANY($1) ORDER BY name ASC`, slugs)
	if err != nil {
		return nil, persistErr("failed to retrieve skills", err)
	}
	return scanSkills(rows)
}

func (r *postgresSkillRepo) GetSkillsForJob(ctx context.Context, jobID uuid.UUID) ([]skill.Skill, error) {
	query := `
		SELECT s.id, s.name, s.slug
		FROM skills s
		JOIN job_skills js ON s.id = js.skill_id
		WHERE js.job_id = $1
		ORDER BY s.name ASC
	`
	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, persistErr("failed to query job skills", err)
	}
	return scanSkills(rows)
}
