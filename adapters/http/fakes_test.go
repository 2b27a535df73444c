package http

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/khoahotran/hireboard/internal/domain/company"
	"github.com/khoahotran/hireboard/internal/domain/experience"
	"github.com/khoahotran/hireboard/internal/domain/job"
	"github.com/khoahotran/hireboard/internal/domain/skill"
	"github.com/khoahotran/hireboard/internal/domain/user"
	"github.com/khoahotran/hireboard/pkg/apperror"
)

type fakeCompanyRepo struct {
	mu        sync.Mutex
	companies map[uuid.UUID]*company.Company
	failWith  error
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: map[uuid.UUID]*company.Company{}}
}

func (r *fakeCompanyRepo) Save(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	for _, existing := range r.companies {
		if existing.Name == c.Name {
			return apperror.NewConflict("company", "name", c.Name)
		}
	}
	cp := *c
	r.companies[c.ID] = &cp
	return nil
}

func (r *fakeCompanyRepo) FindByID(_ context.Context, id uuid.UUID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, apperror.NewNotFound("company", id.String())
	}
	cp := *c
	return &cp, nil
}

func (r *fakeCompanyRepo) ListSummaries(_ context.Context) ([]company.Summary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	out := make([]company.Summary, 0, len(r.companies))
	for _, c := range r.companies {
		out = append(out, company.Summary{ID: c.ID, Name: c.Name, LogoURL: c.LogoURL, Industry: c.Industry})
	}
	return out, nil
}

func (r *fakeCompanyRepo) UpdateLogo(_ context.Context, id uuid.UUID, logoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return apperror.NewNotFound("company", id.String())
	}
	c.LogoURL = &logoURL
	return nil
}

// noopCache always misses.
type noopCache struct{}

func (noopCache) Generation(context.Context) (int64, error) { return 0, nil }
func (noopCache) GetSummaries(context.Context, int64) ([]company.Summary, bool, error) {
	return nil, false, nil
}
func (noopCache) SetSummaries(context.Context, int64, []company.Summary) error { return nil }
func (noopCache) Invalidate(context.Context) error                            { return nil }

type fakeUserRepo struct {
	mu       sync.Mutex
	users    map[string]*user.User
	countErr error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*user.User{}}
}

func (r *fakeUserRepo) Save(_ context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return apperror.NewConflict("user", "email", u.Email)
	}
	cp := *u
	r.users[u.Email] = &cp
	return nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[email]
	if !ok {
		return nil, apperror.NewNotFound("user", email)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countErr != nil {
		return 0, r.countErr
	}
	return int64(len(r.users)), nil
}

type fakePinger struct{ err error }

func (p fakePinger) Ping(context.Context) error { return p.err }

type fakeExperienceRepo struct {
	mu    sync.Mutex
	byUsr map[uuid.UUID][]experience.WorkExperience
}

func newFakeExperienceRepo() *fakeExperienceRepo {
	return &fakeExperienceRepo{byUsr: map[uuid.UUID][]experience.WorkExperience{}}
}

func (r *fakeExperienceRepo) ReplaceForUser(_ context.Context, userID uuid.UUID, items []experience.WorkExperience) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUsr[userID] = append([]experience.WorkExperience(nil), items...)
	return nil
}

func (r *fakeExperienceRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]experience.WorkExperience, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]experience.WorkExperience{}, r.byUsr[userID]...), nil
}

type fakeSkillRepo struct{}

func (fakeSkillRepo) List(context.Context) ([]skill.Skill, error) {
	return []skill.Skill{{ID: uuid.New(), Name: "Go", Slug: "go"}}, nil
}

func (fakeSkillRepo) FindOrCreateSkills(_ context.Context, names []string) ([]skill.Skill, error) {
	out := make([]skill.Skill, 0, len(names))
	for _, n := range names {
		out = append(out, skill.Skill{ID: uuid.New(), Name: n, Slug: skill.Slugify(n)})
	}
	return out, nil
}

func (fakeSkillRepo) GetSkillsForJob(context.Context, uuid.UUID) ([]skill.Skill, error) {
	return []skill.Skill{}, nil
}

type fakeJobRepo struct {
	mu        sync.Mutex
	companies *fakeCompanyRepo
	jobs      []*job.Job
}

func (r *fakeJobRepo) Save(ctx context.Context, j *job.Job, _ []uuid.UUID) error {
	if _, err := r.companies.FindByID(ctx, j.CompanyID); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.jobs = append(r.jobs, j)
	return nil
}

func (r *fakeJobRepo) FindPublicByID(ctx context.Context, id uuid.UUID) (*job.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, j := range r.jobs {
		if j.ID == id && j.IsPublic {
			return &job.Listing{Job: *j}, nil
		}
	}
	return nil, apperror.NewNotFound("job", id.String())
}

func (r *fakeJobRepo) ListPublic(_ context.Context, f job.ListFilter) ([]*job.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*job.Listing, 0)
	for _, j := range r.jobs {
		if !j.IsPublic {
			continue
		}
		if f.EmploymentType != "" && j.EmploymentType != f.EmploymentType {
			continue
		}
		out = append(out, &job.Listing{Job: *j})
	}
	return out, nil
}

var errStoreDown = errors.New("connection refused")
