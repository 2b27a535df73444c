package company

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/hireboard/adapters/event"
	"github.com/khoahotran/hireboard/internal/domain/company"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type memRepo struct {
	mu        sync.Mutex
	companies map[uuid.UUID]company.Company
	listCalls int
	// afterList runs once the store read is done, outside the lock.
	afterList func()
}

func newMemRepo(names ...string) *memRepo {
	r := &memRepo{companies: map[uuid.UUID]company.Company{}}
	for _, n := range names {
		id := uuid.New()
		r.companies[id] = company.Company{ID: id, Name: n, Email: "x@y.com"}
	}
	return r
}

func (r *memRepo) Save(_ context.Context, c *company.Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.companies[c.ID] = *c
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uuid.UUID) (*company.Company, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return nil, apperror.NewNotFound("company", id.String())
	}
	return &c, nil
}

func (r *memRepo) ListSummaries(_ context.Context) ([]company.Summary, error) {
	r.mu.Lock()
	r.listCalls++
	out := []company.Summary{}
	for _, c := range r.companies {
		out = append(out, company.Summary{ID: c.ID, Name: c.Name, LogoURL: c.LogoURL})
	}
	hook := r.afterList
	r.afterList = nil
	r.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (r *memRepo) UpdateLogo(_ context.Context, id uuid.UUID, logoURL string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.companies[id]
	if !ok {
		return apperror.NewNotFound("company", id.String())
	}
	c.LogoURL = &logoURL
	r.companies[id] = c
	return nil
}

func (r *memRepo) anyID() uuid.UUID {
	for id := range r.companies {
		return id
	}
	return uuid.Nil
}

type memCache struct {
	gen         int64
	entries     map[int64][]company.Summary
	genErr      error
	getErr      error
	invalidated int
}

func (c *memCache) warm() bool {
	_, ok := c.entries[c.gen]
	return ok
}

func (c *memCache) Generation(context.Context) (int64, error) {
	return c.gen, c.genErr
}

func (c *memCache) GetSummaries(_ context.Context, gen int64) ([]company.Summary, bool, error) {
	if c.getErr != nil {
		return nil, false, c.getErr
	}
	items, ok := c.entries[gen]
	return items, ok, nil
}

func (c *memCache) SetSummaries(_ context.Context, gen int64, items []company.Summary) error {
	if c.entries == nil {
		c.entries = map[int64][]company.Summary{}
	}
	c.entries[gen] = items
	return nil
}

func (c *memCache) Invalidate(context.Context) error {
	c.gen++
	c.invalidated++
	return nil
}

type fakeUploader struct {
	uploadedFolder string
	uploadedID     string
	deleted        chan string
	uploadErr      error
}

func (u *fakeUploader) Upload(_ context.Context, r io.Reader, folder, publicID string) (string, error) {
	if u.uploadErr != nil {
		return "", u.uploadErr
	}
	_, _ = io.ReadAll(r)
	u.uploadedFolder, u.uploadedID = folder, publicID
	return "https://cdn.example/" + folder + "/" + publicID + ".png", nil
}

func (u *fakeUploader) Delete(_ context.Context, publicID string) error {
	if u.deleted != nil {
		u.deleted <- publicID
	}
	return nil
}

func (u *fakeUploader) TransformedURL(publicID, transformation string) (string, error) {
	return "https://cdn.example/" + transformation + "/" + publicID, nil
}

type chanPublisher struct {
	events chan event.CompanyEventPayload
}

func (p *chanPublisher) PublishCompanyEvent(_ context.Context, payload event.CompanyEventPayload) error {
	p.events <- payload
	return nil
}

func TestCreateCompany_InvalidatesCache(t *testing.T) {
	repo := newMemRepo()
	cache := &memCache{entries: map[int64][]company.Summary{0: {}}}
	uc := NewCreateCompanyUseCase(repo, cache, logger.NewNop())

	out, err := uc.Execute(context.Background(), CreateCompanyInput{Name: "Acme", Email: "a@acme.com", Contact: "123", Website: "acme.com"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, out.Company.ID)
	assert.Equal(t, 1, cache.invalidated)
	assert.False(t, cache.warm())
}

func TestCreateCompany_StoresFieldsAsGiven(t *testing.T) {
	repo := newMemRepo()
	uc := NewCreateCompanyUseCase(repo, &memCache{}, logger.NewNop())
	industry := " Fintech"
	in := CreateCompanyInput{Name: " Acme Labs ", Email: "a@acme.com", Contact: " 555 ", Website: "acme.com/ ", Industry: &industry}

	out, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, in.Name, out.Company.Name)
	assert.Equal(t, in.Contact, out.Company.Contact)
	assert.Equal(t, in.Website, out.Company.Website)
	assert.Equal(t, &industry, out.Company.Industry)

	stored, err := repo.FindByID(context.Background(), out.Company.ID)
	require.NoError(t, err)
	assert.Equal(t, " Acme Labs ", stored.Name)
}

func TestCreateCompany_RejectsInvalid(t *testing.T) {
	uc := NewCreateCompanyUseCase(newMemRepo(), &memCache{}, logger.NewNop())

	_, err := uc.Execute(context.Background(), CreateCompanyInput{Name: "", Email: "a@acme.com"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), CreateCompanyInput{Name: "   ", Email: "a@acme.com"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), CreateCompanyInput{Name: "Acme", Email: "nope"})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestListCompanies_MissThenHit(t *testing.T) {
	repo := newMemRepo("Zeta", "Acme", "Midway")
	cache := &memCache{}
	uc := NewListCompaniesUseCase(repo, cache, logger.NewNop())

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Companies, 3)
	assert.Equal(t, []string{"Acme", "Midway", "Zeta"}, names(out.Companies))
	assert.True(t, cache.warm())
	assert.Equal(t, 1, repo.listCalls)

	out, err = uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Midway", "Zeta"}, names(out.Companies))
	assert.Equal(t, 1, repo.listCalls)
}

func TestListCompanies_EmptyStore(t *testing.T) {
	uc := NewListCompaniesUseCase(newMemRepo(), &memCache{}, logger.NewNop())
	out, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, out.Companies)
	assert.Empty(t, out.Companies)
}

func TestListCompanies_CacheErrorFallsBackToStore(t *testing.T) {
	repo := newMemRepo("Acme")
	uc := NewListCompaniesUseCase(repo, &memCache{getErr: errors.New("redis down")}, logger.NewNop())
	out, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Companies, 1)
	assert.Equal(t, 1, repo.listCalls)
}

func TestListCompanies_UnknownGenerationSkipsCache(t *testing.T) {
	repo := newMemRepo("Acme")
	cache := &memCache{genErr: errors.New("redis down")}
	uc := NewListCompaniesUseCase(repo, cache, logger.NewNop())

	out, err := uc.Execute(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Companies, 1)
	assert.Empty(t, cache.entries)
}

func TestListCompanies_CreateDuringStoreReadIsVisibleNext(t *testing.T) {
	repo := newMemRepo("Zeta")
	cache := &memCache{}
	create := NewCreateCompanyUseCase(repo, cache, logger.NewNop())
	list := NewListCompaniesUseCase(repo, cache, logger.NewNop())

	repo.afterList = func() {
		_, err := create.Execute(context.Background(), CreateCompanyInput{Name: "Acme", Email: "a@acme.com"})
		require.NoError(t, err)
	}

	out, err := list.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Zeta"}, names(out.Companies))

	out, err = list.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Zeta"}, names(out.Companies))
	assert.Equal(t, 2, repo.listCalls)

	out, err = list.Execute(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Acme", "Zeta"}, names(out.Companies))
	assert.Equal(t, 2, repo.listCalls)
}

func TestUploadLogo_PublishesEvent(t *testing.T) {
	repo := newMemRepo("Acme")
	id := repo.anyID()
	cache := &memCache{entries: map[int64][]company.Summary{0: {}}}
	up := &fakeUploader{}
	pub := &chanPublisher{events: make(chan event.CompanyEventPayload, 1)}
	uc := NewUploadLogoUseCase(repo, cache, up, pub, logger.NewNop())

	out, err := uc.Execute(context.Background(), UploadLogoInput{CompanyID: id, File: strings.NewReader("png")})
	require.NoError(t, err)
	require.NotNil(t, out.Company.LogoURL)
	assert.Equal(t, "companies/"+id.String()+"/logos", up.uploadedFolder)
	assert.Equal(t, 1, cache.invalidated)

	select {
	case ev := <-pub.events:
		assert.Equal(t, event.CompanyEventLogoUploaded, ev.EventType)
		assert.Equal(t, id, ev.CompanyID)
		assert.Equal(t, up.uploadedFolder+"/"+up.uploadedID, ev.OriginalPublicID)
	case <-time.After(2 * time.Second):
		t.Fatal("company event was not published")
	}
}

func TestUploadLogo_UnknownCompany(t *testing.T) {
	up := &fakeUploader{}
	uc := NewUploadLogoUseCase(newMemRepo(), &memCache{}, up, nil, logger.NewNop())
	_, err := uc.Execute(context.Background(), UploadLogoInput{CompanyID: uuid.New(), File: strings.NewReader("png")})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	assert.Empty(t, up.uploadedID)
}

func TestUploadLogo_WithoutStorage(t *testing.T) {
	repo := newMemRepo("Acme")
	uc := NewUploadLogoUseCase(repo, &memCache{}, nil, nil, logger.NewNop())
	_, err := uc.Execute(context.Background(), UploadLogoInput{CompanyID: repo.anyID(), File: strings.NewReader("png")})
	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestProcessLogoEvent(t *testing.T) {
	repo := newMemRepo("Acme")
	id := repo.anyID()
	cache := &memCache{entries: map[int64][]company.Summary{0: {}}}
	uc := NewProcessLogoEventUseCase(repo, cache, &fakeUploader{}, logger.NewNop())

	err := uc.Execute(context.Background(), event.CompanyEventPayload{
		EventType:        event.CompanyEventLogoUploaded,
		CompanyID:        id,
		OriginalPublicID: "companies/x/logos/y",
	})
	require.NoError(t, err)

	c, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, c.LogoURL)
	assert.Contains(t, *c.LogoURL, LogoTransformation)
	assert.Equal(t, 1, cache.invalidated)
}

func TestProcessLogoEvent_SkipsUnknownCompany(t *testing.T) {
	uc := NewProcessLogoEventUseCase(newMemRepo(), &memCache{}, &fakeUploader{}, logger.NewNop())
	err := uc.Execute(context.Background(), event.CompanyEventPayload{
		EventType:        event.CompanyEventLogoUploaded,
		CompanyID:        uuid.New(),
		OriginalPublicID: "p",
	})
	assert.NoError(t, err)
}

func names(items []company.Summary) []string {
	out := make([]string, len(items))
	for i, s := range items {
		out[i] = s.Name
	}
	return out
}
