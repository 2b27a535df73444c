package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/khoahotran/hireboard/adapters/persistence"
	authUC "github.com/khoahotran/hireboard/internal/application/usecase/auth"
	companyUC "github.com/khoahotran/hireboard/internal/application/usecase/company"
	experienceUC "github.com/khoahotran/hireboard/internal/application/usecase/experience"
	healthUC "github.com/khoahotran/hireboard/internal/application/usecase/health"
	jobUC "github.com/khoahotran/hireboard/internal/application/usecase/job"
	skillUC "github.com/khoahotran/hireboard/internal/application/usecase/skill"
	"github.com/khoahotran/hireboard/internal/config"
	"github.com/khoahotran/hireboard/internal/domain/user"
	"github.com/khoahotran/hireboard/pkg/auth"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type AuthE2ETestSuite struct {
	suite.Suite
	Router   *gin.Engine
	dbPool   *pgxpool.Pool
	testUser user.User
	testPass string
}

func (s *AuthE2ETestSuite) SetupSuite() {
	cfg, err := config.LoadConfig("../..")
	if err != nil {
		s.T().Fatalf("Failed to load config for E2E test: %v", err)
	}

	dbPool, err := pgxpool.New(context.Background(), cfg.DB.DSN)
	if err != nil {
		s.T().Fatalf("E2E test failed to connect postgres: %v", err)
	}
	s.dbPool = dbPool

	appLogger := logger.NewZapLogger("development", "warn")

	s.testPass = "e2e_test_password_123"
	hash, _ := auth.HashPassword(s.testPass)
	s.testUser = user.User{
		ID:           uuid.New(),
		Email:        "e2e_test@example.com",
		PasswordHash: hash,
		Role:         user.RoleCandidate,
	}
	query := `INSERT INTO users (id, email, password_hash, role) VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET password_hash = $3 RETURNING id`
	err = dbPool.QueryRow(context.Background(), query, s.testUser.ID, s.testUser.Email, s.testUser.PasswordHash, s.testUser.Role).Scan(&s.testUser.ID)
	if err != nil {
		s.T().Fatalf("E2E test failed to seed user: %v", err)
	}

	userRepo := persistence.NewPostgresUserRepo(dbPool, appLogger)
	companyRepo := persistence.NewPostgresCompanyRepo(dbPool, appLogger)
	companyCache := persistence.NewRedisCompanyCache(nil, cfg.Cache.CompanyListTTL, appLogger)
	experienceRepo := persistence.NewPostgresExperienceRepo(dbPool, appLogger)
	skillRepo := persistence.NewPostgresSkillRepo(dbPool, appLogger)
	jobRepo := persistence.NewPostgresJobRepo(dbPool, appLogger)
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)

	handlers := Handlers{
		Auth: NewAuthHandler(
			authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger),
			authUC.NewRegisterUseCase(userRepo, appLogger),
			appLogger,
		),
		Company: NewCompanyHandler(
			companyUC.NewCreateCompanyUseCase(companyRepo, companyCache, appLogger),
			companyUC.NewListCompaniesUseCase(companyRepo, companyCache, appLogger),
			companyUC.NewGetCompanyUseCase(companyRepo),
			companyUC.NewUploadLogoUseCase(companyRepo, companyCache, nil, nil, appLogger),
			appLogger,
		),
		Experience: NewExperienceHandler(
			experienceUC.NewUpdateExperiencesUseCase(experienceRepo, appLogger),
			experienceUC.NewListExperiencesUseCase(experienceRepo),
		),
		Health: NewHealthHandler(healthUC.NewCheckDBUseCase(dbPool, userRepo), appLogger),
		Job: NewJobHandler(
			jobUC.NewCreateJobUseCase(jobRepo, skillRepo, appLogger),
			jobUC.NewListPublicJobsUseCase(jobRepo, appLogger),
			jobUC.NewGetPublicJobUseCase(jobRepo, skillRepo, appLogger),
			appLogger,
		),
		Skill: NewSkillHandler(skillUC.NewListSkillsUseCase(skillRepo)),
	}

	gin.SetMode(gin.TestMode)
	s.Router = NewRouter(RouterConfig{RequestTimeout: cfg.App.RequestTimeout}, handlers, jwtSvc, appLogger)
}

func (s *AuthE2ETestSuite) TearDownSuite() {
	if s.dbPool != nil {
		_, _ = s.dbPool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, s.testUser.ID)
		s.dbPool.Close()
	}
}

func TestAuthE2E(t *testing.T) {
	if os.Getenv("E2E_TESTS") == "" {
		t.Skip("Skipping E2E tests. Set E2E_TESTS=1 to run.")
	}
	suite.Run(t, new(AuthE2ETestSuite))
}

func (s *AuthE2ETestSuite) Test_Login_Flow() {
	bodyBad, _ := json.Marshal(gin.H{"email": s.testUser.Email, "password": "wrongpassword"})
	reqBad := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(bodyBad))
	reqBad.Header.Set("Content-Type", "application/json")

	rrBad := httptest.NewRecorder()
	s.Router.ServeHTTP(rrBad, reqBad)

	assert.Equal(s.T(), http.StatusUnauthorized, rrBad.Code)

	bodyGood, _ := json.Marshal(gin.H{"email": s.testUser.Email, "password": s.testPass})
	reqGood := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBuffer(bodyGood))
	reqGood.Header.Set("Content-Type", "application/json")

	rrGood := httptest.NewRecorder()
	s.Router.ServeHTTP(rrGood, reqGood)

	assert.Equal(s.T(), http.StatusOK, rrGood.Code)

	var loginResponse map[string]string
	_ = json.Unmarshal(rrGood.Body.Bytes(), &loginResponse)
	accessToken := loginResponse["access_token"]
	assert.NotEmpty(s.T(), accessToken)

	bodyExp, _ := json.Marshal(gin.H{
		"work_experiences": []gin.H{{"title": "Engineer", "company": "Acme", "employment_type": "full_time", "is_current": true}},
		"accomplishments":  []gin.H{{"title": "Shipped", "temp_work_experience_index": 0}},
	})
	reqPut := httptest.NewRequest(http.MethodPut, "/api/me/experiences", bytes.NewBuffer(bodyExp))
	reqPut.Header.Set("Content-Type", "application/json")
	reqPut.Header.Set("Authorization", "Bearer "+accessToken)

	rrPut := httptest.NewRecorder()
	s.Router.ServeHTTP(rrPut, reqPut)

	assert.Equal(s.T(), http.StatusOK, rrPut.Code)

	reqAuth := httptest.NewRequest(http.MethodGet, "/api/me/experiences", nil)
	reqAuth.Header.Set("Authorization", "Bearer "+accessToken)

	rrAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrAuth, reqAuth)

	assert.Equal(s.T(), http.StatusOK, rrAuth.Code)
	assert.Contains(s.T(), rrAuth.Body.String(), "Shipped")

	reqNoAuth := httptest.NewRequest(http.MethodGet, "/api/me/experiences", nil)
	rrNoAuth := httptest.NewRecorder()
	s.Router.ServeHTTP(rrNoAuth, reqNoAuth)

	assert.Equal(s.T(), http.StatusUnauthorized, rrNoAuth.Code)
}
