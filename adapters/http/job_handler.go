package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	jobUC "github.com/khoahotran/hireboard/internal/application/usecase/job"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

type JobHandler struct {
	createJobUC      *jobUC.CreateJobUseCase
	listPublicJobsUC *jobUC.ListPublicJobsUseCase
	getPublicJobUC   *jobUC.GetPublicJobUseCase
	logger           logger.Logger
}

func NewJobHandler(
	createUC *jobUC.CreateJobUseCase,
	listUC *jobUC.ListPublicJobsUseCase,
	getUC *jobUC.GetPublicJobUseCase,
	log logger.Logger,
) *JobHandler {
	return &JobHandler{createJobUC: createUC, listPublicJobsUC: listUC, getPublicJobUC: getUC, logger: log}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	output, err := h.createJobUC.Execute(c.Request.Context(), jobUC.CreateJobInput{
		PostedBy:       userID,
		CompanyID:      req.CompanyID,
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		SalaryMin:      req.SalaryMin,
		SalaryMax:      req.SalaryMax,
		IsPublic:       isPublic,
		SkillNames:     req.Skills,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"job": output.Job, "skills": output.Skills})
}

func (h *JobHandler) ListPublicJobs(c *gin.Context) {
	var q ListJobsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.Error(apperror.NewInvalidInput("invalid query parameters", err))
		return
	}

	input := jobUC.ListPublicJobsInput{
		Query:          q.Q,
		Location:       q.Location,
		EmploymentType: q.EmploymentType,
		Page:           q.Page,
		Limit:          q.Limit,
	}
	if q.CompanyID != "" {
		id, err := uuid.Parse(q.CompanyID)
		if err != nil {
			c.Error(apperror.NewInvalidInput("invalid company_id", err))
			return
		}
		input.CompanyID = &id
	}

	output, err := h.listPublicJobsUC.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]JobSummaryDTO, len(output.Jobs))
	for i, l := range output.Jobs {
		dtos[i] = ToJobSummaryDTO(l)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *JobHandler) GetPublicJob(c *gin.Context) {
	jobID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid job ID", err))
		return
	}

	output, err := h.getPublicJobUC.Execute(c.Request.Context(), jobID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToJobDTO(output.Job, output.Skills))
}
