package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	companyUC "github.com/khoahotran/hireboard/internal/application/usecase/company"
	"github.com/khoahotran/hireboard/pkg/apperror"
	"github.com/khoahotran/hireboard/pkg/logger"
)

const maxLogoSize = 5 << 20

type CompanyHandler struct {
	createCompanyUC *companyUC.CreateCompanyUseCase
	listCompaniesUC *companyUC.ListCompaniesUseCase
	getCompanyUC    *companyUC.GetCompanyUseCase
	uploadLogoUC    *companyUC.UploadLogoUseCase
	logger          logger.Logger
}

func NewCompanyHandler(
	createUC *companyUC.CreateCompanyUseCase,
	listUC *companyUC.ListCompaniesUseCase,
	getUC *companyUC.GetCompanyUseCase,
	uploadLogoUC *companyUC.UploadLogoUseCase,
	log logger.Logger,
) *CompanyHandler {
	return &CompanyHandler{
		createCompanyUC: createUC,
		listCompaniesUC: listUC,
		getCompanyUC:    getUC,
		uploadLogoUC:    uploadLogoUC,
		logger:          log,
	}
}

func (h *CompanyHandler) CreateCompany(c *gin.Context) {
	var req CreateCompanyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.createCompanyUC.Execute(c.Request.Context(), companyUC.CreateCompanyInput{
		Name:     req.Name,
		Email:    req.Email,
		Contact:  req.Contact,
		Website:  req.Website,
		Industry: req.Industry,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCompanyDTO(output.Company))
}

func (h *CompanyHandler) ListCompanies(c *gin.Context) {
	output, err := h.listCompaniesUC.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.Companies)
}

func (h *CompanyHandler) GetCompany(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid company ID", err))
		return
	}

	co, err := h.getCompanyUC.Execute(c.Request.Context(), companyID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCompanyDTO(co))
}

func (h *CompanyHandler) UploadLogo(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid company ID", err))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	if fileHeader.Size > maxLogoSize {
		c.Error(apperror.NewInvalidInput("logo must not exceed 5MB", nil))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	output, err := h.uploadLogoUC.Execute(c.Request.Context(), companyUC.UploadLogoInput{
		CompanyID: companyID,
		File:      file,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCompanyDTO(output.Company))
}
