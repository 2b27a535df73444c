package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	experienceUC "github.com/khoahotran/hireboard/internal/application/usecase/experience"
	"github.com/khoahotran/hireboard/internal/domain/experience"
	"github.com/khoahotran/hireboard/pkg/apperror"
)

type ExperienceHandler struct {
	updateExperiencesUC *experienceUC.UpdateExperiencesUseCase
	listExperiencesUC   *experienceUC.ListExperiencesUseCase
}

func NewExperienceHandler(updateUC *experienceUC.UpdateExperiencesUseCase, listUC *experienceUC.ListExperiencesUseCase) *ExperienceHandler {
	return &ExperienceHandler{updateExperiencesUC: updateUC, listExperiencesUC: listUC}
}

func (h *ExperienceHandler) UpdateMyExperiences(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	// the aggregate validates itself; binding only decodes
	var req experience.ExperienceUpdateData
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.updateExperiencesUC.Execute(c.Request.Context(), experienceUC.UpdateExperiencesInput{
		UserID: userID,
		Data:   req,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.IDs)
}

func (h *ExperienceHandler) ListMyExperiences(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewUnauthorized("userID not found in context", nil))
		return
	}

	items, err := h.listExperiencesUC.Execute(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToWorkExperienceDTOs(items))
}
