package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	skillUC "github.com/khoahotran/hireboard/internal/application/usecase/skill"
)

type SkillHandler struct {
	listSkillsUC *skillUC.ListSkillsUseCase
}

func NewSkillHandler(listUC *skillUC.ListSkillsUseCase) *SkillHandler {
	return &SkillHandler{listSkillsUC: listUC}
}

func (h *SkillHandler) ListSkills(c *gin.Context) {
	skills, err := h.listSkillsUC.Execute(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, skills)
}
