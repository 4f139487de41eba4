package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/promptclf/internal/usecase"
)

// ClassifyHandler handles text classification requests
type ClassifyHandler struct {
	classifyUC usecase.ClassifyUsecase
}

// NewClassifyHandler creates a new classify handler
func NewClassifyHandler(classifyUC usecase.ClassifyUsecase) *ClassifyHandler {
	return &ClassifyHandler{classifyUC: classifyUC}
}

// Classify handles POST /classify and answers with a bare {"label": ...} body
func (h *ClassifyHandler) Classify(c *gin.Context) {
	output, ok := h.classify(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, output)
}

// ClassifyV1 handles POST /api/v1/classify and answers with the response envelope
func (h *ClassifyHandler) ClassifyV1(c *gin.Context) {
	output, ok := h.classify(c)
	if !ok {
		return
	}
	respondSuccess(c, http.StatusOK, output)
}

func (h *ClassifyHandler) classify(c *gin.Context) (*usecase.ClassifyOutput, bool) {
	var input usecase.ClassifyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		HandleInvalidRequest(c, err)
		return nil, false
	}

	output, err := h.classifyUC.Classify(c.Request.Context(), &input)
	if err != nil {
		HandleUsecaseError(c, err)
		return nil, false
	}
	return output, true
}
