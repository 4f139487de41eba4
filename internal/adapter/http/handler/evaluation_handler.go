package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ressKim-io/promptclf/internal/usecase"
)

// EvaluationHandler serves stored evaluation runs
type EvaluationHandler struct {
	evaluationUC usecase.EvaluationUsecase
}

// NewEvaluationHandler creates a new evaluation handler
func NewEvaluationHandler(evaluationUC usecase.EvaluationUsecase) *EvaluationHandler {
	return &EvaluationHandler{evaluationUC: evaluationUC}
}

// ListEvaluations handles GET /api/v1/evaluations?dataset=&limit=&offset=
func (h *EvaluationHandler) ListEvaluations(c *gin.Context) {
	limit, offset := usecase.HistoryPage(queryInt(c, "limit"), queryInt(c, "offset"))

	output, err := h.evaluationUC.History(c.Request.Context(), c.Query("dataset"), limit, offset)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}

// GetEvaluation handles GET /api/v1/evaluations/:id
func (h *EvaluationHandler) GetEvaluation(c *gin.Context) {
	id, err := runIDParam(c)
	if err != nil {
		HandleInvalidUUID(c, "run id")
		return
	}

	output, err := h.evaluationUC.GetRun(c.Request.Context(), id)
	if err != nil {
		HandleUsecaseError(c, err)
		return
	}

	respondSuccess(c, http.StatusOK, output)
}
