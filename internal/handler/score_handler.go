package handler

import (
	"net/http"
	"strconv"

	"anoa.com/rhythmrank/internal/service"
	"anoa.com/rhythmrank/pkg/apperror"
	"anoa.com/rhythmrank/pkg/response"
	"anoa.com/rhythmrank/pkg/validator"
	"github.com/gin-gonic/gin"
)

type ScoreHandler struct {
	scoreService service.ScoreService
}

func NewScoreHandler(scoreService service.ScoreService) *ScoreHandler {
	return &ScoreHandler{scoreService: scoreService}
}

func (h *ScoreHandler) Submit(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input service.SubmitScoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}
	input.UserID = userID

	record, err := h.scoreService.Submit(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *ScoreHandler) Get(c *gin.Context) {
	id, err := parseScoreID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	record, err := h.scoreService.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *ScoreHandler) Verify(c *gin.Context) {
	id, err := parseScoreID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.scoreService.Verify(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *ScoreHandler) ListMine(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	scores, err := h.scoreService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, scores)
}

func parseScoreID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, apperror.New(0, "invalid score id", apperror.ErrInvalidInput)
	}
	return id, nil
}
