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

type BeatmapHandler struct {
	beatmapService service.BeatmapService
}

func NewBeatmapHandler(beatmapService service.BeatmapService) *BeatmapHandler {
	return &BeatmapHandler{beatmapService: beatmapService}
}

func (h *BeatmapHandler) Upsert(c *gin.Context) {
	var input service.UpsertBeatmapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	beatmap, err := h.beatmapService.Upsert(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, beatmap)
}

func (h *BeatmapHandler) Get(c *gin.Context) {
	bid, err := parseBid(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	beatmap, err := h.beatmapService.Get(c.Request.Context(), bid)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, beatmap)
}

// GetByMd5 looks a map up by file hash (?md5=), the identifier clients know
// before they know the server-assigned id.
func (h *BeatmapHandler) GetByMd5(c *gin.Context) {
	md5 := c.Query("md5")
	if md5 == "" {
		response.ResponseError(c, apperror.New(0, "md5 query parameter required", apperror.ErrInvalidInput))
		return
	}

	beatmap, err := h.beatmapService.GetByMd5(c.Request.Context(), md5)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, beatmap)
}

func (h *BeatmapHandler) Rate(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input service.RateBeatmapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}
	input.UserID = userID

	avg, err := h.beatmapService.Rate(c.Request.Context(), input)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"average_rating": avg})
}

func (h *BeatmapHandler) Delete(c *gin.Context) {
	bid, err := parseBid(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.beatmapService.Delete(c.Request.Context(), bid); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseBid(c *gin.Context) (int32, error) {
	bid, err := strconv.ParseInt(c.Param("bid"), 10, 32)
	if err != nil {
		return 0, apperror.New(0, "invalid beatmap id", apperror.ErrInvalidInput)
	}
	return int32(bid), nil
}
