package handler

import (
	"net/http"

	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/service"
	"anoa.com/rhythmrank/pkg/response"
	"anoa.com/rhythmrank/pkg/validator"
	"github.com/gin-gonic/gin"
)

type LeaderboardHandler struct {
	leaderboardService service.LeaderboardService
	performanceService service.PerformanceService
}

func NewLeaderboardHandler(
	leaderboardService service.LeaderboardService,
	performanceService service.PerformanceService,
) *LeaderboardHandler {
	return &LeaderboardHandler{
		leaderboardService: leaderboardService,
		performanceService: performanceService,
	}
}

func (h *LeaderboardHandler) Scoreboard(c *gin.Context) {
	bid, err := parseBid(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	entries, err := h.leaderboardService.Scoreboard(c.Request.Context(), bid)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// IngestPP accepts pp tuples from the rating calculator. Privileged route.
func (h *LeaderboardHandler) IngestPP(c *gin.Context) {
	var input service.ScorePPInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.performanceService.IngestScorePP(c.Request.Context(), input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *LeaderboardHandler) UserRating(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	mode := model.GameMode(c.DefaultQuery("mode", string(model.GameModeStandard)))
	version := model.PpVersion(c.DefaultQuery("pp_version", string(model.PpV1)))

	rating, err := h.performanceService.UserRating(c.Request.Context(), id, mode, version)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, rating)
}
