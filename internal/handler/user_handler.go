package handler

import (
	"net/http"
	"strconv"

	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/service"
	"anoa.com/rhythmrank/pkg/apperror"
	"anoa.com/rhythmrank/pkg/response"
	"anoa.com/rhythmrank/pkg/validator"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService  service.UserService
	statsService service.StatsService
}

func NewUserHandler(userService service.UserService, statsService service.StatsService) *UserHandler {
	return &UserHandler{userService: userService, statsService: statsService}
}

func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetStats(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	mode := model.GameMode(c.DefaultQuery("mode", string(model.GameModeStandard)))
	if !mode.Valid() {
		response.ResponseError(c, apperror.New(0, "unknown game mode", apperror.ErrInvalidInput))
		return
	}

	stats, err := h.statsService.Get(c.Request.Context(), id, mode)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) RecomputeStats(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	mode := model.GameMode(c.DefaultQuery("mode", string(model.GameModeStandard)))
	if !mode.Valid() {
		response.ResponseError(c, apperror.New(0, "unknown game mode", apperror.ErrInvalidInput))
		return
	}

	stats, err := h.statsService.Recompute(c.Request.Context(), id, mode)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *UserHandler) GetPrivileges(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	privileges, err := h.userService.Privileges(c.Request.Context(), id)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, privileges)
}

type grantPrivilegeInput struct {
	PrivilegeID int64 `json:"privilege_id" binding:"required"`
}

func (h *UserHandler) GrantPrivilege(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	grantorID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input grantPrivilegeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.userService.GrantPrivilege(c.Request.Context(), id, grantorID, input.PrivilegeID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) RevokePrivilege(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	privilegeID, err := strconv.ParseInt(c.Param("privilege_id"), 10, 64)
	if err != nil {
		response.ResponseError(c, apperror.New(0, "invalid privilege id", apperror.ErrInvalidInput))
		return
	}

	if err := h.userService.RevokePrivilege(c.Request.Context(), id, privilegeID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) RecordHardware(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input service.HardwareRecordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}
	input.UserID = userID

	if err := h.userService.RecordHardware(c.Request.Context(), input); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type followInput struct {
	FollowID int32   `json:"follow_id" binding:"required"`
	Remark   *string `json:"remark,omitempty" binding:"omitempty,max=16"`
}

func (h *UserHandler) Follow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input followInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.userService.Follow(c.Request.Context(), userID, input.FollowID, input.Remark); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Unfollow(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	followID, err := parseUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.userService.Unfollow(c.Request.Context(), userID, followID); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Following(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	rels, err := h.userService.Following(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, rels)
}

type favouriteInput struct {
	BeatmapsetID int32   `json:"beatmapset_id" binding:"required"`
	Comment      *string `json:"comment,omitempty" binding:"omitempty,max=15"`
}

func (h *UserHandler) Favourite(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var input favouriteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	if err := h.userService.Favourite(c.Request.Context(), userID, input.BeatmapsetID, input.Comment); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Unfavourite(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	sid, err := strconv.ParseInt(c.Param("sid"), 10, 32)
	if err != nil {
		response.ResponseError(c, apperror.New(0, "invalid beatmapset id", apperror.ErrInvalidInput))
		return
	}

	if err := h.userService.Unfavourite(c.Request.Context(), userID, int32(sid)); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *UserHandler) Favourites(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	favs, err := h.userService.Favourites(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, favs)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, err := parseUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if err := h.userService.Delete(c.Request.Context(), id); err != nil {
		response.ResponseError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func parseUserID(c *gin.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, apperror.New(0, "invalid user id", apperror.ErrInvalidInput)
	}
	return int32(id), nil
}
