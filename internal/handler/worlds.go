package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/BloggingApp/world-service/internal/dto"
	"github.com/BloggingApp/world-service/internal/service"
	"github.com/BloggingApp/world-service/internal/world"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func (h *Handler) worldIDParam(c *gin.Context) (uuid.UUID, bool) {
	worldID, err := uuid.Parse(strings.TrimSpace(c.Param("worldID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidWorldID.Error()))
		return uuid.Nil, false
	}
	return worldID, true
}

func (h *Handler) postIDParam(c *gin.Context) (int64, bool) {
	postID, err := strconv.ParseInt(strings.TrimSpace(c.Param("postID")), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidPostID.Error()))
		return 0, false
	}
	return postID, true
}

// writeResult maps a command outcome onto the response: a rejected command
// is a conflict carrying the reason untouched, an accepted one echoes the
// result so callers can see the appended events.
func writeResult(c *gin.Context, result world.Result, err error) {
	if err != nil {
		status := http.StatusInternalServerError
		if err == service.ErrWorldNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, dto.NewBasicResponse(false, err.Error()))
		return
	}

	if !result.OK {
		c.JSON(http.StatusConflict, result)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *Handler) worldsCreate(c *gin.Context) {
	worldID, err := h.services.World.Create(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, dto.CreateWorldResponse{WorldID: worldID})
}

func (h *Handler) worldsState(c *gin.Context) {
	worldID, ok := h.worldIDParam(c)
	if !ok {
		return
	}

	state, err := h.services.World.State(c.Request.Context(), worldID)
	if err != nil {
		status := http.StatusInternalServerError
		if err == service.ErrWorldNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, state)
}

func (h *Handler) worldsUndo(c *gin.Context) {
	worldID, ok := h.worldIDParam(c)
	if !ok {
		return
	}

	if err := h.services.World.Undo(c.Request.Context(), worldID); err != nil {
		status := http.StatusInternalServerError
		if err == service.ErrWorldNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "undone"))
}

func (h *Handler) worldsRedo(c *gin.Context) {
	worldID, ok := h.worldIDParam(c)
	if !ok {
		return
	}

	if err := h.services.World.Redo(c.Request.Context(), worldID); err != nil {
		status := http.StatusInternalServerError
		if err == service.ErrWorldNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.NewBasicResponse(true, "redone"))
}

func (h *Handler) usersCreate(c *gin.Context) {
	worldID, ok := h.worldIDParam(c)
	if !ok {
		return
	}

	var input dto.CreateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	result, err := h.services.World.CreateUser(c.Request.Context(), worldID, input.UserID)
	writeResult(c, result, err)
}

func (h *Handler) usersEdit(c *gin.Context) {
	worldID, ok := h.worldIDParam(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(strings.TrimSpace(c.Param("userID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	var input dto.EditUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	result, err := h.services.World.EditUser(c.Request.Context(), worldID, userID, input.Changes())
	writeResult(c, result, err)
}

func (h *Handler) usersReview(c *gin.Context) {
	moderator := h.getUserFromRequest(c)
	if moderator == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	worldID, ok := h.worldIDParam(c)
	if !ok {
		return
	}

	userID, err := uuid.Parse(strings.TrimSpace(c.Param("userID")))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, errInvalidUserID.Error()))
		return
	}

	result, err := h.services.World.ReviewUser(c.Request.Context(), worldID, userID, moderator.ID)
	writeResult(c, result, err)
}

func (h *Handler) postsCreate(c *gin.Context) {
	author := h.getUserFromRequest(c)
	if author == nil {
		c.JSON(http.StatusUnauthorized, dto.NewBasicResponse(false, errNotAuthorized.Error()))
		return
	}

	worldID, ok := h.worldIDParam(c)
	if !ok {
		return
	}

	var input dto.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	result, err := h.services.World.CreatePost(c.Request.Context(), worldID, input.PostID, author.ID)
	writeResult(c, result, err)
}

func (h *Handler) postsEdit(c *gin.Context) {
	worldID, ok := h.worldIDParam(c)
	if !ok {
		return
	}

	postID, ok := h.postIDParam(c)
	if !ok {
		return
	}

	var input dto.EditPostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewBasicResponse(false, err.Error()))
		return
	}

	result, err := h.services.World.EditPost(c.Request.Context(), worldID, postID, input.Changes())
	writeResult(c, result, err)
}

func (h *Handler) postsVisibility(c *gin.Context) {
	worldID, ok := h.worldIDParam(c)
	if !ok {
		return
	}

	postID, ok := h.postIDParam(c)
	if !ok {
		return
	}

	var viewerID *uuid.UUID
	if viewer := h.getUserFromRequest(c); viewer != nil {
		viewerID = &viewer.ID
	}

	decision, err := h.services.World.ViewPost(c.Request.Context(), worldID, viewerID, postID)
	if err != nil {
		status := http.StatusInternalServerError
		if err == service.ErrWorldNotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, dto.NewBasicResponse(false, err.Error()))
		return
	}

	c.JSON(http.StatusOK, decision)
}
