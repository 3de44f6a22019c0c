package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"tasktracker/internal/adapter/http/dto"
	"tasktracker/internal/adapter/http/mapper"
	"tasktracker/internal/adapter/http/middleware"
	"tasktracker/internal/adapter/http/validation"
	"tasktracker/internal/core/ports"
	"tasktracker/pkg/apierrors"
)

type WorkspaceHandler struct {
	workspaceService ports.WorkspaceService
}

func NewWorkspaceHandler(workspaceService ports.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService}
}

func (h *WorkspaceHandler) ListWorkspaces(c *gin.Context) {
	userID := middleware.UserID(c)

	workspaces, err := h.workspaceService.ListWorkspaces(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list workspaces", zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToWorkspaceItems(workspaces))
}

func (h *WorkspaceHandler) CreateWorkspace(c *gin.Context) {
	userID := middleware.UserID(c)

	name, ok := bindWorkspaceName(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.CreateWorkspace(c.Request.Context(), userID, name)
	if err != nil {
		respondError(c, err, "failed to create workspace", zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToWorkspaceItem(workspace))
}

// CreateDemoWorkspace seeds a fresh onboarding board for the caller.
func (h *WorkspaceHandler) CreateDemoWorkspace(c *gin.Context) {
	userID := middleware.UserID(c)

	workspace, err := h.workspaceService.CreateDemoWorkspace(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to create demo workspace", zap.String("user_id", userID))
		return
	}

	c.JSON(http.StatusCreated, mapper.ToWorkspaceItem(workspace))
}

func (h *WorkspaceHandler) GetWorkspace(c *gin.Context) {
	userID := middleware.UserID(c)
	workspaceID, ok := workspaceIDParam(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.GetWorkspace(c.Request.Context(), workspaceID, userID)
	if err != nil {
		respondError(c, err, "failed to get workspace", zap.String("workspace_id", workspaceID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToWorkspaceItem(workspace))
}

func (h *WorkspaceHandler) RenameWorkspace(c *gin.Context) {
	userID := middleware.UserID(c)
	workspaceID, ok := workspaceIDParam(c)
	if !ok {
		return
	}

	name, ok := bindWorkspaceName(c)
	if !ok {
		return
	}

	workspace, err := h.workspaceService.RenameWorkspace(c.Request.Context(), workspaceID, userID, name)
	if err != nil {
		respondError(c, err, "failed to rename workspace", zap.String("workspace_id", workspaceID))
		return
	}

	c.JSON(http.StatusOK, mapper.ToWorkspaceItem(workspace))
}

func (h *WorkspaceHandler) DeleteWorkspace(c *gin.Context) {
	userID := middleware.UserID(c)
	workspaceID, ok := workspaceIDParam(c)
	if !ok {
		return
	}

	if err := h.workspaceService.DeleteWorkspace(c.Request.Context(), workspaceID, userID); err != nil {
		respondError(c, err, "failed to delete workspace", zap.String("workspace_id", workspaceID))
		return
	}

	respondMessage(c, http.StatusOK, apierrors.MsgWorkspaceDeleted)
}

func bindWorkspaceName(c *gin.Context) (string, bool) {
	var req dto.WorkspaceRequest
	if _, ok := bindJSON(c, &req, apierrors.MsgValidationError); !ok {
		return "", false
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(c, validation.Errors{{Field: "name", Key: validation.KeyRequired}}, "")
		return "", false
	}
	return name, true
}

// workspaceIDParam answers 404 for malformed ids, like any workspace the
// caller cannot see.
func workspaceIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if uuid.Validate(id) != nil {
		c.JSON(
			http.StatusNotFound,
			apierrors.CreateError(http.StatusNotFound, apierrors.MsgWorkspaceNotFound, middleware.GetLang(c)),
		)
		return "", false
	}
	return id, true
}
