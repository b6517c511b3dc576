package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"residence/server/internal/filestore"
)

// Per-project endpoints kept for older admin builds. They edit the
// projects collection of the same content file as /api/data.

func (h *Handler) projectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, filestore.ErrProjectNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	case errors.Is(err, filestore.ErrNotObject):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}
	h.logger.WithError(err).Error("Project operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to access projects"})
}

func (h *Handler) GetProjects(c *gin.Context) {
	projects, err := h.content.Projects()
	if err != nil {
		h.projectError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) GetProject(c *gin.Context) {
	project, err := h.content.Project(c.Param("id"))
	if err != nil {
		h.projectError(c, err)
		return
	}
	c.Data(http.StatusOK, jsonContentType, project)
}

func (h *Handler) CreateProject(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	created, err := h.content.CreateProject(body)
	if err != nil {
		h.projectError(c, err)
		return
	}
	c.Data(http.StatusCreated, jsonContentType, created)
}

func (h *Handler) UpdateProject(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON"})
		return
	}

	updated, err := h.content.UpdateProject(c.Param("id"), body)
	if err != nil {
		h.projectError(c, err)
		return
	}
	c.Data(http.StatusOK, jsonContentType, updated)
}

func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.content.DeleteProject(c.Param("id")); err != nil {
		h.projectError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
