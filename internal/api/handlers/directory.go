package handlers

import (
	"net/http"

	"makeitall-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// DirectoryHandler handles employee directory search requests
type DirectoryHandler struct {
	directoryService *service.DirectoryService
}

// NewDirectoryHandler creates a new directory handler
func NewDirectoryHandler(directoryService *service.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// Search handles GET /directory/search
// @Summary Search the employee directory
// @Description Looks up assignment candidates by name or email prefix
// @Tags directory
// @Produce json
// @Param q query string true "Name or email prefix"
// @Success 200 {array} service.DirectoryEntry "Matching employees"
// @Failure 400 {object} map[string]interface{} "Missing query"
// @Failure 502 {object} map[string]interface{} "Directory unavailable"
// @Security BearerAuth
// @Router /directory/search [get]
func (h *DirectoryHandler) Search(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "q parameter is required"})
		return
	}

	entries, err := h.directoryService.SearchEmployees(query)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}
