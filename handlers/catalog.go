package handlers

import (
	"net/http"

	catalogRepo "chairside/database/repository/catalog"
	"chairside/utils"

	"github.com/gin-gonic/gin"
)

// CatalogHandler serves the service catalogue.
type CatalogHandler struct {
	Repo catalogRepo.CatalogRepository
}

func NewCatalogHandler(repo catalogRepo.CatalogRepository) *CatalogHandler {
	return &CatalogHandler{Repo: repo}
}

// ListServices returns the full catalogue.
func (h *CatalogHandler) ListServices(c *gin.Context) {
	services, err := h.Repo.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list services", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

// GetService returns one catalogue entry.
func (h *CatalogHandler) GetService(c *gin.Context) {
	svc, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "service not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}
