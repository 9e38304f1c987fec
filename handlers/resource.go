package handlers

import (
	"net/http"
	"time"

	resourceRepo "chairside/database/repository/resource"
	"chairside/services/scheduling"
	"chairside/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// ResourceHandler serves resource records and ad-hoc holds.
type ResourceHandler struct {
	Repo   resourceRepo.ResourceRepository
	Engine scheduling.SchedulingEngine
	Cache  *redis.Client
}

func NewResourceHandler(repo resourceRepo.ResourceRepository, engine scheduling.SchedulingEngine, cache *redis.Client) *ResourceHandler {
	return &ResourceHandler{Repo: repo, Engine: engine, Cache: cache}
}

// ListResources returns every bookable resource.
func (h *ResourceHandler) ListResources(c *gin.Context) {
	resources, err := h.Repo.List(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list resources", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"resources": resources})
}

// GetResource returns a single resource with its weekly opening hours.
func (h *ResourceHandler) GetResource(c *gin.Context) {
	res, err := h.Repo.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "resource not found", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"resource": res})
}

type holdInput struct {
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Title    string    `json:"title"`
	ActorRef string    `json:"actor_ref"`
}

// CreateHold blocks out a span in a resource's diary (lunch, training,
// walk-in) without a client booking.
func (h *ResourceHandler) CreateHold(c *gin.Context) {
	var input holdInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	hold, err := h.Engine.CreateHold(c.Request.Context(), c.Param("id"), input.Start, input.End, input.Title, input.ActorRef)
	if err != nil {
		switch {
		case scheduling.IsValidation(err):
			utils.JSONError(c, http.StatusBadRequest, "invalid hold", err.Error())
		case scheduling.IsConflict(err):
			utils.JSONError(c, http.StatusConflict, "hold conflicts with existing bookings", err.Error())
		default:
			utils.JSONError(c, http.StatusInternalServerError, "failed to create hold", err.Error())
		}
		return
	}
	invalidateSlotCache(h.Cache, hold.ResourceID)
	c.JSON(http.StatusCreated, gin.H{"hold": hold})
}
