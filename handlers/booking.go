package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"chairside/models"
	"chairside/services/scheduling"
	"chairside/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// slotCacheTTL keeps cached availability short-lived: any committed booking
// makes the cached list stale, so the list is only a read amplifier.
const slotCacheTTL = 60 * time.Second

// BookingHandler exposes the scheduling engine over HTTP.
type BookingHandler struct {
	Engine scheduling.SchedulingEngine
	Cache  *redis.Client
	Logger *zap.Logger
}

// NewBookingHandler constructs a BookingHandler. cache may be nil to disable
// availability caching.
func NewBookingHandler(engine scheduling.SchedulingEngine, cache *redis.Client, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{Engine: engine, Cache: cache, Logger: logger}
}

type availabilityResponse struct {
	Timeline models.Timeline `json:"timeline"`
	Slots    []time.Time     `json:"slots"`
}

// GetAvailability computes bookable start times for a basket of services on
// one day. Query params: resource, date (YYYY-MM-DD), services (comma-sep ids).
func (h *BookingHandler) GetAvailability(c *gin.Context) {
	resourceID := c.Query("resource")
	dateStr := c.Query("date")
	serviceIDs := splitIDs(c.Query("services"))

	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid date", "expected YYYY-MM-DD")
		return
	}

	cacheKey := fmt.Sprintf("slots:%s:%s:%s", resourceID, dateStr, strings.Join(serviceIDs, ","))
	if h.Cache != nil {
		if cached, err := h.Cache.Get(c.Request.Context(), cacheKey).Result(); err == nil {
			var resp availabilityResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				c.JSON(http.StatusOK, resp)
				return
			}
		}
	}

	tl, slots, err := h.Engine.AvailableSlots(c.Request.Context(), resourceID, day, serviceIDs)
	if err != nil {
		h.respondError(c, err, "failed to compute availability")
		return
	}

	resp := availabilityResponse{Timeline: tl, Slots: slots}
	if h.Cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			// Best effort; a cache miss next time is fine.
			h.Cache.Set(context.Background(), cacheKey, data, slotCacheTTL)
		}
	}
	c.JSON(http.StatusOK, resp)
}

type commitInput struct {
	ResourceID string           `json:"resource_id"`
	ServiceIDs []string         `json:"service_ids"`
	Client     models.ClientRef `json:"client"`
	Start      time.Time        `json:"start"`
	ActorRef   string           `json:"actor_ref"`
}

// CommitBooking books a basket of services at a confirmed start time.
func (h *BookingHandler) CommitBooking(c *gin.Context) {
	var input commitInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	group, err := h.Engine.CommitBasket(c.Request.Context(), input.ResourceID, input.ServiceIDs, input.Client, input.Start, input.ActorRef)
	if err != nil {
		h.respondError(c, err, "booking failed")
		return
	}

	invalidateSlotCache(h.Cache, input.ResourceID)
	c.JSON(http.StatusCreated, gin.H{"booking": group})
}

type seriesInput struct {
	Pattern     string `json:"pattern"`
	Occurrences int    `json:"occurrences"`
	DayOfMonth  int    `json:"day_of_month,omitempty"`
	ActorRef    string `json:"actor_ref"`
}

// GenerateSeries projects an existing booking group into a recurring series.
func (h *BookingHandler) GenerateSeries(c *gin.Context) {
	groupID := c.Param("groupID")
	var input seriesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	result, err := h.Engine.GenerateSeries(c.Request.Context(), groupID, input.Pattern, input.Occurrences, input.DayOfMonth, input.ActorRef)
	if err != nil {
		h.respondError(c, err, "failed to generate series")
		return
	}

	if len(result.Created) > 0 {
		invalidateSlotCache(h.Cache, result.Created[0].Segments[0].ResourceID)
	}
	c.JSON(http.StatusOK, gin.H{
		"created": result.Created,
		"skipped": result.Skipped,
	})
}

// CancelBooking deletes a booking group.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	groupID := c.Param("groupID")
	actorRef := c.Query("actor")
	reason := c.Query("reason")

	removed, err := h.Engine.CancelGroup(c.Request.Context(), groupID, actorRef, reason)
	if err != nil {
		h.respondError(c, err, "failed to cancel booking")
		return
	}
	invalidateSlotCache(h.Cache, removed.Segments[0].ResourceID)
	c.JSON(http.StatusOK, gin.H{"status": "cancelled", "group_id": groupID})
}

type rescheduleInput struct {
	NewStart time.Time `json:"new_start"`
	ActorRef string    `json:"actor_ref"`
}

// RescheduleBooking moves a whole booking group to a new start time.
func (h *BookingHandler) RescheduleBooking(c *gin.Context) {
	groupID := c.Param("groupID")
	var input rescheduleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	group, err := h.Engine.RescheduleGroup(c.Request.Context(), groupID, input.NewStart, input.ActorRef)
	if err != nil {
		h.respondError(c, err, "failed to reschedule booking")
		return
	}
	invalidateSlotCache(h.Cache, group.Segments[0].ResourceID)
	c.JSON(http.StatusOK, gin.H{"booking": group})
}

type lockInput struct {
	Locked   bool   `json:"locked"`
	ActorRef string `json:"actor_ref"`
}

// LockBooking flips the lock flag on a booking group.
func (h *BookingHandler) LockBooking(c *gin.Context) {
	groupID := c.Param("groupID")
	var input lockInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if err := h.Engine.SetGroupLocked(c.Request.Context(), groupID, input.Locked, input.ActorRef); err != nil {
		h.respondError(c, err, "failed to update lock")
		return
	}
	c.JSON(http.StatusOK, gin.H{"group_id": groupID, "locked": input.Locked})
}

// invalidateSlotCache drops every cached slot list for a resource. Called on
// any write that changes busy spans (commit, cancel, reschedule, series,
// holds); the short TTL only bounds staleness for writes that bypass the API.
func invalidateSlotCache(cache *redis.Client, resourceID string) {
	if cache == nil || resourceID == "" {
		return
	}
	ctx := context.Background()
	keys, err := cache.Keys(ctx, fmt.Sprintf("slots:%s:*", resourceID)).Result()
	if err != nil {
		return
	}
	if len(keys) > 0 {
		cache.Del(ctx, keys...)
	}
}

// respondError maps engine error types onto HTTP statuses.
func (h *BookingHandler) respondError(c *gin.Context, err error, message string) {
	switch {
	case scheduling.IsValidation(err):
		utils.JSONError(c, http.StatusBadRequest, message, err.Error())
	case scheduling.IsClientAmbiguity(err):
		utils.JSONError(c, http.StatusUnprocessableEntity, message, err.Error())
	case scheduling.IsConflict(err):
		utils.JSONError(c, http.StatusConflict, message, err.Error())
	case scheduling.IsPartialPersistence(err):
		h.Logger.Error("inconsistent booking state", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "booking left in an inconsistent state", err.Error())
	default:
		utils.JSONError(c, http.StatusInternalServerError, message, err.Error())
	}
}

func splitIDs(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
