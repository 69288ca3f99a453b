package api

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/John-Gell/cleaning-calculator/app/database"
	"github.com/John-Gell/cleaning-calculator/app/listing"
)

func NewHandler(configCache *listing.ConfigCache, listingRepo database.ListingRepository,
	reports ReportRunnerInterface) *Handler {
	return &Handler{
		configCache: configCache,
		listingRepo: listingRepo,
		reports:     reports,
	}
}

// CreateReport computes the cleaning report for one target month. Partial
// success is a 200: per-listing fetch failures travel in the report's errors
// field, not the HTTP status.
func (h *Handler) CreateReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.Year < 1000 || req.Year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a 4-digit number"})
		return
	}
	if req.Month < 1 || req.Month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be between 1 and 12"})
		return
	}

	configs, err := h.resolveListings(req.Listings)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(configs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no usable listings configured"})
		return
	}

	rep, err := h.reports.Run(c.Request.Context(), req.Year, req.Month, configs)
	if err != nil {
		slog.Error("Report computation failed", "year", req.Year, "month", req.Month, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Report computation failed"})
		return
	}

	c.JSON(http.StatusOK, rep)
}

// resolveListings maps requested names to configs, or all enabled listings
// in name order when no names were given. Name order keeps processing order
// deterministic, which the aggregator's tie-breaking depends on.
func (h *Handler) resolveListings(names []string) ([]*listing.Config, error) {
	if len(names) > 0 {
		configs := make([]*listing.Config, 0, len(names))
		for _, name := range names {
			config, err := h.configCache.GetConfig(name)
			if err != nil {
				return nil, err
			}
			configs = append(configs, config)
		}
		return configs, nil
	}

	enabled := h.configCache.GetEnabledConfigs()
	ordered := make([]string, 0, len(enabled))
	for name := range enabled {
		ordered = append(ordered, name)
	}
	sort.Strings(ordered)

	configs := make([]*listing.Config, 0, len(ordered))
	for _, name := range ordered {
		configs = append(configs, enabled[name])
	}
	return configs, nil
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if listingCount, err := h.listingRepo.GetListingCount(); err == nil {
		health["listings"] = listingCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListListings(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	listings := make([]map[string]interface{}, 0, len(configs))

	for _, config := range configs {
		listingInfo := map[string]interface{}{
			"name":         config.Name,
			"display_name": config.DisplayName,
			"url":          config.URL,
			"rate":         config.RateAmount,
			"enabled":      config.Enabled,
		}

		if l, err := h.listingRepo.GetListing(config.Name); err == nil && l != nil {
			listingInfo["last_fetched_at"] = l.LastFetchedAt
			listingInfo["last_fetch_error"] = l.LastFetchError
			listingInfo["updated_at"] = l.UpdatedAt
		}

		listings = append(listings, listingInfo)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"listings": listings,
		"total":    len(listings),
	})
}

func (h *Handler) APIGetListingDetails(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing listing name parameter"})
		return
	}

	config, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Listing configuration not found", "listing", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Listing configuration not found"})
		return
	}

	details := map[string]interface{}{
		"name":         config.Name,
		"display_name": config.DisplayName,
		"url":          config.URL,
		"rate":         config.RateAmount,
		"enabled":      config.Enabled,
	}

	l, err := h.listingRepo.GetListing(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_listing", "listing", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	if l != nil {
		details["registry"] = map[string]interface{}{
			"id":               l.ID,
			"last_fetched_at":  l.LastFetchedAt,
			"last_fetch_error": l.LastFetchError,
			"created_at":       l.CreatedAt,
			"updated_at":       l.UpdatedAt,
		}
	}

	c.JSON(http.StatusOK, details)
}
