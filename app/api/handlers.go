package api

import (
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/avoronov/cal-comb/app/calendar"
	"github.com/avoronov/cal-comb/app/cfg"
	"github.com/avoronov/cal-comb/app/database"
	"github.com/avoronov/cal-comb/app/tasks"
)

func NewHandler(configCache *calendar.ConfigCache, eventCache *calendar.EventCache,
	calRepo database.CalendarRepository, eventRepo database.EventRepository,
	scheduler tasks.TaskSchedulerInterface, httpClient *http.Client,
	tokenizer *calendar.Tokenizer, parser *calendar.Parser,
	normalizer *calendar.Normalizer) *Handler {
	return &Handler{
		calRepo:     calRepo,
		eventRepo:   eventRepo,
		configCache: configCache,
		eventCache:  eventCache,
		scheduler:   scheduler,
		httpClient:  httpClient,
		tokenizer:   tokenizer,
		parser:      parser,
		normalizer:  normalizer,
		userAgent:   cfg.Get().UserAgent,
	}
}

// GetEvents serves the normalized event list for one calendar: the cached
// snapshot while it is fresh, the persisted copy otherwise.
func (h *Handler) GetEvents(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	config, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Calendar configuration not found", "calendar", name, "error", err)
		c.Status(http.StatusNotFound)
		return
	}

	events, cached := h.eventCache.Read(name)
	if !cached {
		events, err = h.eventRepo.GetEvents(name, config.Settings.MaxEvents)
		if err != nil {
			slog.Error("Database error", "operation", "get_events", "calendar", name, "error", err)
			c.Status(http.StatusInternalServerError)
			return
		}
	}

	c.Header("X-Calendar-Name", name)
	c.Header("X-Event-Count", strconv.Itoa(len(events)))
	c.Header("X-Events-Cached", strconv.FormatBool(cached))

	c.JSON(http.StatusOK, EventsResponse{
		Calendar: name,
		Cached:   cached,
		Total:    len(events),
		Events:   events,
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if calCount, err := h.calRepo.GetCalendarCount(); err == nil {
		health["calendars"] = calCount
	}

	health["loaded_configurations"] = h.configCache.GetConfigCount()
	health["cached_calendars"] = h.eventCache.Size()

	c.JSON(http.StatusOK, health)
}

// GetStats reports service-wide counters: configured and enabled
// calendars, cache occupancy, and per-calendar event breakdowns.
func (h *Handler) GetStats(c *gin.Context) {
	stats := map[string]interface{}{
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if calCount, err := h.calRepo.GetCalendarCount(); err == nil {
		stats["total_calendars"] = calCount
	}

	configs := h.configCache.GetConfigs()
	stats["loaded_configurations"] = len(configs)

	enabledCount := 0
	totalEvents := 0
	calendars := map[string]interface{}{}

	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		config := configs[name]
		if config.Settings.Enabled {
			enabledCount++
		}

		if total, cancelled, conference, err := h.eventRepo.GetEventStats(name); err == nil {
			totalEvents += total
			calendars[name] = map[string]interface{}{
				"total":      total,
				"cancelled":  cancelled,
				"conference": conference,
			}
		}
	}

	stats["enabled_configurations"] = enabledCount
	stats["cached_calendars"] = h.eventCache.Size()
	stats["total_events"] = totalEvents
	stats["calendars"] = calendars

	c.JSON(http.StatusOK, stats)
}

func (h *Handler) APIListCalendars(c *gin.Context) {
	configs := h.configCache.GetConfigs()

	// Map iteration order varies between calls; sort so the response is
	// stable.
	names := make([]string, 0, len(configs))
	for name := range configs {
		names = append(names, name)
	}
	sort.Strings(names)

	calendars := make([]map[string]interface{}, 0, len(configs))

	for _, name := range names {
		config := configs[name]
		info := map[string]interface{}{
			"name":             config.Name,
			"url":              config.URL,
			"label":            config.Label,
			"enabled":          config.Settings.Enabled,
			"max_events":       config.Settings.MaxEvents,
			"refresh_interval": (time.Duration(config.Settings.RefreshInterval) * time.Second).String(),
		}

		if cal, err := h.calRepo.GetCalendar(config.Name); err == nil && cal != nil {
			info["last_synced_at"] = cal.LastSyncedAt
			info["next_sync_at"] = cal.NextSyncAt
			info["updated_at"] = cal.UpdatedAt
		}

		if count, err := h.eventRepo.GetEventCount(config.Name); err == nil {
			info["event_count"] = count
		}

		calendars = append(calendars, info)
	}

	c.JSON(http.StatusOK, map[string]interface{}{
		"calendars": calendars,
		"total":     len(calendars),
	})
}

func (h *Handler) APIGetCalendarDetails(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing calendar name parameter"})
		return
	}

	config, err := h.configCache.GetConfig(name)
	if err != nil {
		slog.Error("Calendar configuration not found", "calendar", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Calendar configuration not found"})
		return
	}

	cal, err := h.calRepo.GetCalendar(name)
	if err != nil {
		slog.Error("Database error", "operation", "get_calendar", "calendar", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if cal == nil {
		slog.Error("Calendar not found in database", "calendar", name)
		c.JSON(http.StatusNotFound, gin.H{"error": "Calendar not found in database"})
		return
	}

	details := map[string]interface{}{
		"name":             name,
		"url":              config.URL,
		"label":            config.Label,
		"enabled":          config.Settings.Enabled,
		"max_events":       config.Settings.MaxEvents,
		"refresh_interval": (time.Duration(config.Settings.RefreshInterval) * time.Second).String(),
		"timeout":          (time.Duration(config.Settings.Timeout) * time.Second).String(),
	}

	details["database"] = map[string]interface{}{
		"last_synced_at": cal.LastSyncedAt,
		"next_sync_at":   cal.NextSyncAt,
		"created_at":     cal.CreatedAt,
		"updated_at":     cal.UpdatedAt,
	}

	if total, cancelled, conference, err := h.eventRepo.GetEventStats(name); err == nil {
		details["events"] = map[string]interface{}{
			"total":      total,
			"cancelled":  cancelled,
			"conference": conference,
		}
	}

	c.JSON(http.StatusOK, details)
}

// APISyncCalendar is the explicit "connect" entry point: it enqueues a
// full fetch-and-normalize pass for one calendar. Concurrent syncs run
// independently; the cache reflects whichever store lands last.
func (h *Handler) APISyncCalendar(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing calendar name parameter"})
		return
	}

	config, err := h.configCache.LoadConfig(name)
	if err != nil {
		slog.Error("Error reloading configuration", "calendar", name, "error", err)
		c.JSON(http.StatusNotFound, gin.H{"error": "Calendar configuration not found"})
		return
	}

	configTask := tasks.NewSyncCalendarConfigTask(name, config, h.calRepo)
	if err := h.scheduler.EnqueueTask(configTask); err != nil {
		slog.Error("Error enqueueing config sync task", "calendar", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue config sync task",
			"details": err.Error(),
		})
		return
	}

	syncTask := tasks.NewSyncCalendarTask(name, config, h.httpClient, h.tokenizer, h.parser, h.normalizer, h.eventCache, h.calRepo, h.eventRepo, h.userAgent)
	if err := h.scheduler.EnqueueTask(syncTask); err != nil {
		slog.Error("Error enqueueing sync task", "calendar", name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to enqueue sync task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Sync tasks enqueued successfully",
		"calendar": gin.H{
			"name":  name,
			"url":   config.URL,
			"label": config.Label,
		},
		"tasks": []gin.H{
			{
				"id":   configTask.ID,
				"type": configTask.Type,
			},
			{
				"id":   syncTask.ID,
				"type": syncTask.Type,
			},
		},
	})
}
