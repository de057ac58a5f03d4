package api

import (
	"net/http"

	"github.com/avoronov/cal-comb/app/calendar"
	"github.com/avoronov/cal-comb/app/database"
	"github.com/avoronov/cal-comb/app/tasks"
)

type Handler struct {
	calRepo     database.CalendarRepository
	eventRepo   database.EventRepository
	configCache *calendar.ConfigCache
	eventCache  *calendar.EventCache
	scheduler   tasks.TaskSchedulerInterface
	httpClient  *http.Client
	tokenizer   *calendar.Tokenizer
	parser      *calendar.Parser
	normalizer  *calendar.Normalizer
	userAgent   string
}

// EventsResponse is the payload served to display consumers. Events keep
// pipeline order; Cached reports whether the list came from the TTL cache
// or from storage.
type EventsResponse struct {
	Calendar string                     `json:"calendar"`
	Cached   bool                       `json:"cached"`
	Total    int                        `json:"total"`
	Events   []calendar.NormalizedEvent `json:"events"`
}
