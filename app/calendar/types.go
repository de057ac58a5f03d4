package calendar

// Pipeline types

// ParsedEntry holds the typed properties extracted from one event block,
// before any date or conferencing normalization.
type ParsedEntry struct {
	UID         string
	Summary     string
	Description string
	StartToken  string
	EndToken    string
	Location    string
	Organizer   string
	Attendees   []string
	StatusToken string
}

// SkipReason records why a block was dropped instead of becoming a
// ParsedEntry. Callers can compare blocks-in against entries-out.
type SkipReason struct {
	BlockIndex int
	Reason     string
}

type MeetingType string

type EventStatus string

const (
	MeetingTypeVideoCall MeetingType = "video_call"
	MeetingTypeInPerson  MeetingType = "in_person"

	StatusScheduled EventStatus = "scheduled"
	StatusCancelled EventStatus = "cancelled"
)

// EventKind tags every normalized event as externally sourced so downstream
// consumers can tell feed events apart from locally created records.
const EventKind = "external_calendar"

// NormalizedEvent is the display-ready representation handed to consumers.
// Field names and omission rules are part of the contract: downstream
// styling and filtering logic keys off them.
type NormalizedEvent struct {
	ID                  string      `json:"id"`
	Title               string      `json:"title"`
	Date                string      `json:"date"`
	Time                string      `json:"time,omitempty"`
	Kind                string      `json:"kind"`
	DurationMinutes     int         `json:"durationMinutes,omitempty"`
	Location            string      `json:"location,omitempty"`
	Organizer           string      `json:"organizer,omitempty"`
	Attendees           []string    `json:"attendees,omitempty"`
	MeetingType         MeetingType `json:"meetingType"`
	Status              EventStatus `json:"status"`
	SourceLabel         string      `json:"sourceLabel"`
	JoinURL             string      `json:"joinUrl,omitempty"`
	IsConferenceMeeting bool        `json:"isConferenceMeeting"`
}

// ConferenceMetadata is the MeetingLinkExtractor result.
type ConferenceMetadata struct {
	JoinURL             string
	MeetingID           string
	ConferenceID        string
	IsConferenceMeeting bool
}

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Label    string         `yaml:"label"` // Source label prefixed to event IDs; defaults to Name
	Settings ConfigSettings `yaml:"settings"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	Timeout         int  `yaml:"timeout"`          // seconds
	MaxEvents       int  `yaml:"max_events"`
}
