package calendar

import (
	"regexp"
	"strings"
)

// joinURLPatterns is evaluated in priority order; the first pattern that
// matches wins and later entries are not tried.
var joinURLPatterns = []struct {
	Provider string
	Pattern  *regexp.Regexp
}{
	{"zoom", regexp.MustCompile(`https://[a-zA-Z0-9.]*zoom\.us/j/[0-9]+(?:\?pwd=[A-Za-z0-9._\-]+)?`)},
	{"google_meet", regexp.MustCompile(`https://meet\.google\.com/[a-z]{3}-[a-z]{4}-[a-z]{3}`)},
	{"teams", regexp.MustCompile(`https://teams\.microsoft\.com/l/meetup-join/[^\s<>"']+`)},
	{"webex", regexp.MustCompile(`https://[a-zA-Z0-9.\-]*webex\.com/(?:meet|join)/[^\s<>"']+`)},
}

var (
	meetingIDPattern    = regexp.MustCompile(`(?i)meeting\s+id:\s*([0-9][0-9 ]*)`)
	conferenceIDPattern = regexp.MustCompile(`(?i)conference\s+id:\s*([0-9][0-9 ]*)`)
)

// conferenceIndicators backs the textual fallback when no join URL is
// present: naming the product or its web domain is enough to flag the
// event as a conference meeting.
var conferenceIndicators = []string{
	"zoom meeting",
	"zoom.us",
	"google meet",
	"meet.google.com",
	"microsoft teams",
	"teams.microsoft.com",
	"webex meeting",
	"webex.com",
}

type MeetingLinkExtractor struct{}

func NewMeetingLinkExtractor() *MeetingLinkExtractor {
	return &MeetingLinkExtractor{}
}

// Run scans the location and description text for conferencing hints. It
// is a pure function: no match means a zero-valued result, never an error.
func (m *MeetingLinkExtractor) Run(location, description string) ConferenceMetadata {
	var meta ConferenceMetadata
	text := location + "\n" + description

	for _, p := range joinURLPatterns {
		if match := p.Pattern.FindString(text); match != "" {
			meta.JoinURL = match
			meta.IsConferenceMeeting = true
			break
		}
	}

	if groups := meetingIDPattern.FindStringSubmatch(text); groups != nil {
		meta.MeetingID = strings.ReplaceAll(strings.TrimSpace(groups[1]), " ", "")
	}
	if groups := conferenceIDPattern.FindStringSubmatch(text); groups != nil {
		meta.ConferenceID = strings.ReplaceAll(strings.TrimSpace(groups[1]), " ", "")
	}

	if meta.JoinURL == "" {
		lowered := strings.ToLower(text)
		for _, indicator := range conferenceIndicators {
			if strings.Contains(lowered, indicator) {
				meta.IsConferenceMeeting = true
				break
			}
		}
	}

	return meta
}
