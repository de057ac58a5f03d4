package calendar

import "strings"

const (
	eventBeginMarker = "BEGIN:VEVENT"
	eventEndMarker   = "END:VEVENT"
)

type Tokenizer struct{}

func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Run splits raw feed text into per-event block bodies. The text is split
// on the begin marker; for each segment after the first, everything before
// the first end marker is one block. A segment with no end marker is
// dropped silently, so the result may hold fewer blocks than begin markers
// seen. Nested sub-components are not tracked; their lines simply ride
// along inside the block and are ignored by property matching later.
func (t *Tokenizer) Run(data []byte) []string {
	segments := strings.Split(string(data), eventBeginMarker)
	if len(segments) < 2 {
		return nil
	}

	blocks := make([]string, 0, len(segments)-1)
	for _, segment := range segments[1:] {
		end := strings.Index(segment, eventEndMarker)
		if end == -1 {
			continue
		}
		blocks = append(blocks, segment[:end])
	}

	return blocks
}
