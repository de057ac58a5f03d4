package calendar

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// contentLine is one feed line split into its parts. Params are captured
// but never consulted by the dispatch table: a parameterized DTSTART line
// still resolves to the DTSTART property, and ignoring parameters is an
// explicit decision rather than a side effect of prefix matching.
type contentLine struct {
	Name   string
	Params string
	Value  string
}

type Parser struct {
	properties map[string]func(*ParsedEntry, string)
}

func NewParser() *Parser {
	return &Parser{
		properties: map[string]func(*ParsedEntry, string){
			"UID":         func(e *ParsedEntry, v string) { e.UID = v },
			"SUMMARY":     func(e *ParsedEntry, v string) { e.Summary = v },
			"DESCRIPTION": func(e *ParsedEntry, v string) { e.Description = v },
			"DTSTART":     func(e *ParsedEntry, v string) { e.StartToken = v },
			"DTEND":       func(e *ParsedEntry, v string) { e.EndToken = v },
			"LOCATION":    func(e *ParsedEntry, v string) { e.Location = v },
			"ORGANIZER":   func(e *ParsedEntry, v string) { e.Organizer = stripMailScheme(v) },
			"ATTENDEE":    func(e *ParsedEntry, v string) { e.Attendees = append(e.Attendees, v) },
			"STATUS":      func(e *ParsedEntry, v string) { e.StatusToken = v },
		},
	}
}

// Run parses every block and returns the entries that survived plus a skip
// reason per dropped block, so callers can account blocks-in against
// entries-out.
func (p *Parser) Run(blocks []string) ([]ParsedEntry, []SkipReason) {
	entries := make([]ParsedEntry, 0, len(blocks))
	var skipped []SkipReason

	for i, block := range blocks {
		entry, reason := p.ParseBlock(block)
		if entry == nil {
			skipped = append(skipped, SkipReason{BlockIndex: i, Reason: reason})
			continue
		}
		entries = append(entries, *entry)
	}

	return entries, skipped
}

// ParseBlock extracts typed properties from one block body. A block
// missing UID, SUMMARY, or DTSTART yields nil plus the reason; failures
// are represented as absence, never raised as errors.
func (p *Parser) ParseBlock(block string) (*ParsedEntry, string) {
	entry := &ParsedEntry{}

	for _, raw := range splitLines(block) {
		line, ok := parseContentLine(raw)
		if !ok {
			continue
		}
		if setter, ok := p.properties[line.Name]; ok {
			setter(entry, line.Value)
		}
	}

	switch {
	case entry.UID == "":
		return nil, "missing UID"
	case entry.Summary == "":
		return nil, "missing SUMMARY"
	case entry.StartToken == "":
		return nil, "missing DTSTART"
	}

	return entry, ""
}

func splitLines(block string) []string {
	return strings.Split(strings.ReplaceAll(block, "\r\n", "\n"), "\n")
}

// parseContentLine splits a property line at its first colon. The name and
// any embedded parameters sit before the colon; the value is everything
// after it, later colons included. A parameter value carrying a quoted
// colon is mis-split here, a known limitation of this extraction. Values
// are NFC-normalized so canonically equal feeds parse identically.
func parseContentLine(raw string) (contentLine, bool) {
	raw = strings.TrimSpace(raw)

	colon := strings.Index(raw, ":")
	if colon == -1 {
		return contentLine{}, false
	}

	head := raw[:colon]
	value := norm.NFC.String(raw[colon+1:])

	name := head
	params := ""
	if semi := strings.Index(head, ";"); semi != -1 {
		name = head[:semi]
		params = head[semi+1:]
	}

	return contentLine{
		Name:   strings.ToUpper(strings.TrimSpace(name)),
		Params: params,
		Value:  value,
	}, true
}

func stripMailScheme(v string) string {
	if len(v) >= 7 && strings.EqualFold(v[:7], "MAILTO:") {
		return v[7:]
	}
	return v
}
