package calendar

import (
	"testing"
)

func TestParserParsesFullBlock(t *testing.T) {
	block := "UID:20240312-standup@corp.example.com\r\n" +
		"SUMMARY:Daily Standup\r\n" +
		"DESCRIPTION:Sync on sprint progress\r\n" +
		"DTSTART;TZID=Europe/Berlin:20240312T093000\r\n" +
		"DTEND;TZID=Europe/Berlin:20240312T100000\r\n" +
		"LOCATION:Room 4.01\r\n" +
		"ORGANIZER;CN=Jane Doe:MAILTO:jane@corp.example.com\r\n" +
		"ATTENDEE;ROLE=REQ-PARTICIPANT:mailto:bob@corp.example.com\r\n" +
		"ATTENDEE:mailto:eve@corp.example.com\r\n" +
		"ATTENDEE:mailto:bob@corp.example.com\r\n" +
		"STATUS:CONFIRMED\r\n"

	entry, reason := NewParser().ParseBlock(block)

	if entry == nil {
		t.Fatalf("Expected entry, got skip reason: %s", reason)
	}
	if entry.UID != "20240312-standup@corp.example.com" {
		t.Errorf("Unexpected UID: %q", entry.UID)
	}
	if entry.Summary != "Daily Standup" {
		t.Errorf("Unexpected summary: %q", entry.Summary)
	}
	if entry.Description != "Sync on sprint progress" {
		t.Errorf("Unexpected description: %q", entry.Description)
	}
	// Parameterized DTSTART still resolves to the start token, params dropped.
	if entry.StartToken != "20240312T093000" {
		t.Errorf("Unexpected start token: %q", entry.StartToken)
	}
	if entry.EndToken != "20240312T100000" {
		t.Errorf("Unexpected end token: %q", entry.EndToken)
	}
	if entry.Location != "Room 4.01" {
		t.Errorf("Unexpected location: %q", entry.Location)
	}
	if entry.Organizer != "jane@corp.example.com" {
		t.Errorf("Expected MAILTO prefix stripped, got: %q", entry.Organizer)
	}
	if entry.StatusToken != "CONFIRMED" {
		t.Errorf("Unexpected status token: %q", entry.StatusToken)
	}

	// Attendees keep insertion order and duplicates.
	want := []string{
		"mailto:bob@corp.example.com",
		"mailto:eve@corp.example.com",
		"mailto:bob@corp.example.com",
	}
	if len(entry.Attendees) != len(want) {
		t.Fatalf("Expected %d attendees, got %d", len(want), len(entry.Attendees))
	}
	for i, attendee := range want {
		if entry.Attendees[i] != attendee {
			t.Errorf("Attendee %d: expected %q, got %q", i, attendee, entry.Attendees[i])
		}
	}
}

func TestParserDropsBlockMissingRequiredProperty(t *testing.T) {
	blocks := []string{
		"UID:ok-1\nSUMMARY:Valid\nDTSTART:20240601T120000\n",
		"UID:broken-1\nDTSTART:20240601T130000\n", // no SUMMARY
		"SUMMARY:No identity\nDTSTART:20240601T140000\n", // no UID
		"UID:ok-2\nSUMMARY:Also valid\nDTSTART:20240602\n",
	}

	entries, skipped := NewParser().Run(blocks)

	if len(entries) != 2 {
		t.Fatalf("Expected 2 entries from 4 blocks, got %d", len(entries))
	}
	if len(skipped) != 2 {
		t.Fatalf("Expected 2 skip reasons, got %d", len(skipped))
	}
	if entries[0].UID != "ok-1" || entries[1].UID != "ok-2" {
		t.Errorf("Expected surviving entries in input order, got %q and %q", entries[0].UID, entries[1].UID)
	}
	if skipped[0].BlockIndex != 1 || skipped[0].Reason != "missing SUMMARY" {
		t.Errorf("Unexpected first skip: %+v", skipped[0])
	}
	if skipped[1].BlockIndex != 2 || skipped[1].Reason != "missing UID" {
		t.Errorf("Unexpected second skip: %+v", skipped[1])
	}
}

func TestParserValueKeepsLaterColons(t *testing.T) {
	block := "UID:colons-1\n" +
		"SUMMARY:Planning\n" +
		"DTSTART:20240601T120000\n" +
		"DESCRIPTION:Join here: https://example.com/room\n"

	entry, _ := NewParser().ParseBlock(block)

	if entry == nil {
		t.Fatal("Expected entry")
	}
	if entry.Description != "Join here: https://example.com/room" {
		t.Errorf("Expected value to keep colons after the first, got: %q", entry.Description)
	}
}

func TestParserIgnoresUnknownProperties(t *testing.T) {
	block := "UID:unknown-1\n" +
		"SUMMARY:Quarterly Review\n" +
		"DTSTART:20240601T120000\n" +
		"SEQUENCE:3\n" +
		"TRANSP:OPAQUE\n" +
		"X-CUSTOM-PROP;PARAM=1:whatever\n" +
		"not a property line\n"

	entry, reason := NewParser().ParseBlock(block)

	if entry == nil {
		t.Fatalf("Expected entry, got skip reason: %s", reason)
	}
	if entry.Summary != "Quarterly Review" {
		t.Errorf("Unexpected summary: %q", entry.Summary)
	}
}

func TestParserStripsMailSchemeCaseInsensitively(t *testing.T) {
	block := "UID:org-1\n" +
		"SUMMARY:1:1\n" +
		"DTSTART:20240601T120000\n" +
		"ORGANIZER:mailto:lead@corp.example.com\n"

	entry, _ := NewParser().ParseBlock(block)

	if entry == nil {
		t.Fatal("Expected entry")
	}
	if entry.Organizer != "lead@corp.example.com" {
		t.Errorf("Expected lowercase mailto prefix stripped, got: %q", entry.Organizer)
	}
}
