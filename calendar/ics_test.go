package calendar

import (
	"strings"
	"testing"
	"time"
)

const sampleICS = "BEGIN:VCALENDAR\r\n" +
	"VERSION:2.0\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Team barbecue\\, bring food\r\n" +
	"DTSTART:20250612T170000Z\r\n" +
	"DTEND:20250612T210000Z\r\n" +
	"DESCRIPTION:At the lake\\nSecond line\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:All-day festival\r\n" +
	"DTSTART;VALUE=DATE:20250701\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"SUMMARY:Broken entry\r\n" +
	"DTSTART:not-a-date\r\n" +
	"END:VEVENT\r\n" +
	"BEGIN:VEVENT\r\n" +
	"DTSTART:20250801T100000Z\r\n" +
	"END:VEVENT\r\n" +
	"END:VCALENDAR\r\n"

func TestParse(t *testing.T) {
	entries, err := Parse(strings.NewReader(sampleICS))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries (malformed ones skipped), got %d", len(entries))
	}

	first := entries[0]
	if first.Title != "Team barbecue, bring food" {
		t.Fatalf("escaped comma not handled: %q", first.Title)
	}
	want := time.Date(2025, time.June, 12, 17, 0, 0, 0, time.UTC)
	if !first.Start.Equal(want) {
		t.Fatalf("expected start %v, got %v", want, first.Start)
	}
	if !strings.Contains(first.Description, "\n") {
		t.Fatalf("escaped newline not handled: %q", first.Description)
	}

	second := entries[1]
	if second.Title != "All-day festival" {
		t.Fatalf("unexpected title: %q", second.Title)
	}
	if second.Start.Year() != 2025 || second.Start.Month() != time.July {
		t.Fatalf("date-only DTSTART not parsed: %v", second.Start)
	}
}

func TestParseFoldedLines(t *testing.T) {
	ics := "BEGIN:VEVENT\r\n" +
		"SUMMARY:A very long\r\n" +
		" summary that was folded\r\n" +
		"DTSTART:20250612T170000Z\r\n" +
		"END:VEVENT\r\n"
	entries, err := Parse(strings.NewReader(ics))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(entries) != 1 || entries[0].Title != "A very longsummary that was folded" {
		t.Fatalf("folded line not joined: %+v", entries)
	}
}
