// Package calendar parses iCalendar (.ics) files into flat event entries for
// the import pipeline. Only the fields the portal needs are read; everything
// else in the file is ignored.
package calendar

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Entry is one parsed VEVENT.
type Entry struct {
	Title       string
	Start       time.Time
	End         time.Time
	Description string
}

var dateLayouts = []string{
	"20060102T150405Z",
	"20060102T150405",
	"20060102",
}

// Parse reads an iCalendar stream and returns its VEVENTs. Events without a
// summary or a parsable start date are skipped so one broken entry cannot
// sink a whole import.
func Parse(r io.Reader) ([]Entry, error) {
	lines, err := unfold(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	var current *Entry
	for _, line := range lines {
		switch {
		case line == "BEGIN:VEVENT":
			current = &Entry{}
		case line == "END:VEVENT":
			if current == nil {
				continue
			}
			if current.Title == "" || current.Start.IsZero() {
				log.Warn().Str("summary", current.Title).Msg("skipping unparsable VEVENT")
			} else {
				entries = append(entries, *current)
			}
			current = nil
		case current != nil:
			name, value, ok := splitProperty(line)
			if !ok {
				continue
			}
			switch name {
			case "SUMMARY":
				current.Title = unescape(value)
			case "DESCRIPTION":
				current.Description = unescape(value)
			case "DTSTART":
				current.Start = parseDate(value)
			case "DTEND":
				current.End = parseDate(value)
			}
		}
	}
	return entries, nil
}

// unfold joins folded lines: a line starting with a space or tab continues
// the previous one (RFC 5545 §3.1).
func unfold(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]
			continue
		}
		lines = append(lines, line)
	}
	return lines, scanner.Err()
}

// splitProperty separates "NAME;PARAM=X:VALUE" into name and value, dropping
// any parameters.
func splitProperty(line string) (string, string, bool) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return "", "", false
	}
	name := line[:colon]
	if semi := strings.Index(name, ";"); semi >= 0 {
		name = name[:semi]
	}
	return strings.ToUpper(name), line[colon+1:], true
}

func parseDate(value string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}

func unescape(value string) string {
	replacer := strings.NewReplacer(`\n`, "\n", `\N`, "\n", `\,`, ",", `\;`, ";", `\\`, `\`)
	return replacer.Replace(value)
}
