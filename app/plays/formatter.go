package plays

import (
	"cmp"
	"fmt"
	"log/slog"
	"strings"
)

const (
	linkDateFormat = "2 Jan 2006"
	linkSeparator  = "[c] • [/c]"
)

// Formatter renders matching plays as a forum-code block ready to paste into a post.
type Formatter struct{}

func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Run(entries []Entry, adjustments Adjustments) string {
	links := make([]string, 0, len(entries))
	for _, entry := range entries {
		date := cmp.Or(adjustments[entry.ID], entry.Date)
		links = append(links, fmt.Sprintf("[url=%s]%s[/url]", entry.Link, f.formatDate(date)))
	}

	count := len(links)
	noun := "plays"
	if count == 1 {
		noun = "play"
	}
	slog.Info(fmt.Sprintf("Found %d previous %s", count, noun), "count", count)

	var buf strings.Builder
	buf.WriteString("[heading][/heading]\n")
	buf.WriteString("[size=9]Previous plays of this game:[/size]\n")
	buf.WriteString("[size=8]")
	buf.WriteString(strings.Join(links, linkSeparator))
	buf.WriteString("[/size]")

	return buf.String()
}

func (f *Formatter) formatDate(value string) string {
	t, err := parseDate(value)
	if err != nil {
		slog.Warn("Using raw date in output", "date", value)
		return value
	}
	return t.Format(linkDateFormat)
}
