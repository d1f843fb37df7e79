package plays

import (
	"regexp"
	"strings"
)

var gameURLPattern = regexp.MustCompile(`boardgamegeek\.com/boardgame(expansion)?/(\d+)`)

// ParseGameID accepts either a bare game id or a game page URL.
func ParseGameID(arg string) string {
	if match := gameURLPattern.FindStringSubmatch(arg); match != nil {
		return match[2]
	}
	return strings.TrimSpace(arg)
}
