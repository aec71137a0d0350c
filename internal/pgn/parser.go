package pgn

import (
	"regexp"
	"strings"

	"github.com/notnil/chess"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"chessetl/internal/models"
)

var (
	tagRe   = regexp.MustCompile(`\[(\w+)\s+"([^"]*)"\]`)
	braceRe = regexp.MustCompile(`\{[^}]*\}`)

	titleCaser = cases.Title(language.Und)
)

// Parse extracts structured metadata from a PGN text block. Empty or
// unparseable input yields the zero value; a move list that fails
// mid-replay yields the count of plies applied before the failure.
func Parse(text string) models.NotationInfo {
	var info models.NotationInfo

	text = strings.TrimSpace(text)
	if text == "" {
		return info
	}

	tags := parseTags(text)
	info.ECOCode = tags["ECO"]
	info.OpeningName = tags["Opening"]
	info.Result = tags["Result"]

	if info.OpeningName == "" {
		info.OpeningName = openingFromURL(tags["ECOUrl"])
	}

	info.MoveCount = replayMoves(text)
	return info
}

func parseTags(text string) map[string]string {
	tags := make(map[string]string)
	for _, m := range tagRe.FindAllStringSubmatch(text, -1) {
		tags[m[1]] = m[2]
	}
	return tags
}

// openingFromURL derives an opening name from an ECOUrl header: the
// path segment after /openings/, hyphens replaced with spaces,
// ellipsis markers stripped, title-cased.
func openingFromURL(url string) string {
	if url == "" {
		return ""
	}
	parts := strings.SplitN(url, "/openings/", 2)
	if len(parts) < 2 {
		return ""
	}
	name := strings.ReplaceAll(parts[1], "-", " ")
	name = strings.ReplaceAll(name, "...", " ")
	name = strings.TrimSpace(name)
	if name == "" {
		return ""
	}
	return titleCaser.String(name)
}

// replayMoves applies the move list against a fresh starting position
// and counts successfully applied plies. Replay stops at the first
// token the engine rejects.
func replayMoves(text string) int {
	game := chess.NewGame()
	count := 0
	for _, tok := range moveTokens(text) {
		if err := game.MoveStr(tok); err != nil {
			break
		}
		count++
	}
	return count
}

func moveTokens(text string) []string {
	var movetext strings.Builder
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "[") {
			continue
		}
		movetext.WriteString(line)
		movetext.WriteByte(' ')
	}

	clean := braceRe.ReplaceAllString(movetext.String(), " ")

	var tokens []string
	for _, tok := range strings.Fields(clean) {
		tok = normalizeToken(tok)
		if tok == "" {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func normalizeToken(tok string) string {
	switch tok {
	case "1-0", "0-1", "1/2-1/2", "*":
		return ""
	}
	if strings.HasPrefix(tok, "$") {
		return ""
	}
	// Move numbers come either standalone ("12.", "12...") or glued to
	// the move ("12.Nf3").
	if i := strings.LastIndexByte(tok, '.'); i >= 0 && isDigits(tok[:strings.IndexByte(tok, '.')]) {
		tok = tok[i+1:]
	}
	tok = strings.TrimRight(tok, "!?")
	return tok
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}
