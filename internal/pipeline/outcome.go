package pipeline

import (
	"strings"

	"chessetl/internal/models"
)

// drawTokens are the per-player outcome tokens that mark a game drawn
// by rule, as the archive API reports them.
var drawTokens = map[string]struct{}{
	"agreed":             {},
	"repetition":         {},
	"stalemate":          {},
	"insufficient":       {},
	"50move":             {},
	"timevsinsufficient": {},
}

type outcomeInput struct {
	whiteToken string
	blackToken string
}

// outcomeRule is one guarded step of the resolution ladder.
type outcomeRule struct {
	name    string
	applies func(in outcomeInput) bool
	resolve func(in outcomeInput, row *models.CanonicalGameRow)
}

// outcomeLadder resolves winner, result and result_category. Order is
// the contract: white's win token is checked before black's, so a
// malformed record with both sides marked "win" credits white.
var outcomeLadder = []outcomeRule{
	{
		name: "white-win",
		applies: func(in outcomeInput) bool {
			return in.whiteToken == "win"
		},
		resolve: func(in outcomeInput, row *models.CanonicalGameRow) {
			row.Winner = row.WhiteUsername
			row.Result = "1-0"
			row.ResultCategory = in.blackToken
		},
	},
	{
		name: "black-win",
		applies: func(in outcomeInput) bool {
			return in.blackToken == "win"
		},
		resolve: func(in outcomeInput, row *models.CanonicalGameRow) {
			row.Winner = row.BlackUsername
			row.Result = "0-1"
			row.ResultCategory = in.whiteToken
		},
	},
	{
		name: "draw-by-rule",
		applies: func(in outcomeInput) bool {
			_, white := drawTokens[in.whiteToken]
			_, black := drawTokens[in.blackToken]
			return white || black
		},
		resolve: func(in outcomeInput, row *models.CanonicalGameRow) {
			row.Winner = models.WinnerDraw
			row.Result = "1/2-1/2"
			row.ResultCategory = in.whiteToken
		},
	},
	{
		name: "fallback",
		applies: func(outcomeInput) bool {
			return true
		},
		resolve: func(in outcomeInput, row *models.CanonicalGameRow) {
			row.Result = row.PGNResult
			if row.Result == "" {
				row.Result = "1/2-1/2"
			}
			if strings.Contains(row.Result, "1/2-1/2") {
				row.Winner = models.WinnerDraw
			} else {
				row.Winner = ""
			}
			row.ResultCategory = in.whiteToken + "/" + in.blackToken
		},
	},
}

// resolveOutcome walks the ladder and applies the first matching rule.
// It returns the applied rule's name so the tie-break order stays
// testable in isolation.
func resolveOutcome(in outcomeInput, row *models.CanonicalGameRow) string {
	for _, rule := range outcomeLadder {
		if rule.applies(in) {
			rule.resolve(in, row)
			return rule.name
		}
	}
	return ""
}
