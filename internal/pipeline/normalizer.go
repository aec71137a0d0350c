package pipeline

import (
	"strconv"
	"strings"
	"time"

	"chessetl/internal/models"
	"chessetl/internal/pgn"
	"chessetl/internal/providers"
)

// requiredFields is the only structural gate: a record missing any of
// these keys is rejected. Everything else defaults.
var requiredFields = []string{"white", "black", "end_time", "pgn"}

type Normalizer struct {
	logger providers.Logger
}

func NewNormalizer(logger providers.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize turns one raw record into a canonical row. The second
// return value is false when the record is rejected; rejection is
// absorbed here and never propagates as an error.
func (n *Normalizer) Normalize(raw models.RawGameRecord) (models.CanonicalGameRow, bool) {
	for _, field := range requiredFields {
		if !raw.Has(field) {
			n.logger.Warnf(providers.TypeProcess, "Dropping record missing %q (url=%s)",
				field, raw.String("url", ""))
			return models.CanonicalGameRow{}, false
		}
	}

	white := raw.Sub("white")
	black := raw.Sub("black")

	row := models.CanonicalGameRow{
		URL:           raw.String("url", ""),
		WhiteUsername: white.String("username", ""),
		BlackUsername: black.String("username", ""),
		WhiteRating:   white.Int("rating", 0),
		BlackRating:   black.Int("rating", 0),
		EndTime:       raw.Int64("end_time", 0),
		TimeControl:   raw.String("time_control", ""),
		PGN:           raw.String("pgn", ""),
	}

	if row.EndTime != 0 {
		setCalendarFields(&row)
	}

	row.RatingDiff = row.WhiteRating - row.BlackRating
	row.GameType = ClassifyTimeControl(row.TimeControl)

	if row.PGN != "" {
		info := pgn.Parse(row.PGN)
		row.MoveCount = info.MoveCount
		row.ECOCode = info.ECOCode
		row.OpeningName = info.OpeningName
		row.PGNResult = info.Result
	}

	resolveOutcome(outcomeInput{
		whiteToken: strings.ToLower(white.String("result", "")),
		blackToken: strings.ToLower(black.String("result", "")),
	}, &row)

	row.WhiteWin = row.Winner != "" && row.Winner == row.WhiteUsername
	row.BlackWin = row.Winner != "" && row.Winner == row.BlackUsername
	row.IsDraw = row.Winner == models.WinnerDraw

	return row, true
}

// setCalendarFields derives the four calendar fields from end_time.
// Timestamps outside the representable calendar range leave them at
// their defaults, same as a falsy timestamp.
func setCalendarFields(row *models.CanonicalGameRow) {
	t := time.Unix(row.EndTime, 0).UTC()
	if t.Year() < 1 || t.Year() > 9999 {
		return
	}
	row.EndDate = t.Format("2006-01-02")
	row.EndDatetime = t.Format("2006-01-02 15:04:05")
	row.Year = t.Year()
	row.Month = t.Format("2006-01")
}

// ClassifyTimeControl buckets a time-control descriptor. "<base>" or
// "<base>+<increment>" classifies by base seconds; a "/" marks
// days-per-move daily games.
func ClassifyTimeControl(tc string) string {
	base := tc
	if i := strings.IndexByte(tc, '+'); i >= 0 {
		base = tc[:i]
	}
	if seconds, err := strconv.Atoi(strings.TrimSpace(base)); err == nil {
		switch {
		case seconds <= 180:
			return models.GameTypeBullet
		case seconds <= 600:
			return models.GameTypeBlitz
		default:
			return models.GameTypeRapid
		}
	}
	if strings.Contains(tc, "/") {
		return models.GameTypeDaily
	}
	return models.GameTypeUnknown
}
