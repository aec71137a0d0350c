package dataset

import (
	"strconv"
	"strings"

	"chessetl/internal/models"
)

// CanonicalColumns is the persisted column order of the canonical
// dataset. The pgn column is never part of it; unrecognized columns in
// an input file are tolerated on read and ignored.
var CanonicalColumns = []string{
	"end_date", "white_username", "black_username",
	"white_rating", "black_rating", "result", "winner", "result_category",
	"game_type", "opening_name", "eco_code", "move_count",
	"white_win", "black_win", "is_draw", "rating_diff",
	"year", "month", "time_control",
	"end_datetime", "end_time", "url",
}

// PerspectiveColumns is the persisted column order of the
// subject-perspective dataset.
var PerspectiveColumns = []string{
	"game_date", "game_time", "end_datetime",
	"player_name", "opponent_name", "player_rating", "opponent_rating",
	"rating_diff", "difficulty_category", "result_status",
	"game_type", "opening_name", "move_count", "player_color", "game_url",
	"is_win", "is_loss", "is_draw",
}

func canonicalRecord(row models.CanonicalGameRow) []string {
	return []string{
		row.EndDate, row.WhiteUsername, row.BlackUsername,
		strconv.Itoa(row.WhiteRating), strconv.Itoa(row.BlackRating),
		row.Result, row.Winner, row.ResultCategory,
		row.GameType, row.OpeningName, row.ECOCode, strconv.Itoa(row.MoveCount),
		strconv.FormatBool(row.WhiteWin), strconv.FormatBool(row.BlackWin),
		strconv.FormatBool(row.IsDraw), strconv.Itoa(row.RatingDiff),
		strconv.Itoa(row.Year), row.Month, row.TimeControl,
		row.EndDatetime, strconv.FormatInt(row.EndTime, 10), row.URL,
	}
}

func perspectiveRecord(row models.SubjectPerspectiveRow) []string {
	return []string{
		row.GameDate, strconv.FormatInt(row.GameTime, 10), row.EndDatetime,
		row.PlayerName, row.OpponentName,
		strconv.Itoa(row.PlayerRating), strconv.Itoa(row.OpponentRating),
		strconv.Itoa(row.RatingDiff), row.DifficultyCategory, row.ResultStatus,
		row.GameType, row.OpeningName, strconv.Itoa(row.MoveCount),
		row.PlayerColor, row.GameURL,
		strconv.FormatBool(row.IsWin), strconv.FormatBool(row.IsLoss),
		strconv.FormatBool(row.IsDraw),
	}
}

// columnIndex maps a CSV header to field positions so files with
// reordered or extra columns still read back.
type columnIndex map[string]int

func newColumnIndex(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

func (idx columnIndex) str(rec []string, name string) string {
	if i, ok := idx[name]; ok && i < len(rec) {
		return rec[i]
	}
	return ""
}

func (idx columnIndex) num(rec []string, name string) int {
	v, _ := strconv.Atoi(idx.str(rec, name))
	return v
}

func (idx columnIndex) num64(rec []string, name string) int64 {
	v, _ := strconv.ParseInt(idx.str(rec, name), 10, 64)
	return v
}

func (idx columnIndex) boolean(rec []string, name string) bool {
	v, _ := strconv.ParseBool(strings.ToLower(idx.str(rec, name)))
	return v
}

func canonicalRowFromRecord(idx columnIndex, rec []string) models.CanonicalGameRow {
	return models.CanonicalGameRow{
		EndDate:        idx.str(rec, "end_date"),
		WhiteUsername:  idx.str(rec, "white_username"),
		BlackUsername:  idx.str(rec, "black_username"),
		WhiteRating:    idx.num(rec, "white_rating"),
		BlackRating:    idx.num(rec, "black_rating"),
		Result:         idx.str(rec, "result"),
		Winner:         idx.str(rec, "winner"),
		ResultCategory: idx.str(rec, "result_category"),
		GameType:       idx.str(rec, "game_type"),
		OpeningName:    idx.str(rec, "opening_name"),
		ECOCode:        idx.str(rec, "eco_code"),
		MoveCount:      idx.num(rec, "move_count"),
		WhiteWin:       idx.boolean(rec, "white_win"),
		BlackWin:       idx.boolean(rec, "black_win"),
		IsDraw:         idx.boolean(rec, "is_draw"),
		RatingDiff:     idx.num(rec, "rating_diff"),
		Year:           idx.num(rec, "year"),
		Month:          idx.str(rec, "month"),
		TimeControl:    idx.str(rec, "time_control"),
		EndDatetime:    idx.str(rec, "end_datetime"),
		EndTime:        idx.num64(rec, "end_time"),
		URL:            idx.str(rec, "url"),
	}
}
