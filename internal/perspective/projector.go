package perspective

import (
	"errors"
	"fmt"
	"sort"

	"chessetl/internal/dataset"
	"chessetl/internal/models"
	"chessetl/internal/providers"
	"chessetl/internal/structures"
)

// ErrNoSubjectRows reports that no tracked subject appeared on either
// side of any canonical row.
var ErrNoSubjectRows = errors.New("no subject matched any row")

// DefaultTopPlayers is how many most-frequent usernames stand in for
// subjects when neither subjects nor a top-player limit are configured.
const DefaultTopPlayers = 5

type Projector struct {
	files      *dataset.FileManager
	logger     providers.Logger
	topPlayers int
}

func NewProjector(conf *structures.Config, files *dataset.FileManager, logger providers.Logger) *Projector {
	top := conf.Perspective.TopPlayers
	if top <= 0 {
		top = DefaultTopPlayers
	}
	return &Projector{files: files, logger: logger, topPlayers: top}
}

// Project emits 0, 1 or 2 subject-centric rows per canonical row: one
// per side whose username is tracked, white side first. The output is
// sorted by game timestamp ascending.
func (p *Projector) Project(rows []models.CanonicalGameRow, subjects []string) ([]models.SubjectPerspectiveRow, error) {
	if len(rows) == 0 {
		return nil, dataset.ErrDatasetEmpty
	}

	if len(subjects) == 0 {
		subjects = TopPlayers(rows, p.topPlayers)
		p.logger.Infof(providers.TypePerspective, "No subjects configured, tracking top players: %v", subjects)
	}

	tracked := make(map[string]struct{}, len(subjects))
	for _, s := range subjects {
		tracked[s] = struct{}{}
	}

	var out []models.SubjectPerspectiveRow
	for _, row := range rows {
		if _, ok := tracked[row.WhiteUsername]; ok {
			out = append(out, perspectiveRow(row, models.ColorWhite))
		}
		if _, ok := tracked[row.BlackUsername]; ok {
			out = append(out, perspectiveRow(row, models.ColorBlack))
		}
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("%w: subjects=%v", ErrNoSubjectRows, subjects)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].GameTime < out[j].GameTime
	})
	return out, nil
}

// ProjectFile reads a persisted canonical dataset, projects it and
// writes the perspective dataset.
func (p *Projector) ProjectFile(inputPath, outputPath string, subjects []string) (int, error) {
	rows, err := p.files.ReadCanonicalCSV(inputPath)
	if err != nil {
		return 0, err
	}

	out, err := p.Project(rows, subjects)
	if err != nil {
		return 0, err
	}

	if err := p.files.WritePerspectiveCSV(outputPath, out); err != nil {
		return 0, err
	}
	p.logger.Infof(providers.TypePerspective, "Wrote %d perspective rows to %s", len(out), outputPath)
	return len(out), nil
}

// TopPlayers returns the n most frequent usernames across both sides;
// ties keep first-encountered order.
func TopPlayers(rows []models.CanonicalGameRow, n int) []string {
	counts := make(map[string]int)
	var order []string
	seen := func(name string) {
		if name == "" {
			return
		}
		if _, ok := counts[name]; !ok {
			order = append(order, name)
		}
		counts[name]++
	}
	for _, row := range rows {
		seen(row.WhiteUsername)
		seen(row.BlackUsername)
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > n {
		order = order[:n]
	}
	return order
}

func perspectiveRow(row models.CanonicalGameRow, color string) models.SubjectPerspectiveRow {
	isWhite := color == models.ColorWhite

	player, opponent := row.WhiteUsername, row.BlackUsername
	playerRating, opponentRating := row.WhiteRating, row.BlackRating
	if !isWhite {
		player, opponent = opponent, player
		playerRating, opponentRating = opponentRating, playerRating
	}

	status := resultStatus(row.Winner, player)
	diff := playerRating - opponentRating

	return models.SubjectPerspectiveRow{
		GameDate:           row.EndDate,
		GameTime:           row.EndTime,
		EndDatetime:        row.EndDatetime,
		PlayerName:         player,
		OpponentName:       opponent,
		PlayerRating:       playerRating,
		OpponentRating:     opponentRating,
		RatingDiff:         diff,
		DifficultyCategory: DifficultyCategory(diff),
		ResultStatus:       status,
		GameType:           row.GameType,
		OpeningName:        row.OpeningName,
		MoveCount:          row.MoveCount,
		PlayerColor:        color,
		GameURL:            row.URL,
		IsWin:              status == models.ResultStatusWin,
		IsLoss:             status == models.ResultStatusLoss,
		IsDraw:             status == models.ResultStatusDraw,
	}
}

func resultStatus(winner, player string) string {
	switch winner {
	case models.WinnerDraw:
		return models.ResultStatusDraw
	case player:
		return models.ResultStatusWin
	default:
		return models.ResultStatusLoss
	}
}

// DifficultyCategory buckets the player-relative rating difference.
// Buckets are half-open and evaluated top down; boundary values belong
// to the higher-magnitude bucket.
func DifficultyCategory(ratingDiff int) string {
	switch {
	case ratingDiff >= 100:
		return "Much Stronger"
	case ratingDiff >= 25:
		return "Stronger"
	case ratingDiff > -25:
		return "Similar"
	case ratingDiff > -100:
		return "Weaker"
	default:
		return "Much Weaker"
	}
}
