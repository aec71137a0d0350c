package models

const (
	ResultStatusWin  = "Win"
	ResultStatusDraw = "Draw"
	ResultStatusLoss = "Loss"
)

const (
	ColorWhite = "white"
	ColorBlack = "black"
)

// SubjectPerspectiveRow reframes a canonical row around one tracked
// player. RatingDiff is player minus opponent, so the sign flips
// relative to the canonical white-minus-black value when the subject
// played black.
type SubjectPerspectiveRow struct {
	GameDate           string `json:"game_date"`
	GameTime           int64  `json:"game_time"`
	EndDatetime        string `json:"end_datetime"`
	PlayerName         string `json:"player_name"`
	OpponentName       string `json:"opponent_name"`
	PlayerRating       int    `json:"player_rating"`
	OpponentRating     int    `json:"opponent_rating"`
	RatingDiff         int    `json:"rating_diff"`
	DifficultyCategory string `json:"difficulty_category"`
	ResultStatus       string `json:"result_status"`
	GameType           string `json:"game_type"`
	OpeningName        string `json:"opening_name,omitempty"`
	MoveCount          int    `json:"move_count"`
	PlayerColor        string `json:"player_color"`
	GameURL            string `json:"game_url"`
	IsWin              bool   `json:"is_win"`
	IsLoss             bool   `json:"is_loss"`
	IsDraw             bool   `json:"is_draw"`
}
