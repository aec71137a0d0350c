package models

const (
	GameTypeBullet  = "bullet"
	GameTypeBlitz   = "blitz"
	GameTypeRapid   = "rapid"
	GameTypeDaily   = "daily"
	GameTypeUnknown = "unknown"
)

// WinnerDraw is the literal winner value for drawn games.
const WinnerDraw = "draw"

// CanonicalGameRow is the analysis-ready projection of one raw game
// record. PGN text is carried only in memory and never persisted.
type CanonicalGameRow struct {
	URL            string `json:"url"`
	WhiteUsername  string `json:"white_username"`
	BlackUsername  string `json:"black_username"`
	WhiteRating    int    `json:"white_rating"`
	BlackRating    int    `json:"black_rating"`
	RatingDiff     int    `json:"rating_diff"`
	EndTime        int64  `json:"end_time"`
	EndDate        string `json:"end_date"`
	EndDatetime    string `json:"end_datetime"`
	Year           int    `json:"year"`
	Month          string `json:"month"`
	TimeControl    string `json:"time_control"`
	GameType       string `json:"game_type"`
	MoveCount      int    `json:"move_count"`
	ECOCode        string `json:"eco_code,omitempty"`
	OpeningName    string `json:"opening_name,omitempty"`
	PGNResult      string `json:"pgn_result,omitempty"`
	Winner         string `json:"winner"`
	Result         string `json:"result"`
	ResultCategory string `json:"result_category"`
	WhiteWin       bool   `json:"white_win"`
	BlackWin       bool   `json:"black_win"`
	IsDraw         bool   `json:"is_draw"`
	PGN            string `json:"-"`
}
