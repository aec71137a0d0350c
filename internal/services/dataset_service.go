package services

import (
	"sort"
	"sync"

	"chessetl/internal/models"
)

type PlayerCount struct {
	Username string `json:"username"`
	Games    int    `json:"games"`
}

type Summary struct {
	TotalGames    int            `json:"total_games"`
	UniquePlayers int            `json:"unique_players"`
	FirstDate     string         `json:"first_date"`
	LastDate      string         `json:"last_date"`
	GameTypes     map[string]int `json:"game_types"`
}

type DatasetServiceInterface interface {
	Load(rows []models.CanonicalGameRow)
	Rows() []models.CanonicalGameRow
	ByPlayer(name string) []models.CanonicalGameRow
	Players() []PlayerCount
	Summary() Summary
	Len() int
}

type DatasetService struct {
	mu   sync.RWMutex
	rows []models.CanonicalGameRow
}

func NewDatasetService() DatasetServiceInterface {
	return &DatasetService{}
}

// Load replaces the whole dataset. Rows are expected to arrive already
// ordered by end_time ascending.
func (ds *DatasetService) Load(rows []models.CanonicalGameRow) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.rows = rows
}

func (ds *DatasetService) Rows() []models.CanonicalGameRow {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	out := make([]models.CanonicalGameRow, len(ds.rows))
	copy(out, ds.rows)
	return out
}

func (ds *DatasetService) ByPlayer(name string) []models.CanonicalGameRow {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	var out []models.CanonicalGameRow
	for _, row := range ds.rows {
		if row.WhiteUsername == name || row.BlackUsername == name {
			out = append(out, row)
		}
	}
	return out
}

// Players returns usernames with their game counts, most frequent
// first; ties keep first-encountered order.
func (ds *DatasetService) Players() []PlayerCount {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

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
	for _, row := range ds.rows {
		seen(row.WhiteUsername)
		seen(row.BlackUsername)
	}

	out := make([]PlayerCount, 0, len(order))
	for _, name := range order {
		out = append(out, PlayerCount{Username: name, Games: counts[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Games > out[j].Games
	})
	return out
}

func (ds *DatasetService) Summary() Summary {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	s := Summary{
		TotalGames: len(ds.rows),
		GameTypes:  make(map[string]int),
	}

	players := make(map[string]struct{})
	for _, row := range ds.rows {
		if row.WhiteUsername != "" {
			players[row.WhiteUsername] = struct{}{}
		}
		if row.BlackUsername != "" {
			players[row.BlackUsername] = struct{}{}
		}
		s.GameTypes[row.GameType]++

		if row.EndDate == "" {
			continue
		}
		if s.FirstDate == "" || row.EndDate < s.FirstDate {
			s.FirstDate = row.EndDate
		}
		if row.EndDate > s.LastDate {
			s.LastDate = row.EndDate
		}
	}
	s.UniquePlayers = len(players)
	return s
}

func (ds *DatasetService) Len() int {
	ds.mu.RLock()
	defer ds.mu.RUnlock()
	return len(ds.rows)
}
