package models

// NotationInfo is what the PGN parser extracts from a notation block.
// The zero value is the silent-recovery result for empty or
// unparseable input.
type NotationInfo struct {
	MoveCount   int
	ECOCode     string
	OpeningName string
	Result      string
}
