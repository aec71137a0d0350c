package models

import (
	"github.com/spf13/cast"
)

// RawGameRecord is one game object as delivered by the public archive
// API. The shape is loose: optional fields, mixed numeric types after
// JSON decoding, nested player sub-records. All access goes through the
// accessor methods below so that defaults are applied in one place.
type RawGameRecord map[string]any

// RawArchive is the payload of one monthly archive file.
type RawArchive struct {
	Games []RawGameRecord `json:"games"`
}

func (r RawGameRecord) Has(key string) bool {
	_, ok := r[key]
	return ok
}

// Sub returns a nested record, or a nil record whose accessors all
// return their defaults.
func (r RawGameRecord) Sub(key string) RawGameRecord {
	if v, ok := r[key]; ok {
		if m, ok := v.(map[string]any); ok {
			return RawGameRecord(m)
		}
		if m, ok := v.(RawGameRecord); ok {
			return m
		}
	}
	return nil
}

func (r RawGameRecord) String(key, def string) string {
	if v, ok := r[key]; ok {
		return cast.ToString(v)
	}
	return def
}

func (r RawGameRecord) Int(key string, def int) int {
	if v, ok := r[key]; ok {
		return cast.ToInt(v)
	}
	return def
}

func (r RawGameRecord) Int64(key string, def int64) int64 {
	if v, ok := r[key]; ok {
		return cast.ToInt64(v)
	}
	return def
}
