package nutrition

import (
	"encoding/json"
	"strings"
)

// FavoriteSet is an insertion-ordered set of recipe IDs.
type FavoriteSet struct {
	ids []string
}

// DecodeFavorites parses the serialized favoriteRecipes field. Absent, empty
// or malformed input yields an empty set.
func DecodeFavorites(serialized string) FavoriteSet {
	var set FavoriteSet
	if strings.TrimSpace(serialized) == "" {
		return set
	}
	var raw []string
	if err := json.Unmarshal([]byte(serialized), &raw); err != nil {
		return set
	}
	for _, id := range raw {
		set.Add(id)
	}
	return set
}

// NewFavoriteSet builds a set from ids, dropping duplicates and blanks.
func NewFavoriteSet(ids ...string) FavoriteSet {
	var set FavoriteSet
	for _, id := range ids {
		set.Add(id)
	}
	return set
}

// Contains reports membership.
func (s FavoriteSet) Contains(id string) bool {
	for _, v := range s.ids {
		if v == id {
			return true
		}
	}
	return false
}

// Add inserts id. It reports false if id was already present.
func (s *FavoriteSet) Add(id string) bool {
	if id == "" || s.Contains(id) {
		return false
	}
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes id. It reports false if id was absent.
func (s *FavoriteSet) Remove(id string) bool {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i:i], s.ids[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of members.
func (s FavoriteSet) Len() int { return len(s.ids) }

// IDs returns a copy of the members in insertion order.
func (s FavoriteSet) IDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

// Encode serializes the set to the JSON array string stored on preferences.
func (s FavoriteSet) Encode() string {
	if len(s.ids) == 0 {
		return "[]"
	}
	b, err := json.Marshal(s.ids)
	if err != nil {
		return "[]"
	}
	return string(b)
}
