package nutrition

import "strings"

// Recipe difficulty levels.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// NormalizeDifficulty maps free-form difficulty text onto easy/medium/hard.
// "difficult" becomes hard; anything unrecognised becomes medium.
func NormalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "easy":
		return DifficultyEasy
	case "hard", "difficult":
		return DifficultyHard
	default:
		return DifficultyMedium
	}
}
