package service

import (
	"context"
	"fmt"
	"strings"

	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// GenerateEmbedding returns a small deterministic embedding for text made of
// its length and its vowel and consonant counts.
func GenerateEmbedding(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels, consonants float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		} else if r >= 'a' && r <= 'z' {
			consonants++
		}
	}
	return pgvector.NewVector([]float32{float32(len(text)), vowels, consonants})
}

// supportsVectors reports whether db has the pgvector embedding column.
func supportsVectors(db *gorm.DB) bool {
	return db.Dialector.Name() == "postgres"
}

// StoreEmbedding writes the embedding of a recipe's name and description.
// It is a no-op on databases without pgvector.
func StoreEmbedding(ctx context.Context, db *gorm.DB, recipeID interface{}, text string) error {
	if !supportsVectors(db) {
		return nil
	}
	vec := GenerateEmbedding(text)
	if err := db.WithContext(ctx).Exec("UPDATE recipes SET embedding = ? WHERE id = ?", vec, recipeID).Error; err != nil {
		return fmt.Errorf("failed to store embedding: %w", err)
	}
	return nil
}
