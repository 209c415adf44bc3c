package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_PasswordHashNeverSerialized(t *testing.T) {
	u := User{ID: "id-1", UserName: "alice", PasswordHash: "$2a$10$secret", CreatedAt: time.Unix(0, 0).UTC()}

	b, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(b), "secret")
	assert.NotContains(t, string(b), "password")
	assert.Contains(t, string(b), `"username":"alice"`)
}

func TestSavedBook_FlattensBook(t *testing.T) {
	sb := SavedBook{
		ID:     "sb-1",
		UserID: "u-1",
		Book:   Book{Title: "A", Author: "B", Genre: "C", BriefSummary: "D", ShortDescription: "E"},
	}

	b, err := json.Marshal(sb)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "A", m["title"])
	assert.Equal(t, "E", m["short_description"])
	assert.NotContains(t, m, "user_id")
	assert.NotContains(t, m, "Book")
}

func TestRecommendationFilters_Valid(t *testing.T) {
	assert.True(t, RecommendationFilters{}.Valid())
	assert.True(t, RecommendationFilters{Language: "English", ReadingLevel: "Advanced"}.Valid())
	assert.False(t, RecommendationFilters{Language: "Klingon"}.Valid())
	assert.False(t, RecommendationFilters{BookType: "fiction"}.Valid(), "values are case-sensitive")
}
