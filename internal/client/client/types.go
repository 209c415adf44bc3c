package client

import "time"

type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
	User        User      `json:"user"`
}

type Book struct {
	Title            string `json:"title"`
	Author           string `json:"author"`
	Genre            string `json:"genre"`
	BriefSummary     string `json:"brief_summary"`
	ShortDescription string `json:"short_description"`
}

type SavedBook struct {
	ID string `json:"id"`
	Book
	SavedAt time.Time `json:"saved_at"`
}

type Filters struct {
	Language       string `json:"language,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	BookType       string `json:"book_type,omitempty"`
	ContentType    string `json:"content_type,omitempty"`
	ReadingLevel   string `json:"reading_level,omitempty"`
}

type FilterCatalogue struct {
	Languages       []string `json:"languages"`
	TargetAudiences []string `json:"target_audiences"`
	BookTypes       []string `json:"book_types"`
	ContentTypes    []string `json:"content_types"`
	ReadingLevels   []string `json:"reading_levels"`
}

type Export struct {
	Key string `json:"key"`
	URL string `json:"url"`
}
