package models

import "time"

// Book is one recommendation as returned by the model. Field order and JSON
// names are part of the prompt contract; the JSON Schema the model is asked
// to follow is reflected from this struct.
type Book struct {
	Title            string `json:"title" jsonschema:"minLength=1,pattern=\\S"`
	Author           string `json:"author" jsonschema:"minLength=1,pattern=\\S"`
	Genre            string `json:"genre" jsonschema:"minLength=1,pattern=\\S"`
	BriefSummary     string `json:"brief_summary" jsonschema:"minLength=1,pattern=\\S"`
	ShortDescription string `json:"short_description" jsonschema:"minLength=1,pattern=\\S"`
}

// SavedBook is a Book the user kept for later.
type SavedBook struct {
	ID      string    `json:"id"`
	UserID  string    `json:"-"`
	Book              // flattened into the JSON object
	SavedAt time.Time `json:"saved_at"`
}
