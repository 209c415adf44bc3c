package models

const (
	DefaultRecommendationCount = 10
	MaxRecommendationCount     = 50

	// QuickRecommendationCount is the fixed size of a quick answer.
	QuickRecommendationCount = 5

	// Search takes its query from the URL and keeps answers short.
	SearchMinQueryLength = 3
	SearchDefaultLimit   = 5
	SearchMaxLimit       = 10
)

// RecommendationFilters narrows the kind of books asked for. Empty fields
// are not constrained.
type RecommendationFilters struct {
	Language       string `json:"language,omitempty"`
	TargetAudience string `json:"target_audience,omitempty"`
	BookType       string `json:"book_type,omitempty"`
	ContentType    string `json:"content_type,omitempty"`
	ReadingLevel   string `json:"reading_level,omitempty"`
}

// RecommendationQuery is a single free-text request for books.
type RecommendationQuery struct {
	Text    string
	Count   int
	Filters RecommendationFilters
}

// FilterCatalogue lists the accepted values per filter.
type FilterCatalogue struct {
	Languages       []string `json:"languages"`
	TargetAudiences []string `json:"target_audiences"`
	BookTypes       []string `json:"book_types"`
	ContentTypes    []string `json:"content_types"`
	ReadingLevels   []string `json:"reading_levels"`
}

// Filters returns the catalogue published by GET /recommendations/filters.
func Filters() FilterCatalogue {
	return FilterCatalogue{
		Languages:       []string{"English", "Spanish", "French", "German", "Italian", "Portuguese", "Russian", "Chinese", "Japanese", "Korean", "Arabic", "Hindi", "Latvian"},
		TargetAudiences: []string{"Children", "Young Adult", "Adult", "All Ages"},
		BookTypes:       []string{"Fiction", "Non-Fiction", "Poetry", "Biography", "Memoir", "Self-Help", "Reference"},
		ContentTypes:    []string{"Novel", "Short Stories", "Essays", "Graphic Novel", "Textbook", "Anthology"},
		ReadingLevels:   []string{"Beginner", "Intermediate", "Advanced"},
	}
}

// Valid reports whether every non-empty filter holds a catalogue value.
func (f RecommendationFilters) Valid() bool {
	c := Filters()
	return oneOf(f.Language, c.Languages) &&
		oneOf(f.TargetAudience, c.TargetAudiences) &&
		oneOf(f.BookType, c.BookTypes) &&
		oneOf(f.ContentType, c.ContentTypes) &&
		oneOf(f.ReadingLevel, c.ReadingLevels)
}

func oneOf(v string, allowed []string) bool {
	if v == "" {
		return true
	}
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}
