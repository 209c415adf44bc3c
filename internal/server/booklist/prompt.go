package booklist

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/bookwise/internal/server/models"
)

// BuildPrompt renders the completion prompt for q. The output depends only
// on q, so equal queries always produce equal prompts.
func BuildPrompt(q models.RecommendationQuery) (string, error) {
	schema, err := Schema()
	if err != nil {
		return "", err
	}

	count := q.Count
	if count <= 0 {
		count = models.DefaultRecommendationCount
	}

	var b strings.Builder
	b.WriteString("You are a book recommendation engine.\n")
	fmt.Fprintf(&b, "Recommend up to %d real, published books for the request below.\n", count)
	fmt.Fprintf(&b, "Request: %q\n", strings.TrimSpace(q.Text))

	if constraints := describeFilters(q.Filters); constraints != "" {
		fmt.Fprintf(&b, "Constraints: %s.\n", constraints)
	}

	b.WriteString("\nRespond with ONLY a JSON array and nothing else: no markdown, no commentary.\n")
	fmt.Fprintf(&b, "Each element is an object with these non-empty string fields, in this order: %s.\n",
		strings.Join(FieldNames(), ", "))
	b.WriteString("If no book fits the request, respond with [].\n")
	b.WriteString("The array must validate against this JSON Schema:\n")
	b.Write(schema)
	b.WriteString("\n")

	return b.String(), nil
}

func describeFilters(f models.RecommendationFilters) string {
	var parts []string
	add := func(name, v string) {
		if v != "" {
			parts = append(parts, name+" = "+v)
		}
	}
	add("language", f.Language)
	add("target audience", f.TargetAudience)
	add("book type", f.BookType)
	add("content type", f.ContentType)
	add("reading level", f.ReadingLevel)
	return strings.Join(parts, "; ")
}
