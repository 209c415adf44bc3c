package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/server/models"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

const maxBodyBytes = 1 << 20

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Password string `json:"password" validate:"required,max=72"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

func newUserResponse(u *models.User) userResponse {
	return userResponse{ID: u.ID, Username: u.UserName, CreatedAt: u.CreatedAt}
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	User        userResponse `json:"user"`
}

type recommendRequest struct {
	Query   string                       `json:"query"`
	Count   int                          `json:"count"`
	Filters models.RecommendationFilters `json:"filters"`
}

type saveBookRequest struct {
	Title            string `json:"title" validate:"required"`
	Author           string `json:"author" validate:"required"`
	Genre            string `json:"genre" validate:"required"`
	BriefSummary     string `json:"brief_summary" validate:"required"`
	ShortDescription string `json:"short_description" validate:"required"`
}

func (r saveBookRequest) book() models.Book {
	return models.Book{
		Title:            r.Title,
		Author:           r.Author,
		Genre:            r.Genre,
		BriefSummary:     r.BriefSummary,
		ShortDescription: r.ShortDescription,
	}
}

type checkResponse struct {
	IsSaved     bool    `json:"is_saved"`
	SavedBookID *string `json:"saved_book_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// decode reads a JSON body into dst and runs struct validation. Any failure
// is reported as common.ErrInvalidInput.
func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		return common.ErrInvalidInput
	}
	if err := validate.Struct(dst); err != nil {
		return common.ErrInvalidInput
	}
	return nil
}
