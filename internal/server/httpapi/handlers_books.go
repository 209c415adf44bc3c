package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/bookwise/internal/common"
	"github.com/dmitrijs2005/bookwise/internal/server/models"
	"github.com/go-chi/chi/v5"
)

func (h *handler) filters(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, models.Filters())
}

func (h *handler) recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, common.ErrInvalidQuery)
		return
	}

	books, err := h.recs.Recommend(r.Context(), userFrom(r.Context()), models.RecommendationQuery{
		Text:    req.Query,
		Count:   req.Count,
		Filters: req.Filters,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// quickRecommend answers with a fixed, small number of books.
func (h *handler) quickRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, common.ErrInvalidQuery)
		return
	}

	books, err := h.recs.Recommend(r.Context(), userFrom(r.Context()), models.RecommendationQuery{
		Text:    req.Query,
		Count:   models.QuickRecommendationCount,
		Filters: req.Filters,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

// searchRecommend is the GET form: ?q=<text>&limit=<1..10>.
func (h *handler) searchRecommend(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if utf8.RuneCountInString(q) < models.SearchMinQueryLength {
		writeError(w, common.ErrInvalidQuery)
		return
	}

	limit := models.SearchDefaultLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > models.SearchMaxLimit {
			writeError(w, common.ErrInvalidQuery)
			return
		}
		limit = n
	}

	books, err := h.recs.Recommend(r.Context(), userFrom(r.Context()), models.RecommendationQuery{Text: q, Count: limit})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *handler) saveBook(w http.ResponseWriter, r *http.Request) {
	var req saveBookRequest
	if err := decode(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	sb, err := h.saved.Save(r.Context(), userFrom(r.Context()), req.book())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sb)
}

func (h *handler) listSaved(w http.ResponseWriter, r *http.Request) {
	books, err := h.saved.List(r.Context(), userFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, books)
}

func (h *handler) deleteSaved(w http.ResponseWriter, r *http.Request) {
	if err := h.saved.Delete(r.Context(), userFrom(r.Context()), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) checkSaved(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	author := strings.TrimSpace(r.URL.Query().Get("author"))
	if title == "" || author == "" {
		writeError(w, common.ErrInvalidInput)
		return
	}

	ok, id, err := h.saved.Check(r.Context(), userFrom(r.Context()), title, author)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := checkResponse{IsSaved: ok}
	if ok {
		resp.SavedBookID = &id
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *handler) exportSaved(w http.ResponseWriter, r *http.Request) {
	exp, err := h.saved.Export(r.Context(), userFrom(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}
