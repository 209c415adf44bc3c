package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/bookwise/internal/logging"
	"github.com/dmitrijs2005/bookwise/internal/server/auth"
	"github.com/dmitrijs2005/bookwise/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/bookwise/internal/server/services"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeModel struct {
	reply string
	err   error
	calls int
}

func (m *fakeModel) Complete(context.Context, string) (string, error) {
	m.calls++
	return m.reply, m.err
}

type memStore struct{ objects map[string][]byte }

func (s *memStore) Put(_ context.Context, key string, body io.Reader, _ string) error {
	b, err := io.ReadAll(body)
	if err != nil {
		return err
	}
	s.objects[key] = b
	return nil
}

func (s *memStore) PresignGet(_ context.Context, key string, _ time.Duration) (string, error) {
	return "http://minio.test/bookwise/" + key, nil
}

type testAPI struct {
	handler http.Handler
	model   *fakeModel
	manager *repomanager.MemoryRepositoryManager
	tokens  *auth.TokenService
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	mgr := repomanager.NewMemoryRepositoryManager()
	tokens := auth.NewTokenService([]byte("test-secret"), 30*time.Minute)
	users, err := services.NewUserService(nil, mgr, auth.NewHasher(bcrypt.MinCost), tokens)
	require.NoError(t, err)

	model := &fakeModel{}
	logger := logging.NewDiscardLogger()

	h := NewRouter(Deps{
		Users:           users,
		Recommendations: services.NewRecommendationService(model, time.Second, logger, nil),
		SavedBooks:      services.NewSavedBookService(nil, mgr, &memStore{objects: map[string][]byte{}}),
		Guard:           auth.NewGuard(tokens, mgr.UserStore(), time.Second),
		Logger:          logger,
	})
	return &testAPI{handler: h, model: model, manager: mgr, tokens: tokens}
}

func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

// signup registers and logs in username, returning the access token.
func (a *testAPI) signup(t *testing.T, username string) string {
	t.Helper()
	creds := map[string]string{"username": username, "password": "pw-" + username}

	rec := a.do(t, http.MethodPost, "/auth/register", "", creds)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = a.do(t, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var lr loginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lr))
	return lr.AccessToken
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var e ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}
