package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"postlikes/app/middleware"
	"postlikes/app/repositories"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupTestStore(t *testing.T) *repositories.BadgerStore {
	store, err := repositories.NewBadgerStore("", nil)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func setupTestRouter(t *testing.T) *mux.Router {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return SetupRoutes(setupTestStore(t), Options{
		Logger:     logger,
		BcryptCost: bcrypt.MinCost,
	})
}

// doJSON sends a request with an optional JSON body and caller identity
// and decodes the response into out when out is non-nil.
func doJSON(t *testing.T, router http.Handler, method, path, userID string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != "" {
		req.Header.Set(middleware.UserIDHeader, userID)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if out != nil && w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
	}
	return w
}
