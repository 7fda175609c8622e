package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/erauner12/showcase/internal/chat"
	"github.com/erauner12/showcase/internal/model"
	"github.com/erauner12/showcase/internal/storage"
	"github.com/spf13/afero"
)

// testCatalogue seeds the products document of test servers
var testCatalogue = []model.Product{
	{ID: "p1", Name: "Apple", Price: 2.5, Category: "fruit"},
	{ID: "p2", Name: "Banana", Price: 1, Category: "fruit"},
	{ID: "p3", Name: "Carrot", Price: 0.75, Category: "veg"},
}

// newTestServer builds a Server over an in-memory filesystem with the
// catalogue seeded. The backend is returned so tests can inspect documents.
func newTestServer(t *testing.T, responder chat.Responder) (*Server, *storage.FileBackend) {
	t.Helper()

	backend := storage.NewFileBackend(afero.NewMemMapFs(), "data")
	ctx := context.Background()
	if err := storage.InitCollections(ctx, backend,
		storage.TasksCollection, storage.CartCollection, storage.ProductsCollection); err != nil {
		t.Fatalf("Failed to init collections: %v", err)
	}
	products := storage.NewCollection[model.Product](backend, storage.ProductsCollection)
	if err := products.Write(ctx, testCatalogue); err != nil {
		t.Fatalf("Failed to seed products: %v", err)
	}

	return NewServer(backend, chat.NewService(responder)), backend
}

// doJSON makes an HTTP request against router with an optional JSON body
func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var bodyReader *bytes.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader([]byte{})
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	return w
}

// decodeBody decodes the recorder's JSON body into v
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode response: %v (body: %s)", err, w.Body.String())
	}
}
