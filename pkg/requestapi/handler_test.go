package requestapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func postJSON(t *testing.T, handler http.Handler, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("unable to marshal request: %s", err)
	}
	request := httptest.NewRequest(http.MethodPost, "/sync", bytes.NewReader(data))
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	return recorder
}

func TestHandlerRejectsEmptySources(t *testing.T) {
	handler := NewHandler()
	recorder := postJSON(t, handler, Request{Operation: "sync-all", Destinations: []string{"/tmp/d"}})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestHandlerRejectsPathTraversal(t *testing.T) {
	handler := NewHandler()
	recorder := postJSON(t, handler, Request{
		Operation:    "sync-all",
		Sources:      []string{"/tmp/../etc/passwd"},
		Destinations: []string{"/tmp/d"},
	})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestHandlerRejectsIdenticalSourcesAndDestinations(t *testing.T) {
	handler := NewHandler()
	same := []string{"/tmp/a", "/tmp/b"}
	recorder := postJSON(t, handler, Request{Operation: "sync-all", Sources: same, Destinations: same})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", recorder.Code)
	}
}

func TestHandlerRunsSyncOnValidRequest(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src", "a.txt")
	if err := os.MkdirAll(filepath.Dir(src), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(src, []byte("hello"), 0600); err != nil {
		t.Fatal(err)
	}
	dest := filepath.Join(root, "dest")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}

	handler := NewHandler()
	recorder := postJSON(t, handler, Request{
		Operation:    "sync-all",
		Sources:      []string{src},
		Destinations: []string{dest},
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", recorder.Code, recorder.Body.String())
	}

	var response Response
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("unable to decode response: %s", err)
	}
	if response.RequestID == "" {
		t.Error("expected a non-empty request ID")
	}
	if response.Result.ItemsCompleted != 1 {
		t.Errorf("unexpected result: %+v", response.Result)
	}
}
