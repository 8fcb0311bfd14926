// Package requestapi exposes syncengine.Engine over a JSON HTTP endpoint,
// performing the boundary validation that the engine itself does not: empty
// source/destination lists and path-traversal components are rejected
// before the engine ever runs.
package requestapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/panefs/syncengine/pkg/comparison"
	"github.com/panefs/syncengine/pkg/hashing"
	"github.com/panefs/syncengine/pkg/logging"
	"github.com/panefs/syncengine/pkg/must"
	"github.com/panefs/syncengine/pkg/syncengine"
	"github.com/pkg/errors"
)

// Request is the JSON body accepted by Handler.
type Request struct {
	Operation     string   `json:"operation"`
	Sources       []string `json:"sources"`
	Destinations  []string `json:"destinations"`
	Move          bool     `json:"move"`
	CompareMethod string   `json:"compareMethod"`
	HashAlgorithm string   `json:"hashAlgorithm"`
	Verify        bool     `json:"verify"`
}

// Response is the JSON envelope returned on success.
type Response struct {
	RequestID string               `json:"requestId"`
	Result    syncengine.SyncResult `json:"result"`
}

// Handler serves POST requests carrying a Request body and returns a
// Response carrying the engine's SyncResult.
type Handler struct {
	engine *syncengine.Engine
	logger *logging.Logger
}

// NewHandler constructs a Handler around a fresh Engine.
func NewHandler() *Handler {
	return &Handler{
		engine: syncengine.New(),
		logger: logging.RootLogger.Sublogger("requestapi"),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var request Request
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.badRequest(w, errors.Wrap(err, "unable to decode request body"))
		return
	}

	options, err := validate(request)
	if err != nil {
		h.badRequest(w, err)
		return
	}

	requestID := uuid.NewString()
	logger := h.logger.Sublogger(requestID)
	logger.Debugf("starting sync: %d source(s), %d destination(s)", len(request.Sources), len(request.Destinations))

	result := h.engine.Sync(request.Sources, request.Destinations, options, nil, nil)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	must.Encode(json.NewEncoder(w), Response{RequestID: requestID, Result: result}, h.logger)
}

func (h *Handler) badRequest(w http.ResponseWriter, err error) {
	h.logger.Warn(err)
	http.Error(w, err.Error(), http.StatusBadRequest)
}

// validate checks the request against the boundary rules (non-empty lists,
// no path-traversal components, recognized enum strings) and converts it
// into SyncOptions. It never invokes the engine.
func validate(request Request) (syncengine.SyncOptions, error) {
	if request.Operation != "sync-all" {
		return syncengine.SyncOptions{}, errors.Errorf("unsupported operation: %q", request.Operation)
	}
	if len(request.Sources) == 0 {
		return syncengine.SyncOptions{}, errors.New("sources must be non-empty")
	}
	if len(request.Destinations) == 0 {
		return syncengine.SyncOptions{}, errors.New("destinations must be non-empty")
	}
	if comparison.StringSlicesEqual(request.Sources, request.Destinations) {
		return syncengine.SyncOptions{}, errors.New("sources and destinations must not be identical")
	}
	for _, path := range request.Sources {
		if containsTraversal(path) {
			return syncengine.SyncOptions{}, errors.Errorf("source path contains a path-traversal component: %s", path)
		}
	}
	for _, path := range request.Destinations {
		if containsTraversal(path) {
			return syncengine.SyncOptions{}, errors.Errorf("destination path contains a path-traversal component: %s", path)
		}
	}

	options := syncengine.SyncOptions{
		Move:              request.Move,
		VerifyDestination: request.Verify,
	}

	var method comparison.Method
	if err := method.UnmarshalText([]byte(request.CompareMethod)); err != nil {
		return syncengine.SyncOptions{}, errors.Wrap(err, "invalid compareMethod")
	}
	options.CompareMethod = method

	var algorithm hashing.Algorithm
	if err := algorithm.UnmarshalText([]byte(request.HashAlgorithm)); err != nil {
		return syncengine.SyncOptions{}, errors.Wrap(err, "invalid hashAlgorithm")
	}
	options.HashAlgorithm = algorithm
	options.HasHashAlgorithm = request.HashAlgorithm != ""

	return options, nil
}

// containsTraversal reports whether path contains a ".." path component.
func containsTraversal(path string) bool {
	normalized := strings.ReplaceAll(path, "\\", "/")
	for _, component := range strings.Split(normalized, "/") {
		if component == ".." {
			return true
		}
	}
	return false
}
