// Package transport exposes the read API over HTTP and the health service over gRPC.
package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/goodnatureofminers/tezwatch-backend/internal/aggregate"
	"github.com/goodnatureofminers/tezwatch-backend/internal/model"
	"github.com/goodnatureofminers/tezwatch-backend/internal/query"
	"github.com/goodnatureofminers/tezwatch-backend/internal/store"
	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"go.uber.org/zap"
)

// Reader is the read API served over REST.
type Reader interface {
	Nodes(ctx context.Context, offset, limit int) (aggregate.Page[model.NodeRecord], error)
	Bakers(ctx context.Context, offset, limit int) (aggregate.Page[model.BakerRecord], error)
	NetworkInfo(ctx context.Context) (model.NetworkInfo, error)
	SystemInfo(ctx context.Context) (query.SystemInfo, error)
	Settings(ctx context.Context, namespace string) (model.Settings, error)
	SaveSettings(ctx context.Context, s model.Settings) (model.Settings, error)
}

// RESTHandler serves the dashboard read API.
type RESTHandler struct {
	reader Reader
	logger *zap.Logger
}

// NewRESTHandler returns a RESTHandler instance.
func NewRESTHandler(reader Reader, logger *zap.Logger) *RESTHandler {
	return &RESTHandler{reader: reader, logger: logger}
}

// Register mounts every route on mux.
func (h *RESTHandler) Register(mux *gwruntime.ServeMux) error {
	routes := []struct {
		method  string
		pattern string
		handler gwruntime.HandlerFunc
	}{
		{http.MethodGet, "/v1/nodes", h.nodes},
		{http.MethodGet, "/v1/bakers", h.bakers},
		{http.MethodGet, "/v1/network", h.network},
		{http.MethodGet, "/v1/system", h.system},
		{http.MethodGet, "/v1/settings/{namespace}", h.getSettings},
		{http.MethodPut, "/v1/settings/{namespace}", h.putSettings},
	}
	for _, r := range routes {
		if err := mux.HandlePath(r.method, r.pattern, r.handler); err != nil {
			return fmt.Errorf("register %s %s: %w", r.method, r.pattern, err)
		}
	}
	return nil
}

func (h *RESTHandler) nodes(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	offset, limit, err := pageParams(r)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}
	page, err := h.reader.Nodes(r.Context(), offset, limit)
	h.respond(w, r, page, err)
}

func (h *RESTHandler) bakers(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	offset, limit, err := pageParams(r)
	if err != nil {
		h.fail(w, r, http.StatusBadRequest, err)
		return
	}
	page, err := h.reader.Bakers(r.Context(), offset, limit)
	h.respond(w, r, page, err)
}

func (h *RESTHandler) network(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	info, err := h.reader.NetworkInfo(r.Context())
	h.respond(w, r, info, err)
}

func (h *RESTHandler) system(w http.ResponseWriter, r *http.Request, _ map[string]string) {
	info, err := h.reader.SystemInfo(r.Context())
	h.respond(w, r, info, err)
}

func (h *RESTHandler) getSettings(w http.ResponseWriter, r *http.Request, params map[string]string) {
	s, err := h.reader.Settings(r.Context(), params["namespace"])
	h.respond(w, r, s, err)
}

func (h *RESTHandler) putSettings(w http.ResponseWriter, r *http.Request, params map[string]string) {
	var in model.Settings
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<16))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&in); err != nil {
		h.fail(w, r, http.StatusBadRequest, fmt.Errorf("decode settings: %w", err))
		return
	}
	in.Namespace = params["namespace"]
	s, err := h.reader.SaveSettings(r.Context(), in)
	h.respond(w, r, s, err)
}

func pageParams(r *http.Request) (offset, limit int, err error) {
	q := r.URL.Query()
	if offset, err = intParam(q.Get("offset")); err != nil {
		return 0, 0, fmt.Errorf("offset: %w", err)
	}
	if limit, err = intParam(q.Get("limit")); err != nil {
		return 0, 0, fmt.Errorf("limit: %w", err)
	}
	if offset < 0 || limit < 0 {
		return 0, 0, errors.New("offset and limit must not be negative")
	}
	return offset, limit, nil
}

func intParam(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.Atoi(v)
}

func (h *RESTHandler) respond(w http.ResponseWriter, r *http.Request, body any, err error) {
	if err != nil {
		h.fail(w, r, statusOf(err), err)
		return
	}
	writeJSON(w, http.StatusOK, body)
}

func statusOf(err error) int {
	var invalid *query.InvalidArgumentError
	switch {
	case errors.Is(err, store.ErrClosed), errors.Is(err, query.ErrNoNetworkInfo):
		return http.StatusServiceUnavailable
	case errors.As(err, &invalid):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type errorBody struct {
	Error string `json:"error"`
}

func (h *RESTHandler) fail(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Int("status", status), zap.Error(err))
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
