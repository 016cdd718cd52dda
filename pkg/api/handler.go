package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/hazyhaar/numen/pkg/kit"
	"github.com/hazyhaar/numen/pkg/numerology"
)

// RouterOptions are the optional parts of the router.
type RouterOptions struct {
	Metrics http.Handler // served on /metrics when set
	MCP     http.Handler // served on /mcp when set
}

// NewRouter returns an http.Handler with all numen API routes.
func NewRouter(eps *Endpoints, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()
	h := &handler{eps: eps}

	mux.HandleFunc("GET /v1/name/{name}", h.handleName)
	mux.HandleFunc("GET /v1/names/batch", methodNotAllowed)
	mux.HandleFunc("POST /v1/names/batch", h.handleNameBatch)
	mux.HandleFunc("GET /v1/date/{date}", h.handleDate)
	mux.HandleFunc("GET /v1/dates", h.handleDateRange)
	mux.HandleFunc("GET /v1/search", methodNotAllowed)
	mux.HandleFunc("POST /v1/search", h.handleSearch)
	mux.HandleFunc("GET /v1/reduce/{number}", h.handleReduce)
	mux.HandleFunc("GET /v1/health", handleHealth)

	if opts.Metrics != nil {
		mux.Handle("GET /metrics", opts.Metrics)
	}
	if opts.MCP != nil {
		mux.Handle("/mcp", opts.MCP)
	}

	return cors(mux)
}

type handler struct {
	eps *Endpoints
}

// --- names ---

func (h *handler) handleName(w http.ResponseWriter, r *http.Request) {
	birth, err := ParseOptionalDate(r.URL.Query().Get("birth_date"))
	if err != nil {
		writeErr(w, err)
		return
	}
	h.serve(w, r, h.eps.NameSignature, &NameRequest{Name: r.PathValue("name"), BirthDate: birth})
}

func (h *handler) handleNameBatch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 64*1024) // 64 KiB max
	var req NameBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.serve(w, r, h.eps.NameBatch, &req)
}

// --- dates ---

func (h *handler) handleDate(w http.ResponseWriter, r *http.Request) {
	date, err := ParseDate(r.PathValue("date"))
	if err != nil {
		writeErr(w, err)
		return
	}
	h.serve(w, r, h.eps.DateSignature, &DateRequest{Date: date})
}

func (h *handler) handleDateRange(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	start, err := ParseDate(q.Get("start"))
	if err != nil {
		writeErr(w, err)
		return
	}
	end, err := ParseDate(q.Get("end"))
	if err != nil {
		writeErr(w, err)
		return
	}
	lifePaths, err := ParseIntList(q.Get("life_paths"))
	if err != nil {
		writeErr(w, err)
		return
	}
	h.serve(w, r, h.eps.DateRange, &DateRangeRequest{Start: start, End: end, LifePaths: lifePaths})
}

// --- word search ---

func (h *handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 16*1024)
	var req SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	h.serve(w, r, h.eps.SearchWords, &req)
}

// --- reduce ---

func (h *handler) handleReduce(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.ParseFloat(r.PathValue("number"), 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid number")
		return
	}
	ignore, _ := strconv.ParseBool(r.URL.Query().Get("ignore_masters"))
	h.serve(w, r, h.eps.ReduceNumber, &ReduceRequest{Number: n, IgnoreMasters: ignore})
}

// --- health ---

type healthResponse struct {
	Status        string `json:"status"`
	MasterNumbers []int  `json:"master_numbers"`
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ok",
		MasterNumbers: numerology.MasterNumbers[:],
	})
}

// --- helpers ---

func (h *handler) serve(w http.ResponseWriter, r *http.Request, ep kit.Endpoint, req any) {
	ctx := kit.WithTransport(r.Context(), "http")
	if id := r.Header.Get("X-Request-Id"); id != "" {
		ctx = kit.WithRequestID(ctx, id)
	}
	resp, err := ep(ctx, req)
	if err != nil {
		writeErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// writeErr maps caller mistakes to 400 and everything else to 500.
func writeErr(w http.ResponseWriter, err error) {
	if numerology.IsInvalidInput(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// cors is a simple CORS middleware for browser-based clients.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
