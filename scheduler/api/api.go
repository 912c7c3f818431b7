// Package api serves the scheduling operations over HTTP/JSON for the
// visualization frontend and CLI clients.
package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	uuid "github.com/nu7hatch/gouuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/tempodev/tempo/common/stats"
	"github.com/tempodev/tempo/scheduler/domain"
	"github.com/tempodev/tempo/scheduler/server"
)

// One route per policy/topology combination.
const (
	LdfSingleNodePath = "/schedule/ldf_single_node"
	EdfSingleNodePath = "/schedule/edf_single_node"
	EdfMultiNodePath  = "/schedule/edf_multi_node"
	LdfMultiNodePath  = "/schedule/ldf_multi_node"
	LlMultiNodePath   = "/schedule/ll_multi_node"
)

// ScheduleRequest is the body accepted by every scheduling route. Platform
// is only required by the multi node routes.
type ScheduleRequest struct {
	Application domain.ApplicationData `json:"application"`
	Platform    domain.PlatformData    `json:"platform"`
}

// ErrorResponse is the structured error body for failed scheduling calls.
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	RequestID string `json:"request_id"`
}

// Handler dispatches scheduling requests to a server.Scheduler.
type Handler struct {
	scheduler *server.Scheduler
	stat      stats.StatsReceiver
	limiter   *rate.Limiter
}

// NewHandler creates an api handler. limiter may be nil to serve unthrottled.
func NewHandler(scheduler *server.Scheduler, stat stats.StatsReceiver, limiter *rate.Limiter) *Handler {
	if stat == nil {
		stat = stats.NilStatsReceiver()
	}
	return &Handler{scheduler: scheduler, stat: stat, limiter: limiter}
}

// Register installs the scheduling routes on the given mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc(LdfSingleNodePath, h.serve(func(req *ScheduleRequest) (*domain.Schedule, error) {
		return h.scheduler.ScheduleSingleNode(req.Application, server.LDF)
	}))
	mux.HandleFunc(EdfSingleNodePath, h.serve(func(req *ScheduleRequest) (*domain.Schedule, error) {
		return h.scheduler.ScheduleSingleNode(req.Application, server.EDF)
	}))
	mux.HandleFunc(EdfMultiNodePath, h.serve(func(req *ScheduleRequest) (*domain.Schedule, error) {
		return h.scheduler.ScheduleMultiNode(req.Application, req.Platform, server.EDF)
	}))
	mux.HandleFunc(LdfMultiNodePath, h.serve(func(req *ScheduleRequest) (*domain.Schedule, error) {
		return h.scheduler.ScheduleMultiNode(req.Application, req.Platform, server.LDF)
	}))
	mux.HandleFunc(LlMultiNodePath, h.serve(func(req *ScheduleRequest) (*domain.Schedule, error) {
		return h.scheduler.ScheduleLeastLaxity(req.Application, req.Platform)
	}))
}

func (h *Handler) serve(schedule func(*ScheduleRequest) (*domain.Schedule, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqID := generateRequestId()
		h.stat.Counter(stats.ApiServeCounter).Inc(1)
		defer h.stat.Latency(stats.ApiServeLatency_ms).Time().Stop()

		if r.Method != http.MethodPost {
			h.writeError(w, reqID, http.StatusMethodNotAllowed,
				errors.Errorf("method %s not allowed, POST a schedule request", r.Method))
			return
		}
		if h.limiter != nil && !h.limiter.Allow() {
			h.stat.Counter(stats.ApiThrottledCounter).Inc(1)
			h.writeError(w, reqID, http.StatusTooManyRequests, errors.New("rate limit exceeded"))
			return
		}

		body, err := ioutil.ReadAll(r.Body)
		if err != nil {
			h.writeError(w, reqID, http.StatusBadRequest, errors.Wrap(err, "reading request body"))
			return
		}
		req := &ScheduleRequest{}
		if err := json.Unmarshal(body, req); err != nil {
			h.writeError(w, reqID, http.StatusBadRequest, errors.Wrap(err, "parsing request body"))
			return
		}

		log.WithFields(log.Fields{
			"requestID": reqID,
			"path":      r.URL.Path,
			"numTasks":  len(req.Application.Tasks),
			"numNodes":  len(req.Platform.Nodes),
		}).Info("Serving schedule request")

		result, err := schedule(req)
		if err != nil {
			h.writeError(w, reqID, http.StatusBadRequest, err)
			return
		}
		h.writeJSON(w, http.StatusOK, result)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, reqID string, status int, err error) {
	h.stat.Counter(stats.ApiServeErrCounter).Inc(1)
	log.WithFields(log.Fields{"requestID": reqID, "err": err}).Info("Schedule request failed")
	h.writeJSON(w, status, &ErrorResponse{
		Error:     err.Error(),
		Kind:      errorKind(err),
		RequestID: reqID,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithFields(log.Fields{"err": err}).Error("Error writing response")
	}
}

// errorKind maps the scheduling error taxonomy to wire identifiers.
func errorKind(err error) string {
	switch errors.Cause(err).(type) {
	case *domain.CyclicDependencyError:
		return "cyclic_dependency"
	case *domain.UnknownTaskReferenceError:
		return "unknown_task_reference"
	case *domain.InvalidTaskError:
		return "invalid_task"
	default:
		return "invalid_request"
	}
}

func generateRequestId() string {
	id, err := uuid.NewV4()
	for err != nil {
		id, err = uuid.NewV4()
	}
	return id.String()
}
