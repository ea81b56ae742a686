package healthcheck

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/bytearena/lineofsight/common/utils"
)

type HealthCheckHandler func() error

type HealthChecks struct {
	Name   string
	Status bool
	Error  string `json:",omitempty"`
}

type HealthCheckHttpResponse struct {
	Checks     []HealthChecks
	StatusCode int
}

type namedChecker struct {
	name    string
	handler HealthCheckHandler
}

// HealthCheckServer answers /health with the status of every registered check
type HealthCheckServer struct {
	checkers []namedChecker
	lock     *sync.RWMutex
}

func NewHealthCheckServer() *HealthCheckServer {
	return &HealthCheckServer{
		checkers: make([]namedChecker, 0),
		lock:     &sync.RWMutex{},
	}
}

func (server *HealthCheckServer) Register(name string, handler HealthCheckHandler) {
	server.lock.Lock()
	defer server.lock.Unlock()

	server.checkers = append(server.checkers, namedChecker{name, handler})
}

func (server *HealthCheckServer) Run() HealthCheckHttpResponse {
	server.lock.RLock()
	defer server.lock.RUnlock()

	res := HealthCheckHttpResponse{
		Checks:     make([]HealthChecks, 0, len(server.checkers)),
		StatusCode: http.StatusOK,
	}

	for _, checker := range server.checkers {
		check := HealthChecks{Name: checker.name, Status: true}

		if err := checker.handler(); err != nil {
			check.Status = false
			check.Error = err.Error()
			res.StatusCode = http.StatusInternalServerError
		}

		res.Checks = append(res.Checks, check)
	}

	return res
}

func (server *HealthCheckServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := server.Run()

	data, err := json.Marshal(res)
	utils.Check(err, "Failed to marshal response")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(res.StatusCode)
	w.Write(data)
}
