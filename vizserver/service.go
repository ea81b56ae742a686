package vizserver

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/bytearena/lineofsight/common/healthcheck"
	apphandler "github.com/bytearena/lineofsight/vizserver/handler"
	"github.com/bytearena/lineofsight/vizserver/types"
)

type VizService struct {
	addr   string
	scene  *types.VizScene
	health *healthcheck.HealthCheckServer
}

func NewVizService(addr string, scene *types.VizScene, health *healthcheck.HealthCheckServer) *VizService {
	if health == nil {
		health = healthcheck.NewHealthCheckServer()
	}

	return &VizService{
		addr:   addr,
		scene:  scene,
		health: health,
	}
}

func (viz *VizService) Router() *mux.Router {
	logger := os.Stdout
	router := mux.NewRouter()

	router.Handle("/", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Home(viz.scene)),
	)).Methods("GET")

	router.Handle("/health", viz.health).Methods("GET")

	router.Handle("/sweep", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Sweep(viz.scene)),
	)).Methods("POST")

	router.Handle("/walls", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Walls(viz.scene)),
	)).Methods("GET")

	router.Handle("/walls/{id:[a-zA-Z0-9\\-_:]+}", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.PutWall(viz.scene)),
	)).Methods("PUT")

	router.Handle("/walls/{id:[a-zA-Z0-9\\-_:]+}", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.DeleteWall(viz.scene)),
	)).Methods("DELETE")

	router.Handle("/ws", handlers.CombinedLoggingHandler(logger,
		http.HandlerFunc(apphandler.Websocket(viz.scene)),
	)).Methods("GET")

	return router
}

func (viz *VizService) ListenAndServe() error {
	log.Println("VIZ Listening on " + viz.addr)

	return http.ListenAndServe(viz.addr, viz.Router())
}
