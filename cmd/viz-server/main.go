package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/bytearena/lineofsight/common/influxdb"
	"github.com/bytearena/lineofsight/common/scenefile"
	"github.com/bytearena/lineofsight/common/utils"
	"github.com/bytearena/lineofsight/vizserver"
	"github.com/bytearena/lineofsight/vizserver/types"
)

func main() {
	port := flag.Int("port", 8081, "Port of the viz server")
	scenePath := flag.String("scene", "", "Scene file (json or yaml)")

	flag.Parse()

	serverAddr := ":" + strconv.Itoa(*port)
	if addr := os.Getenv("VIZ_ADDR"); addr != "" && !isFlagPassed("port") {
		serverAddr = addr
	}

	scene := &scenefile.Scene{}
	if *scenePath != "" {
		var err error
		scene, err = scenefile.Load(*scenePath)
		utils.Check(err, "ERROR: could not load scene")

		for _, invalid := range scene.Invalid {
			utils.Warn(invalid, "Skipping wall")
		}
	}

	log.Println("Line of sight Viz Server; " + strconv.Itoa(len(scene.Edges)) + " walls, " + strconv.Itoa(len(scene.Sources)) + " sources")

	influxdbClient, err := influxdb.NewClient("viz-server")
	utils.Check(err, "ERROR: could not connect to influxdb")

	metrics := influxdb.NewSweepMetrics()
	metrics.Report(influxdbClient)

	vizscene, err := types.NewVizScene(scene, metrics)
	utils.Check(err, "ERROR: could not build scene")

	vizservice := vizserver.NewVizService(serverAddr, vizscene, NewHealthCheck(vizscene))

	go func() {
		err := vizservice.ListenAndServe()
		utils.Check(err, "Failed to listen on "+serverAddr)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	<-signals
	utils.Debug("sighandler", "RECEIVED SHUTDOWN SIGNAL; closing.")
	influxdbClient.TearDown()
}

func isFlagPassed(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})

	return found
}
