package main

import (
	"github.com/pkg/errors"

	"github.com/bytearena/lineofsight/common/healthcheck"
	"github.com/bytearena/lineofsight/vizserver/types"
)

func NewHealthCheck(scene *types.VizScene) *healthcheck.HealthCheckServer {
	healthCheckServer := healthcheck.NewHealthCheckServer()

	healthCheckServer.Register("edgeindex", func() error {
		if scene.Index().Len() == 0 {
			return errors.New("No wall indexed")
		}

		return nil
	})

	healthCheckServer.Register("sweep", func() error {
		for _, source := range scene.Sources() {
			if _, err := scene.Index().Candidates(source.Config().SweepBounds()); err != nil {
				return err
			}
		}

		return nil
	})

	return healthCheckServer
}
