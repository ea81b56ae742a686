package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli"

	"github.com/bytearena/lineofsight/common/edgeindex"
	"github.com/bytearena/lineofsight/common/perception"
	"github.com/bytearena/lineofsight/common/scenefile"
	"github.com/bytearena/lineofsight/common/utils"
	"github.com/bytearena/lineofsight/common/visibility2d"
)

type sweepOutput struct {
	Source  string                `json:"source"`
	Polygon *visibility2d.Polygon `json:"polygon"`
	Dropped []string              `json:"dropped,omitempty"`
}

func main() {
	app := makeapp()
	err := app.Run(os.Args)
	utils.Check(err, "visibility-sweep failed")
}

func makeapp() *cli.App {
	app := cli.NewApp()
	app.Name = "visibility-sweep"
	app.Description = "Computes visibility polygons of the sources of a scene file"

	app.Commands = []cli.Command{
		{
			Name:    "sweep",
			Aliases: []string{"s"},
			Usage:   "Print the polygons of the scene sources as JSON",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "scene", Value: "", Usage: "Scene file (json or yaml); required"},
				cli.StringFlag{Name: "source", Value: "all", Usage: "Id of the source to sweep, or all"},
				cli.BoolFlag{Name: "debug", Usage: "Dump the sweep history on stderr"},
				cli.DurationFlag{Name: "timeout", Value: 30 * time.Second, Usage: "Maximum duration of the sweeps"},
			},
			Action: func(c *cli.Context) error {
				return sweepAction(c.App.Writer, c.String("scene"), c.String("source"), c.Bool("debug"), c.Duration("timeout"))
			},
		},
		{
			Name:    "generate",
			Aliases: []string{"g"},
			Usage:   "Write a random scene file",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "out", Value: "scene.yml", Usage: "Destination file (json or yaml)"},
				cli.Float64Flag{Name: "size", Value: 50, Usage: "Half size of the room"},
				cli.IntFlag{Name: "pillars", Value: 10, Usage: "Number of pillars"},
				cli.IntFlag{Name: "sources", Value: 3, Usage: "Number of sources"},
				cli.Int64Flag{Name: "seed", Value: time.Now().UnixNano(), Usage: "Random seed"},
			},
			Action: func(c *cli.Context) error {
				description := scenefile.Generate(scenefile.GenerateOptions{
					HalfSize: c.Float64("size"),
					Pillars:  c.Int("pillars"),
					Sources:  c.Int("sources"),
					Seed:     c.Int64("seed"),
				})

				if err := scenefile.Save(c.String("out"), description); err != nil {
					return err
				}

				fmt.Fprintln(c.App.Writer, c.String("out"), "has been created")
				return nil
			},
		},
	}

	return app
}

func sweepAction(out io.Writer, scenePath string, sourceID string, debug bool, timeout time.Duration) error {
	if scenePath == "" {
		return cli.NewExitError("Please, specify a scene file using --scene", 1)
	}

	scene, err := scenefile.Load(scenePath)
	if err != nil {
		return err
	}

	for _, invalid := range scene.Invalid {
		utils.Warn(invalid, "Skipping wall")
	}

	index, err := edgeindex.New(scene.Edges...)
	if err != nil {
		return err
	}

	sources := scene.Sources
	if sourceID != "all" {
		source, found := scene.Source(sourceID)
		if !found {
			return cli.NewExitError("Unknown source "+sourceID, 1)
		}

		sources = []perception.Source{source}
	}

	for i := range sources {
		sources[i].Debug = sources[i].Debug || debug
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	polygons, err := perception.ComputeAll(ctx, index, sources)
	if err != nil {
		return err
	}

	if debug {
		spew.Config.Indent = "    "
		spew.Config.DisableMethods = true
		spew.Fdump(os.Stderr, polygons)
	}

	res := make([]sweepOutput, len(polygons))
	for i, polygon := range polygons {
		res[i] = sweepOutput{
			Source:  sources[i].ID,
			Polygon: polygon,
			Dropped: polygon.DroppedMessages(),
		}
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintln(out, string(data))
	return nil
}
