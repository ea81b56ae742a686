package main

import (
	"bytes"
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"

	"github.com/bytearena/lineofsight/common/visibility2d"
)

const scene = `
walls:
  - {id: top, a: {x: -10, y: -10}, b: {x: 10, y: -10}}
  - {id: right, a: {x: 10, y: -10}, b: {x: 10, y: 10}}
  - {id: bottom, a: {x: 10, y: 10}, b: {x: -10, y: 10}}
  - {id: left, a: {x: -10, y: 10}, b: {x: -10, y: -10}}
  - {id: dot, a: {x: 3, y: 3}, b: {x: 3, y: 3}}
sources:
  - {id: eye, origin: {x: 0, y: 0}}
  - {id: lamp, origin: {x: 5, y: 5}, sense: light, radius: 2}
`

type decodedOutput struct {
	Source  string `json:"source"`
	Polygon struct {
		Points []visibility2d.Point `json:"points"`
	} `json:"polygon"`
}

func TestSweepCommand(t *testing.T) {
	dir, err := ioutil.TempDir("", "visibility-sweep")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "scene.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte(scene), 0644))

	// exit errors must not stop the test binary
	exiter := cli.OsExiter
	cli.OsExiter = func(int) {}
	defer func() { cli.OsExiter = exiter }()

	errWriter := cli.ErrWriter
	cli.ErrWriter = ioutil.Discard
	defer func() { cli.ErrWriter = errWriter }()

	type testCase struct {
		Name    string
		Args    []string
		Sources []string
		Fails   bool
	}

	examples := []testCase{
		{
			Name:    "Should sweep every source",
			Args:    []string{"sweep", "--scene", path},
			Sources: []string{"eye", "lamp"},
		},
		{
			Name:    "Should sweep a single source",
			Args:    []string{"sweep", "--scene", path, "--source", "lamp"},
			Sources: []string{"lamp"},
		},
		{
			Name:  "Should fail without scene",
			Args:  []string{"sweep"},
			Fails: true,
		},
		{
			Name:  "Should fail on unknown source",
			Args:  []string{"sweep", "--scene", path, "--source", "nobody"},
			Fails: true,
		},
		{
			Name:  "Should fail on missing scene file",
			Args:  []string{"sweep", "--scene", filepath.Join(dir, "missing.json")},
			Fails: true,
		},
	}

	for _, example := range examples {
		t.Run(example.Name, func(t *testing.T) {
			out := &bytes.Buffer{}
			app := makeapp()
			app.Writer = out

			err := app.Run(append([]string{"visibility-sweep"}, example.Args...))
			if example.Fails {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)

			var res []decodedOutput
			require.NoError(t, json.Unmarshal(out.Bytes(), &res))
			require.Len(t, res, len(example.Sources))

			for i, id := range example.Sources {
				assert.Equal(t, id, res[i].Source)
				assert.True(t, len(res[i].Polygon.Points) >= 3)
			}
		})
	}
}

func TestSweepCommandOutput(t *testing.T) {
	dir, err := ioutil.TempDir("", "visibility-sweep")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "scene.yml")
	require.NoError(t, ioutil.WriteFile(path, []byte(scene), 0644))

	out := &bytes.Buffer{}
	require.NoError(t, sweepAction(out, path, "eye", false, time.Second))

	var res []decodedOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Len(t, res, 1)

	assert.Equal(t, []visibility2d.Point{
		visibility2d.MakePoint(-10, -10),
		visibility2d.MakePoint(10, -10),
		visibility2d.MakePoint(10, 10),
		visibility2d.MakePoint(-10, 10),
	}, res[0].Polygon.Points)
}

func TestGenerateCommand(t *testing.T) {
	dir, err := ioutil.TempDir("", "visibility-sweep")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "generated.json")

	out := &bytes.Buffer{}
	app := makeapp()
	app.Writer = out

	require.NoError(t, app.Run([]string{"visibility-sweep", "generate", "--out", path, "--pillars", "2", "--sources", "2", "--seed", "42"}))
	assert.Contains(t, out.String(), "has been created")

	out.Reset()
	require.NoError(t, app.Run([]string{"visibility-sweep", "sweep", "--scene", path}))

	var res []decodedOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Len(t, res, 2)
}
