package scenefile_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bytearena/lineofsight/common/scenefile"
)

func TestGenerate(t *testing.T) {
	options := scenefile.GenerateOptions{HalfSize: 40, Pillars: 5, Sources: 3, Seed: 42}
	description := scenefile.Generate(options)

	assert.Len(t, description.Walls, 4+4*5)
	assert.Len(t, description.Sources, 3)

	scene, err := description.Build()
	require.NoError(t, err)
	assert.Len(t, scene.Edges, 24)
	assert.Len(t, scene.Invalid, 0)

	for _, source := range scene.Sources {
		assert.True(t, scene.Bounds.Contains(source.Origin))
	}

	// same seed, same geometry
	again := scenefile.Generate(options)
	for i := range description.Walls {
		assert.Equal(t, description.Walls[i].A, again.Walls[i].A)
		assert.Equal(t, description.Walls[i].B, again.Walls[i].B)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "scenefile")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	description := scenefile.Generate(scenefile.GenerateOptions{Pillars: 2, Sources: 2, Seed: 7})

	for _, name := range []string{"scene.json", "scene.yml"} {
		path := filepath.Join(dir, name)
		require.NoError(t, scenefile.Save(path, description))

		scene, err := scenefile.Load(path)
		require.NoError(t, err, name)

		assert.Len(t, scene.Edges, len(description.Walls), name)
		assert.Len(t, scene.Sources, len(description.Sources), name)
		assert.Equal(t, *description.Bounds, *scene.Bounds, name)
	}
}
