package injector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/physics2d/internal/config"
	"github.com/zeusync/physics2d/internal/core/observability/log"
	"github.com/zeusync/physics2d/internal/server"
)

func TestInitializeRuntime_GeneratedScene(t *testing.T) {
	rt, err := InitializeRuntime(Options{Bodies: 5, Seed: 1, LogLevel: log.LevelError})
	require.NoError(t, err)

	assert.Same(t, rt.World, rt.Scene.World())
	assert.Equal(t, 8, rt.World.Stats().Bodies)
	assert.Equal(t, []string{"physics"}, rt.Systems.ExecutionOrder())

	require.NoError(t, rt.Systems.InitializeAll(context.Background()))
	require.NoError(t, rt.Systems.FixedUpdate(1.0/60))
	assert.Equal(t, uint64(1), rt.World.Steps())
	require.NoError(t, rt.Systems.ShutdownAll(context.Background()))
}

func TestInitializeRuntime_SceneFile(t *testing.T) {
	rt, err := InitializeRuntime(Options{ScenePath: "../config/testdata/drop.yaml", LogLevel: log.LevelError})
	require.NoError(t, err)
	assert.Equal(t, "drop", rt.Scene.Name())
	assert.Equal(t, 0.02, rt.System.Config().FixedDeltaTime)

	_, err = InitializeRuntime(Options{ScenePath: "../config/testdata/bad_parent.yaml"})
	assert.ErrorIs(t, err, config.ErrUnknownParent)
}

func TestInitializeServer(t *testing.T) {
	rt, err := InitializeServer(Options{Bodies: 2, LogLevel: log.LevelError, Server: server.DefaultConfig()})
	require.NoError(t, err)
	require.NotNil(t, rt.Server)

	require.NoError(t, rt.Runtime.System.Initialize(context.Background()))
	require.NoError(t, rt.Server.Publish())
	_, err = rt.Server.Hub().Latest()
	assert.NoError(t, err)
}
