package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvFileAdapterProcessEnvironment(t *testing.T) {
	adapter := EnvFileAdapter{Environ: func() []string {
		return []string{"ROS_DISTRO=humble", "EMPTY=", "=broken", "NOEQUALS", "AMENT_PREFIX_PATH=/opt/ros/humble"}
	}}
	env, err := adapter.Load("")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"ROS_DISTRO":        "humble",
		"EMPTY":             "",
		"AMENT_PREFIX_PATH": "/opt/ros/humble",
	}, env)
}

func TestEnvFileAdapterOverlaysDotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("# build settings\nRMW_IMPLEMENTATION=rmw_fastrtps_cpp\nROS_DISTRO=jazzy\n"), 0644))
	adapter := EnvFileAdapter{Environ: func() []string { return []string{"ROS_DISTRO=humble", "HOME=/root"} }}

	env, err := adapter.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rmw_fastrtps_cpp", env["RMW_IMPLEMENTATION"])
	assert.Equal(t, "jazzy", env["ROS_DISTRO"])
	assert.Equal(t, "/root", env["HOME"])
}

func TestEnvFileAdapterMissingDotenv(t *testing.T) {
	_, err := NewEnvFileAdapter().Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read env file")
}
