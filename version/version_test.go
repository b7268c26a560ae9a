package version

import (
	"encoding/json"
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFillFromBuildInfo(t *testing.T) {
	info := Info{Version: "0.0.0", Branch: unknown, Revision: unknown, BuiltAt: unknown}
	fillFromBuildInfo(&info, &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2024-05-01T10:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	})

	assert.Equal(t, "v1.4.0", info.Version)
	assert.Equal(t, "0123456", info.Revision)
	assert.Equal(t, "2024-05-01T10:00:00Z", info.BuiltAt)
	assert.True(t, info.Modified)
}

func TestFillKeepsLinkerValues(t *testing.T) {
	info := Info{Version: "1.2.3", Revision: "abc", BuiltAt: "yesterday"}
	fillFromBuildInfo(&info, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "ffffffffff"}},
	})

	assert.Equal(t, "1.2.3", info.Version)
	assert.Equal(t, "abc", info.Revision)
	assert.Equal(t, "yesterday", info.BuiltAt)
}

func TestInfoJSON(t *testing.T) {
	info := GetVersionInfo()
	assert.Equal(t, runtime.Version(), info.GoVersion)

	out, err := info.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Contains(t, decoded, "version")
	assert.Contains(t, decoded, "goVersion")
}
