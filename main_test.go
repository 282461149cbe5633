package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mineview/integration/setup"
)

// execute runs the root command with a settings file that keeps the debug
// log inside the test's temp directory.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "mineview.yaml")
	settings := "log:\n  file: " + filepath.Join(dir, "debug.log") + "\n  level: debug\n"
	require.NoError(t, os.WriteFile(cfgPath, []byte(settings), 0644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestStatsCommand(t *testing.T) {
	path := setup.WriteMine(t, setup.TwoLevelMine)

	out, err := execute(t, "stats", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Nodes")
	assert.Contains(t, out, "Horizon_H200")
	assert.Contains(t, out, "Горизонт -200")
	assert.Contains(t, out, "isolated-node LONE")
	assert.Contains(t, out, "dangling-section BAD")
}

func TestRouteCommand(t *testing.T) {
	path := setup.WriteMine(t, setup.TwoLevelMine)

	out, err := execute(t, "route", path, "T1", "B1")
	require.NoError(t, err)
	assert.Contains(t, out, "T1 -> T0 -> B0 -> B1")
	assert.Contains(t, out, "sections: D1, SH, D2")
	assert.Contains(t, out, "length: 170.00")

	_, err = execute(t, "route", path, "T1", "NOPE")
	assert.Error(t, err)
}

func TestExportCommandWritesMaterials(t *testing.T) {
	path := setup.WriteMine(t, setup.TwoLevelMine)
	objPath := filepath.Join(t.TempDir(), "scene.obj")

	exportFmt, exportOut = "json", ""
	t.Cleanup(func() { exportFmt, exportOut = "json", "" })

	_, err := execute(t, "export", path, "--format", "obj", "--out", objPath)
	require.NoError(t, err)

	obj, err := os.ReadFile(objPath)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(obj), "mtllib scene.mtl"))

	mtl, err := os.ReadFile(filepath.Join(filepath.Dir(objPath), "scene.mtl"))
	require.NoError(t, err)
	assert.Contains(t, string(mtl), "newmtl tunnel_")
}

func TestExportCommandRejectsFormat(t *testing.T) {
	path := setup.WriteMine(t, setup.TwoLevelMine)
	t.Cleanup(func() { exportFmt, exportOut = "json", "" })

	_, err := execute(t, "export", path, "--format", "stl")
	assert.ErrorContains(t, err, `unsupported export format "stl"`)
}

func TestPlanCommandDOT(t *testing.T) {
	path := setup.WriteMine(t, setup.TwoLevelMine)
	t.Cleanup(func() { planFmt, planOut = "", "" })

	out, err := execute(t, "plan", path, "--format", "dot")
	require.NoError(t, err)
	assert.Contains(t, out, "graph")
	assert.Contains(t, out, "T0")
}

func TestMissingFileFails(t *testing.T) {
	_, err := execute(t, "stats", filepath.Join(t.TempDir(), "absent.xml"))
	assert.Error(t, err)
}
