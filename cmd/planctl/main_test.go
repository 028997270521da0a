package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floorplan/internal/planner/models"
)

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg">
  <rect id="Wall_1" x="0" y="0" width="300" height="15"/>
  <rect id="Wall_2" x="1000" y="1000" width="200" height="15"/>
</svg>`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestImportAndGroups(t *testing.T) {
	svgPath := writeFile(t, "plan.svg", testSVG)
	planPath := filepath.Join(t.TempDir(), "plan.json")

	_, err := execute(t, "import", svgPath, "-o", planPath)
	require.NoError(t, err)

	data, err := os.ReadFile(planPath)
	require.NoError(t, err)
	var plan models.Plan
	require.NoError(t, json.Unmarshal(data, &plan))
	require.Len(t, plan.Walls, 2)

	out, err := execute(t, "groups", planPath)
	require.NoError(t, err)
	assert.Equal(t, "Wall_1\nWall_2\n", out)
}

func TestOutline(t *testing.T) {
	plan := models.Plan{Walls: []models.WallSegment{
		{ID: "A", End: models.Point{X: 1000}, ThicknessMM: 150},
		{ID: "B", Start: models.Point{X: 1000}, End: models.Point{X: 1000, Y: 1000}, ThicknessMM: 150},
	}}
	data, err := json.Marshal(plan)
	require.NoError(t, err)
	planPath := writeFile(t, "plan.json", string(data))

	out, err := execute(t, "outline", planPath, "--width", "300", "--height", "200", "--select", "A")
	require.NoError(t, err)
	assert.Contains(t, out, `width="300"`)
	assert.Equal(t, 1, strings.Count(out, "<polygon"))
}

func TestScene(t *testing.T) {
	planPath := writeFile(t, "plan.json", `{"id":"p","walls":[{"id":"w","start":{"x":0,"y":0},"end":{"x":2000,"y":0}}],"openings":[]}`)

	out, err := execute(t, "scene", planPath)
	require.NoError(t, err)

	var scene struct {
		Walls []struct {
			ID string `json:"id"`
		} `json:"walls"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &scene))
	require.Len(t, scene.Walls, 1)
	assert.Equal(t, "w", scene.Walls[0].ID)
}

func TestBadTolerancesFile(t *testing.T) {
	path := writeFile(t, "tol.toml", "connect_mm = -1\n")
	planPath := writeFile(t, "plan.json", `{"walls":[]}`)

	_, err := execute(t, "groups", planPath, "--tolerances", path)
	assert.Error(t, err)
}

func TestMissingArgs(t *testing.T) {
	_, err := execute(t, "scene")
	assert.Error(t, err)
}
