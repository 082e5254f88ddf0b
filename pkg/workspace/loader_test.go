package workspace_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/swxiao/jenkins/pkg/model"
	"github.com/swxiao/jenkins/pkg/workspace"
)

const workspaceYAML = `
jobs:
  - name: build-web
  - name: build-api
    display_name: API build
  - name: archived
    disabled: true
folders:
  - name: team-a
    display_name: Team A
    jobs:
      - name: deploy
    folders:
      - name: nightly
        jobs:
          - name: soak
views:
  - name: frontend
    jobs: [build-web]
primary_view: frontend
`

func TestParseBuildsFullGraph(t *testing.T) {
	ws, err := workspace.Parse([]byte(workspaceYAML))
	require.NoError(t, err)

	target, ok := ws.SearchIndex().Find("build-api")
	require.True(t, ok)
	assert.Equal(t, "job/build-api/", target.SearchURL())
	assert.Equal(t, "API build", target.DisplayName())

	target, ok = ws.SearchIndex().Find("soak")
	require.True(t, ok)
	assert.Equal(t, "job/team-a/job/nightly/job/soak/", target.SearchURL())

	target, ok = ws.SearchIndex().Find("frontend")
	require.True(t, ok)
	assert.Equal(t, "view/frontend/", target.SearchURL())

	require.NotNil(t, ws.PrimaryView())
	assert.Equal(t, "frontend", ws.PrimaryView().SearchName())
}

func TestParseKeepsDisabledJobsSearchable(t *testing.T) {
	ws, err := workspace.Parse([]byte(workspaceYAML))
	require.NoError(t, err)

	target, ok := ws.SearchIndex().Find("archived")
	require.True(t, ok)
	assert.Equal(t, "job/archived/", target.SearchURL())
}

func TestParseRejectsBrokenDefinitions(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"not yaml", "jobs: ["},
		{"nameless job", "jobs:\n  - display_name: orphan"},
		{"nameless folder", "folders:\n  - jobs:\n      - name: x"},
		{"nameless view", "views:\n  - jobs: []"},
		{"view over unknown job", "views:\n  - name: v\n    jobs: [missing]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := workspace.Parse([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(workspaceYAML), 0o644))

	ws, err := workspace.Load(path)
	require.NoError(t, err)
	_, ok := ws.SearchIndex().Find("build-web")
	assert.True(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := workspace.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestHolderSwapNotifiesAndServesNewSnapshot(t *testing.T) {
	first := model.NewWorkspace()
	first.CreateJob("old-job")
	h := workspace.NewHolder(first)

	var swapped *model.Workspace
	h.OnSwap(func(ws *model.Workspace) { swapped = ws })

	_, ok := h.SearchIndex().Find("old-job")
	require.True(t, ok)

	second := model.NewWorkspace()
	second.CreateJob("new-job")
	h.Swap(second)

	assert.Same(t, second, swapped)
	assert.Same(t, second, h.Get())

	_, ok = h.SearchIndex().Find("old-job")
	assert.False(t, ok)
	_, ok = h.SearchIndex().Find("new-job")
	assert.True(t, ok)
}
