package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"

	"task-tracker/internal/registry"

	"github.com/stretchr/testify/require"
)

func homeRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	reg := registry.New(registry.Options{Strict: true})
	require.NoError(t, reg.CreateProject("Home", "chores"))
	require.NoError(t, reg.CreateProject("Work", "office"))
	_, err := reg.CreateTask(registry.TaskInput{
		Priority:  5,
		Name:      "Clean the car",
		Assignees: []string{"User1", "User2"},
		Project:   "Home",
		Deadline:  "2023-10-31",
	})
	require.NoError(t, err)
	return reg
}

func TestBuild_GroupsFullRecords(t *testing.T) {
	projects := Build(homeRegistry(t))
	require.Len(t, projects, 2)
	require.Equal(t, "Home", projects[0].Name)
	require.Len(t, projects[0].Tasks, 1)
	require.Equal(t, []string{"User1", "User2"}, projects[0].Tasks[0].Assignees)
	require.Empty(t, projects[1].Tasks)
}

func TestExport_JSON(t *testing.T) {
	out, err := Export(homeRegistry(t), "json")
	require.NoError(t, err)

	var decoded []ProjectReport
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Equal(t, "Clean the car", decoded[0].Tasks[0].Name)
	require.Equal(t, 1, decoded[0].Tasks[0].ID)
}

func TestExport_CSV(t *testing.T) {
	out, err := Export(homeRegistry(t), "CSV")
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"Home", "1", "5", "Clean the car", "", "User1;User2", "2023-10-31"}, rows[1])
}

func TestExport_PDF(t *testing.T) {
	out, err := Export(homeRegistry(t), "pdf")
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := Export(homeRegistry(t), "xml")
	require.ErrorContains(t, err, "unknown format")
}
