package registry

import (
	"errors"
	"testing"

	"task-tracker/internal/models"

	"github.com/stretchr/testify/require"
)

func TestProjectStore_CreateConflictKeepsDescription(t *testing.T) {
	s := NewProjectStore()
	require.NoError(t, s.Create("P", "d"))

	err := s.Create("P", "d2")
	require.ErrorIs(t, err, ErrConflict)
	p, ok := s.Get("P")
	require.True(t, ok)
	require.Equal(t, "d", p.Description)
}

func TestProjectStore_EditDeleteMissing(t *testing.T) {
	s := NewProjectStore()
	require.ErrorIs(t, s.Edit("nope", "x"), ErrNotFound)
	require.ErrorIs(t, s.Delete("nope"), ErrNotFound)
}

func TestProjectStore_ListInsertionOrder(t *testing.T) {
	s := NewProjectStore()
	for _, name := range []string{"b", "a", "c"} {
		require.NoError(t, s.Create(name, name+"-desc"))
	}
	require.NoError(t, s.Delete("a"))
	require.NoError(t, s.Edit("c", "changed"))

	list := s.List()
	require.Len(t, list, 2)
	require.Equal(t, "b", list[0].Name)
	require.Equal(t, "c", list[1].Name)
	require.Equal(t, "changed", list[1].Description)
	require.False(t, s.Exists("a"))
	require.Equal(t, 2, s.Len())
}

func TestTaskStore_IDsNeverReused(t *testing.T) {
	s := NewTaskStore()
	a := s.Create(models.Task{Name: "a"})
	b := s.Create(models.Task{Name: "b"})
	require.NoError(t, s.Delete(b))
	c := s.Create(models.Task{Name: "c"})

	require.Equal(t, 1, a)
	require.Equal(t, 2, b)
	require.Equal(t, 3, c)
	require.Equal(t, 3, s.LastID())
	require.Equal(t, 2, s.Len())
}

func TestTaskStore_ReplaceDeleteMissing(t *testing.T) {
	s := NewTaskStore()
	require.ErrorIs(t, s.Replace(9, models.Task{}), ErrNotFound)
	require.ErrorIs(t, s.Delete(9), ErrNotFound)
	_, ok := s.Get(9)
	require.False(t, ok)
}

func TestTaskStore_ReturnsCopies(t *testing.T) {
	s := NewTaskStore()
	assignees := []string{"User1"}
	id := s.Create(models.Task{Name: "a", Assignees: assignees})
	assignees[0] = "mutated"

	got, ok := s.Get(id)
	require.True(t, ok)
	require.Equal(t, []string{"User1"}, got.Assignees)

	got.Assignees[0] = "mutated again"
	all := s.All()
	require.Equal(t, []string{"User1"}, all[id].Assignees)
}

func TestNotFoundError_Message(t *testing.T) {
	err := taskNotFound(4)
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	require.Equal(t, "task", nf.Kind)
	require.Equal(t, `task "4" not found`, err.Error())
}
