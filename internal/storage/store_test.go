package storage

import (
	"context"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"task-tracker/internal/events"
	"task-tracker/internal/models"
	"task-tracker/internal/registry"
	"task-tracker/internal/testutil"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, _ := newCountingStore(t)
	return store
}

// newCountingStore also reports how many snapshots have been written.
func newCountingStore(t *testing.T) (*Store, *atomic.Int32) {
	t.Helper()
	db, err := testutil.NewInMemoryDB()
	require.NoError(t, err)
	saves := &atomic.Int32{}
	err = db.Callback().Create().After("gorm:create").Register("test:count_saves", func(tx *gorm.DB) {
		if tx.Statement.Table == "counters" {
			saves.Add(1)
		}
	})
	require.NoError(t, err)
	store, err := New(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store, saves
}

func seeded(t *testing.T, hub *events.Hub) *registry.Registry {
	t.Helper()
	reg := registry.New(registry.Options{Strict: true, Hub: hub})
	require.NoError(t, reg.CreateProject("Project 2", "roof"))
	require.NoError(t, reg.CreateProject("Project 1", "house"))
	_, err := reg.CreateTask(registry.TaskInput{Priority: 5, Name: "Clean the car", Assignees: []string{"User1", "User2"}, Project: "Project 1", Deadline: "2023-10-31"})
	require.NoError(t, err)
	id, err := reg.CreateTask(registry.TaskInput{Priority: 3, Name: "Fix the roof", Assignees: []string{"User1"}, Project: "Project 2", Deadline: "2023-11-20"})
	require.NoError(t, err)
	require.NoError(t, reg.DeleteTask(id))
	return reg
}

func TestLoad_Empty(t *testing.T) {
	store := newTestStore(t)
	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Empty(t, snap.Projects)
	require.Empty(t, snap.Tasks)
	require.Zero(t, snap.LastID)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	reg := seeded(t, nil)

	require.NoError(t, store.Save(ctx, reg.Snapshot()))
	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, reg.Snapshot(), snap)

	restored := registry.New(registry.Options{Strict: true})
	require.NoError(t, restored.Restore(snap))
	require.Equal(t, reg.ViewTasks(), restored.ViewTasks())

	// the deleted id 2 is not handed out again after a reload
	id, err := restored.CreateTask(registry.TaskInput{Priority: 1, Name: "n", Project: "Project 1", Deadline: "2024-01-01"})
	require.NoError(t, err)
	require.Equal(t, 3, id)
}

func TestSave_ReplacesPreviousState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	reg := seeded(t, nil)
	require.NoError(t, store.Save(ctx, reg.Snapshot()))

	require.NoError(t, reg.DeleteProject("Project 1", true))
	require.NoError(t, store.Save(ctx, reg.Snapshot()))

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, []models.Project{{Name: "Project 2", Description: "roof", Seq: 0}}, snap.Projects)
	require.Empty(t, snap.Tasks)
	require.Equal(t, 2, snap.LastID)
}

func TestAutosave_PersistsEveryChange(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	hub := events.NewHub()
	reg := registry.New(registry.Options{Strict: true, Hub: hub})
	stop := store.Autosave(ctx, reg, hub)

	require.NoError(t, reg.CreateProject("Home", "chores"))
	_, err := reg.CreateTask(registry.TaskInput{Priority: 5, Name: "Clean the car", Project: "Home", Deadline: "2023-10-31"})
	require.NoError(t, err)

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Projects, 1)
	require.Len(t, snap.Tasks, 1)
	require.Zero(t, hub.Failures())

	stop()
	require.NoError(t, reg.EditProject("Home", "later"))
	snap, err = store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "chores", snap.Projects[0].Description)
}

func TestAutosave_CascadeDeleteSavesOnce(t *testing.T) {
	ctx := context.Background()
	store, saves := newCountingStore(t)
	hub := events.NewHub()
	reg := seeded(t, hub)
	_, err := reg.CreateTask(registry.TaskInput{Priority: 2, Name: "Wash the dishes", Project: "Project 1", Deadline: "2023-11-15"})
	require.NoError(t, err)
	store.Autosave(ctx, reg, hub)

	require.NoError(t, reg.DeleteProject("Project 1", true))
	require.EqualValues(t, 1, saves.Load())

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, snap.Projects, 1)
	require.Empty(t, snap.Tasks)
}

func TestAutosave_ConcurrentWritersKeepLatestState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	hub := events.NewHub()
	reg := registry.New(registry.Options{Strict: true, Hub: hub})
	require.NoError(t, reg.CreateProject("P", ""))
	store.Autosave(ctx, reg, hub)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if _, err := reg.CreateTask(registry.TaskInput{Priority: 1, Name: "t", Project: "P", Deadline: "2024-01-01"}); err != nil {
					t.Errorf("create: %v", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	snap, err := store.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, reg.Snapshot(), snap)
	require.Zero(t, hub.Failures())
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tracker.db")
	store, err := Open(path, "silent")
	require.NoError(t, err)
	reg := seeded(t, nil)
	require.NoError(t, store.Save(context.Background(), reg.Snapshot()))
	require.NoError(t, store.Close())

	reopened, err := Open(path, "silent")
	require.NoError(t, err)
	defer reopened.Close()
	snap, err := reopened.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Tasks, 1)

	_, err = Open(" ", "silent")
	require.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	require.Equal(t, logger.Info, LogLevel("INFO"))
	require.Equal(t, logger.Warn, LogLevel("warn"))
	require.Equal(t, logger.Error, LogLevel("error"))
	require.Equal(t, logger.Silent, LogLevel("whatever"))
}
