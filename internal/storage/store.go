package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"task-tracker/internal/events"
	"task-tracker/internal/models"
	"task-tracker/internal/registry"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// lastTaskID is the counter row holding the last issued task id.
const lastTaskID = "last_task_id"

// Store saves and loads registry snapshots to a SQLite database.
type Store struct {
	// mu orders writes so an older snapshot never lands after a newer one.
	mu sync.Mutex
	db *gorm.DB
}

// Open opens (creating if needed) the SQLite file at path and migrates the schema.
// glebarez/sqlite is a pure Go driver, so no CGO is required.
func Open(path, logLevel string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("storage path is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(LogLevel(logLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("open storage db: %w", err)
	}
	store, err := New(db)
	if err != nil {
		return nil, err
	}
	log.Printf("storage ready at %s", path)
	return store, nil
}

// New wraps an open gorm connection and runs migrations.
func New(db *gorm.DB) (*Store, error) {
	if err := Migrate(db); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Migrate creates or updates the tables for projects, tasks and counters.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Project{}, &models.Task{}, &models.Counter{}); err != nil {
		return fmt.Errorf("migrate storage db: %w", err)
	}
	return nil
}

// LogLevel maps a config level name to the gorm logger level. Unknown names are silent.
func LogLevel(name string) logger.LogLevel {
	switch strings.ToLower(name) {
	case "error":
		return logger.Error
	case "warn":
		return logger.Warn
	case "info":
		return logger.Info
	default:
		return logger.Silent
	}
}

// Close releases the underlying connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Load reads the stored snapshot. An empty database yields an empty snapshot.
func (s *Store) Load(ctx context.Context) (registry.Snapshot, error) {
	db := s.db.WithContext(ctx)

	var snap registry.Snapshot
	if err := db.Order("seq asc").Find(&snap.Projects).Error; err != nil {
		return registry.Snapshot{}, fmt.Errorf("load projects: %w", err)
	}
	if err := db.Order("id asc").Find(&snap.Tasks).Error; err != nil {
		return registry.Snapshot{}, fmt.Errorf("load tasks: %w", err)
	}

	var counter models.Counter
	err := db.Where("name = ?", lastTaskID).First(&counter).Error
	switch {
	case err == nil:
		snap.LastID = counter.Value
	case errors.Is(err, gorm.ErrRecordNotFound):
		// older files without a counter; Restore resumes above the highest id
	default:
		return registry.Snapshot{}, fmt.Errorf("load counter: %w", err)
	}
	return snap, nil
}

// Save replaces the stored state with snap in one transaction.
func (s *Store) Save(ctx context.Context, snap registry.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, snap)
}

func (s *Store) save(ctx context.Context, snap registry.Snapshot) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Task{}).Error; err != nil {
			return fmt.Errorf("clear tasks: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Project{}).Error; err != nil {
			return fmt.Errorf("clear projects: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.Counter{}).Error; err != nil {
			return fmt.Errorf("clear counters: %w", err)
		}

		if len(snap.Projects) > 0 {
			projects := make([]models.Project, len(snap.Projects))
			for i, p := range snap.Projects {
				p.Seq = i
				projects[i] = p
			}
			if err := tx.Create(&projects).Error; err != nil {
				return fmt.Errorf("save projects: %w", err)
			}
		}
		if len(snap.Tasks) > 0 {
			tasks := make([]models.Task, len(snap.Tasks))
			copy(tasks, snap.Tasks)
			if err := tx.Create(&tasks).Error; err != nil {
				return fmt.Errorf("save tasks: %w", err)
			}
		}
		if err := tx.Create(&models.Counter{Name: lastTaskID, Value: snap.LastID}).Error; err != nil {
			return fmt.Errorf("save counter: %w", err)
		}
		return nil
	})
}

// Autosave writes the registry to the store after every completed operation published
// on hub. Partial events are skipped; the final event of the operation triggers the save.
// The snapshot is taken under the store lock, so concurrent saves land in order.
// The returned function stops it.
func (s *Store) Autosave(ctx context.Context, reg *registry.Registry, hub *events.Hub) (stop func()) {
	return hub.Subscribe(events.SubscriberFunc(func(evt events.Event) bool {
		if evt.Partial {
			return true
		}
		s.mu.Lock()
		defer s.mu.Unlock()
		if err := s.save(ctx, reg.Snapshot()); err != nil {
			log.Printf("autosave after %s failed: %v", evt.Type, err)
			return false
		}
		return true
	}))
}
