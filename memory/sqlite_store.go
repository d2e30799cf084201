package memory

import (
	"context"
	"fmt"
	"time"

	sqlite_vec "github.com/asg017/sqlite-vec-go-bindings/cgo"
	"github.com/google/uuid"
	"github.com/tymeless/legacychat/errors"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// SqliteStore implements Store using SQLite with the sqlite-vec extension.
type SqliteStore struct {
	db     *gorm.DB
	vecDim int
}

type SqliteMemoryRecord struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time

	PersonaID string `gorm:"index"`
	Content   string
	Metadata  datatypes.JSONType[map[string]any]
}

func (SqliteMemoryRecord) TableName() string {
	return "memories"
}

var (
	_ Store = (*SqliteStore)(nil)
)

// NewSqliteStore creates a new SQLite-backed memory store.
func NewSqliteStore(dbPath string, dimension int) (*SqliteStore, error) {
	sqlite_vec.Auto()

	db, err := gorm.Open(
		sqlite.Open(fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on", dbPath)),
		&gorm.Config{},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database")
	}

	store := &SqliteStore{
		db:     db,
		vecDim: dimension,
	}

	if err := db.AutoMigrate(&SqliteMemoryRecord{}); err != nil {
		return nil, errors.Wrapf(err, "failed to migrate memories table")
	}

	if err := store.createVectorTable(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SqliteStore) createVectorTable() error {
	// Verify sqlite-vec is loaded before creating the virtual table.
	var sqliteVersion, vecVersion string
	err := s.db.Raw("SELECT sqlite_version(), vec_version()").Row().Scan(&sqliteVersion, &vecVersion)
	if err != nil {
		return errors.Wrapf(err, "sqlite-vec extension not properly loaded")
	}

	createTableSQL := fmt.Sprintf(`
		CREATE VIRTUAL TABLE IF NOT EXISTS memory_vectors USING vec0(
			memory_id TEXT PRIMARY KEY,
			embedding float[%d]
		);
	`, s.vecDim)

	if err := s.db.Exec(createTableSQL).Error; err != nil {
		return errors.Wrapf(err, "failed to create memory_vectors table")
	}

	return nil
}

func (s *SqliteStore) Store(ctx context.Context, memory *Memory) error {
	if memory.PersonaID == "" {
		return errors.New("memory persona id is empty")
	}
	if memory.ID == "" {
		memory.ID = uuid.NewString()
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		record := SqliteMemoryRecord{
			ID:        memory.ID,
			PersonaID: memory.PersonaID,
			Content:   memory.Content,
			Metadata:  datatypes.NewJSONType(memory.Metadata.Map()),
		}

		if err := tx.Save(&record).Error; err != nil {
			return errors.Wrapf(err, "failed to save memory record")
		}

		if len(memory.Embedding) > 0 {
			// Delete existing vector (if updating).
			if err := tx.Exec("DELETE FROM memory_vectors WHERE memory_id = ?", memory.ID).Error; err != nil {
				return errors.Wrapf(err, "failed to delete existing vector")
			}

			serialized, err := sqlite_vec.SerializeFloat32(memory.Embedding)
			if err != nil {
				return errors.Wrapf(err, "failed to serialize embedding")
			}

			insertSQL := "INSERT INTO memory_vectors (memory_id, embedding) VALUES (?, ?)"
			if err := tx.Exec(insertSQL, memory.ID, serialized).Error; err != nil {
				return errors.Wrapf(err, "failed to insert memory vector")
			}
		}

		return nil
	})
}

func (s *SqliteStore) Search(ctx context.Context, personaID string, queryEmbedding []float32, limit int) ([]SearchResult, error) {
	if len(queryEmbedding) == 0 {
		return []SearchResult{}, nil
	}

	var allowedIds []string
	if err := s.db.WithContext(ctx).
		Model(&SqliteMemoryRecord{}).
		Where("persona_id = ?", personaID).
		Pluck("id", &allowedIds).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to get memory IDs for persona")
	}
	if len(allowedIds) == 0 {
		return []SearchResult{}, nil
	}

	serializedQuery, err := sqlite_vec.SerializeFloat32(queryEmbedding)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to serialize query embedding")
	}

	searchSQL := `
		SELECT memory_id, distance
		FROM memory_vectors
		WHERE embedding MATCH ? AND memory_id IN ?
		ORDER BY distance
		LIMIT ?
	`

	rows, err := s.db.WithContext(ctx).Raw(searchSQL, serializedQuery, allowedIds, limit*2).Rows()
	if err != nil {
		return nil, errors.Wrapf(errors.ErrSearch, "failed to execute search query: %v", err)
	}
	defer rows.Close()

	distanceMap := make(map[string]float32)
	var ids []string
	for rows.Next() {
		var id string
		var distance float32
		if err := rows.Scan(&id, &distance); err != nil {
			return nil, errors.Wrapf(err, "failed to scan result row")
		}
		ids = append(ids, id)
		distanceMap[id] = distance
	}

	if len(ids) == 0 {
		return []SearchResult{}, nil
	}

	var records []SqliteMemoryRecord
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&records).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to fetch memory records")
	}

	byID := make(map[string]*SqliteMemoryRecord, len(records))
	for i := range records {
		byID[records[i].ID] = &records[i]
	}

	// Rebuild in distance order; the Find above does not preserve it.
	var results []SearchResult
	for _, id := range ids {
		record, ok := byID[id]
		if !ok {
			continue
		}
		metadata, err := MetadataFromMap(record.Metadata.Data())
		if err != nil {
			return nil, err
		}
		results = append(results, SearchResult{
			Memory: &Memory{
				ID:        record.ID,
				PersonaID: record.PersonaID,
				Content:   record.Content,
				Metadata:  metadata,
			},
			Score: 1.0 - distanceMap[id], // Convert distance to similarity score
		})
	}

	if len(results) > limit {
		results = results[:limit]
	}

	return results, nil
}

func (s *SqliteStore) List(ctx context.Context, personaID string) ([]*Memory, error) {
	var records []SqliteMemoryRecord
	if err := s.db.WithContext(ctx).Where("persona_id = ?", personaID).Find(&records).Error; err != nil {
		return nil, errors.Wrapf(err, "failed to list memory records")
	}

	memories := make([]*Memory, 0, len(records))
	for _, record := range records {
		metadata, err := MetadataFromMap(record.Metadata.Data())
		if err != nil {
			return nil, err
		}
		memories = append(memories, &Memory{
			ID:        record.ID,
			PersonaID: record.PersonaID,
			Content:   record.Content,
			Metadata:  metadata,
		})
	}
	return memories, nil
}

func (s *SqliteStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM memory_vectors WHERE memory_id = ?", id).Error; err != nil {
			return errors.Wrapf(err, "failed to delete vector")
		}
		if err := tx.Delete(&SqliteMemoryRecord{}, "id = ?", id).Error; err != nil {
			return errors.Wrapf(err, "failed to delete memory record")
		}
		return nil
	})
}

func (s *SqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
