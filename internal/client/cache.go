package client

import (
	"time"

	"github.com/asdine/storm/v3"
	"github.com/gofrs/uuid"
	"github.com/mdouchement/paperflow/internal/model"
	"github.com/pkg/errors"
)

// A Cache mirrors the papers fetched from the portal into the local database
// so listings keep working offline and the console can query them.
type Cache struct {
	db *storm.DB
}

// NewCache returns a Cache backed by the given database.
func NewCache(db *storm.DB) *Cache {
	return &Cache{db: db}
}

// Save upserts the given papers.
func (c *Cache) Save(papers []model.Paper) error {
	t := time.Now().UTC()

	for i := range papers {
		paper := papers[i]
		if paper.ID == "" {
			paper.ID = uuid.Must(uuid.NewV4()).String()
		}
		paper.CachedAt = t

		if err := c.db.Save(&paper); err != nil {
			return errors.Wrap(err, "could not cache paper")
		}
	}

	return nil
}

// Papers returns all cached papers, most recently uploaded first.
func (c *Cache) Papers() ([]model.Paper, error) {
	var papers []model.Paper

	err := c.db.AllByIndex("UploadedAt", &papers, storm.Reverse())
	if err == storm.ErrNotFound {
		return nil, nil
	}
	return papers, errors.Wrap(err, "could not read cached papers")
}

// Purge drops every cached paper.
func (c *Cache) Purge() error {
	err := c.db.Drop(&model.Paper{})
	if err == storm.ErrNotFound {
		return nil
	}
	return errors.Wrap(err, "could not purge cached papers")
}
