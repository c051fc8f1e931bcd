// Package memory is an in-process implementation of the persistence layer,
// used for local development and tests.
package memory

import (
	"maps"
	"sync"

	"yearbook/internal/domain/entity"

	"github.com/google/uuid"
)

type (
	// DB holds every table in maps guarded by a single RWMutex.
	// Transactions are serialized by txMu and undone from a snapshot on failure.
	DB struct {
		mu   sync.RWMutex
		txMu sync.Mutex

		roster      map[uuid.UUID]*entity.User
		invitations map[string]entity.ScopeID
		pages       map[uuid.UUID]*entity.PageEntry
		designs     map[entity.ScopeID][]byte
		admins      map[string]*entity.AdminAccount

		// Non-transactional tables keep insertion order.
		schools  []*entity.School
		products []*entity.Product
		orders   []*entity.Order
		payment  *entity.PaymentSettings
		cargo    *entity.CargoSettings
		messages []*entity.Message
		contacts []*entity.ContactRequest
	}

	// snapshot captures the transactional tables.
	snapshot struct {
		roster      map[uuid.UUID]*entity.User
		invitations map[string]entity.ScopeID
		pages       map[uuid.UUID]*entity.PageEntry
		designs     map[entity.ScopeID][]byte
		admins      map[string]*entity.AdminAccount
	}
)

// Open creates an empty database.
func Open() *DB {
	return &DB{
		roster:      make(map[uuid.UUID]*entity.User),
		invitations: make(map[string]entity.ScopeID),
		pages:       make(map[uuid.UUID]*entity.PageEntry),
		designs:     make(map[entity.ScopeID][]byte),
		admins:      make(map[string]*entity.AdminAccount),
	}
}

// Stored records are never mutated in place, so cloning the maps is enough.
func (db *DB) takeSnapshot() *snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()

	return &snapshot{
		roster:      maps.Clone(db.roster),
		invitations: maps.Clone(db.invitations),
		pages:       maps.Clone(db.pages),
		designs:     maps.Clone(db.designs),
		admins:      maps.Clone(db.admins),
	}
}

func (db *DB) restore(s *snapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()

	db.roster = s.roster
	db.invitations = s.invitations
	db.pages = s.pages
	db.designs = s.designs
	db.admins = s.admins
}

func cloneUser(u *entity.User) *entity.User {
	cloned := *u

	return &cloned
}

func clonePage(p *entity.PageEntry) *entity.PageEntry {
	cloned := *p
	cloned.GalleryPhotoURLs = append([]string{}, p.GalleryPhotoURLs...)

	return &cloned
}

func cloneProduct(p *entity.Product) *entity.Product {
	cloned := *p
	cloned.Features = append([]string{}, p.Features...)

	return &cloned
}

func cloneOrder(o *entity.Order) *entity.Order {
	cloned := *o
	if o.Tracking != nil {
		tracking := *o.Tracking
		cloned.Tracking = &tracking
	}

	return &cloned
}
