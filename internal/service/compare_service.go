package service

import (
	"context"
	"fmt"
	"hash/fnv"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"github.com/stemsi/unicatalog/internal/model"
	"github.com/stemsi/unicatalog/internal/view"
)

// CompareStore persists one comparison set per client.
type CompareStore interface {
	Load(ctx context.Context, clientID string) ([]int, error)
	Save(ctx context.Context, clientID string, ids []int) error
	Delete(ctx context.Context, clientID string) error
}

// CompareNotifier fans a client's new set out to its open connections.
type CompareNotifier interface {
	Publish(ctx context.Context, clientID string, ids []int) error
	Subscribe(ctx context.Context, clientID string) (<-chan []int, error)
}

const clientLockStripes = 64

// CompareService manages the per-client comparison set.
type CompareService struct {
	store    CompareStore
	notifier CompareNotifier
	catalog  *CatalogService
	max      int
	log      zerolog.Logger

	// Serializes read-modify-write per client so two tabs cannot lose an update.
	locks [clientLockStripes]sync.Mutex
}

func NewCompareService(store CompareStore, notifier CompareNotifier, catalog *CatalogService, log zerolog.Logger) *CompareService {
	return &CompareService{
		store:    store,
		notifier: notifier,
		catalog:  catalog,
		max:      catalog.Options().MaxCompareSize,
		log:      log.With().Str("component", "compare_service").Logger(),
	}
}

func (s *CompareService) lock(clientID string) func() {
	h := fnv.New32a()
	h.Write([]byte(clientID))
	mu := &s.locks[h.Sum32()%clientLockStripes]
	mu.Lock()
	return mu.Unlock
}

// Get loads the client's set. Ids that are no longer in the dataset are dropped.
func (s *CompareService) Get(ctx context.Context, clientID string) (model.CompareSet, error) {
	ids, err := s.store.Load(ctx, clientID)
	if err != nil {
		return model.NewCompareSet(nil, s.max), fmt.Errorf("load compare set: %w", err)
	}
	return s.fromIDs(ids), nil
}

// Members builds a set from raw ids, e.g. ones received from the notifier.
func (s *CompareService) Members(ids []int) model.CompareSet {
	return s.fromIDs(ids)
}

func (s *CompareService) fromIDs(ids []int) model.CompareSet {
	known := make([]int, 0, len(ids))
	for _, id := range ids {
		if s.catalog.Exists(id) {
			known = append(known, id)
		}
	}
	set := model.NewCompareSet(known, s.max)
	if len(set.IDs) > s.max {
		set.IDs = set.IDs[:s.max]
	}
	return set
}

// Toggle removes id when present, otherwise adds it. A full set returns
// ErrCompareCapacity and is left untouched. The new set is persisted before
// Toggle returns.
func (s *CompareService) Toggle(ctx context.Context, clientID string, id int) (model.CompareSet, error) {
	unlock := s.lock(clientID)
	defer unlock()

	set, err := s.Get(ctx, clientID)
	if err != nil {
		return set, err
	}

	switch {
	case set.Has(id):
		set.IDs = slices.DeleteFunc(set.IDs, func(v int) bool { return v == id })
	case !s.catalog.Exists(id):
		return set, ErrUniversityNotFound
	case set.Full():
		return set, ErrCompareCapacity
	default:
		set.IDs = append(set.IDs, id)
	}

	if err := s.store.Save(ctx, clientID, set.IDs); err != nil {
		return set, fmt.Errorf("save compare set: %w", err)
	}
	s.publish(ctx, clientID, set.IDs)

	s.log.Debug().Str("client_id", clientID).Int("id", id).Ints("ids", set.IDs).Msg("Compare set toggled")
	return set, nil
}

// Clear removes the client's stored set.
func (s *CompareService) Clear(ctx context.Context, clientID string) (model.CompareSet, error) {
	unlock := s.lock(clientID)
	defer unlock()

	if err := s.store.Delete(ctx, clientID); err != nil {
		return model.NewCompareSet(nil, s.max), fmt.Errorf("clear compare set: %w", err)
	}
	empty := model.NewCompareSet(nil, s.max)
	s.publish(ctx, clientID, empty.IDs)
	return empty, nil
}

// Table returns the selected records in dataset order, or ErrCompareTooFew
// when fewer than two are selected.
func (s *CompareService) Table(ctx context.Context, clientID string) ([]model.University, error) {
	set, err := s.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	records := view.SelectedUniversities(set, s.catalog.Dataset())
	if len(records) < 2 {
		return nil, ErrCompareTooFew
	}
	return records, nil
}

// Subscribe streams the client's set after every mutation from any connection.
func (s *CompareService) Subscribe(ctx context.Context, clientID string) (<-chan []int, error) {
	return s.notifier.Subscribe(ctx, clientID)
}

// publish failures only delay other tabs; the set itself is already saved.
func (s *CompareService) publish(ctx context.Context, clientID string, ids []int) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(ctx, clientID, ids); err != nil {
		s.log.Warn().Err(err).Str("client_id", clientID).Msg("Compare update not published")
	}
}
