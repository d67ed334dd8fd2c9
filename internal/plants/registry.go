package plants

import (
	"context"
	"encoding/json"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/HendryAvila/plantcare/internal/kvstore"
	"github.com/google/uuid"
)

// StorageKey is the namespaced key the collection is stored under.
const StorageKey = "plantcare_plants"

// Option configures a Registry.
type Option func(*Registry)

// WithKey overrides the storage key.
func WithKey(key string) Option {
	return func(r *Registry) { r.key = key }
}

// WithClock replaces the time source used for watering timestamps.
func WithClock(now func() time.Time) Option {
	return func(r *Registry) { r.now = now }
}

// WithIDGenerator replaces the plant ID generator.
func WithIDGenerator(gen func() string) Option {
	return func(r *Registry) { r.newID = gen }
}

// Registry is the authoritative plant collection.
//
// All mutations are serialized by writeMu and follow the same shape:
// copy the collection, change the copy, persist the whole copy, swap it in,
// notify subscribers. A failed write leaves the in-memory state untouched.
//
// Subscribers run synchronously while writeMu is held. They may read the
// registry but must not mutate it from inside the callback.
type Registry struct {
	store kvstore.Store
	key   string
	now   func() time.Time
	newID func() string

	writeMu sync.Mutex

	mu     sync.RWMutex
	plants []Plant

	subsMu  sync.Mutex
	subs    map[int]func([]Plant)
	nextSub int
}

// Open creates a Registry and loads the persisted collection.
// An absent key is an empty collection.
func Open(ctx context.Context, store kvstore.Store, opts ...Option) (*Registry, error) {
	r := &Registry{
		store: store,
		key:   StorageKey,
		now:   time.Now,
		newID: uuid.NewString,
		subs:  make(map[int]func([]Plant)),
	}
	for _, opt := range opts {
		opt(r)
	}

	plants, err := r.load(ctx)
	if err != nil {
		return nil, err
	}
	r.plants = plants
	return r, nil
}

// load reads the collection and repairs the active flag if a previous
// writer left it inconsistent.
func (r *Registry) load(ctx context.Context) ([]Plant, error) {
	data, found, err := r.store.Get(ctx, r.key)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Err: err}
	}
	if !found || len(data) == 0 {
		return []Plant{}, nil
	}

	var plants []Plant
	if err := json.Unmarshal(data, &plants); err != nil {
		return nil, &PersistenceError{Op: "decode", Err: err}
	}
	if plants == nil {
		plants = []Plant{}
	}
	normalizeActive(plants)
	return plants, nil
}

// normalizeActive enforces one active plant: the first active record wins,
// otherwise the first record is activated.
func normalizeActive(plants []Plant) {
	if len(plants) == 0 {
		return
	}
	winner := slices.IndexFunc(plants, func(p Plant) bool { return p.IsActive })
	if winner < 0 {
		winner = 0
	}
	for i := range plants {
		plants[i].IsActive = i == winner
	}
}

// --- Queries ---

// List returns a copy of the collection in insertion order.
func (r *Registry) List() []Plant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.plants)
}

// GetActive returns the active plant, if any.
func (r *Registry) GetActive() (Plant, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.plants {
		if p.IsActive {
			return p, true
		}
	}
	return Plant{}, false
}

// Get returns the plant with the given ID.
func (r *Registry) Get(id string) (Plant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	i := indexOf(r.plants, id)
	if i < 0 {
		return Plant{}, &NotFoundError{ID: id}
	}
	return r.plants[i], nil
}

func indexOf(plants []Plant, id string) int {
	return slices.IndexFunc(plants, func(p Plant) bool { return p.ID == id })
}

// --- Mutations ---

// mutate runs fn against a working copy of the collection and commits the
// result. fn returns the index of the plant to report back, or -1.
func (r *Registry) mutate(ctx context.Context, op string, fn func([]Plant) ([]Plant, int, error)) (Plant, error) {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	// A caller that stops waiting does not abort a mutation in flight.
	ctx = context.WithoutCancel(ctx)

	next, idx, err := fn(r.List())
	if err != nil {
		return Plant{}, err
	}

	data, err := json.Marshal(next)
	if err != nil {
		return Plant{}, &PersistenceError{Op: op, Err: err}
	}
	if err := r.store.Set(ctx, r.key, data); err != nil {
		return Plant{}, &PersistenceError{Op: op, Err: err}
	}

	r.commit(next)

	if idx < 0 {
		return Plant{}, nil
	}
	return next[idx], nil
}

// commit swaps in the new collection and notifies subscribers.
// Callers must hold writeMu.
func (r *Registry) commit(next []Plant) {
	r.mu.Lock()
	r.plants = next
	r.mu.Unlock()
	r.notify(next)
}

// Add stores a new plant. The first plant in an empty collection becomes
// active; later ones start inactive.
func (r *Registry) Add(ctx context.Context, d Draft) (Plant, error) {
	if err := d.Validate(); err != nil {
		return Plant{}, err
	}
	return r.mutate(ctx, "add", func(plants []Plant) ([]Plant, int, error) {
		p := Plant{
			ID:                    r.newID(),
			Name:                  strings.TrimSpace(d.Name),
			Type:                  d.Type,
			AgeDays:               d.AgeDays,
			WateringFrequencyDays: d.WateringFrequencyDays,
			LastWateredAt:         d.LastWateredAt.UTC(),
			Notes:                 d.Notes,
			IsActive:              len(plants) == 0,
		}
		if d.LastWateredAt.IsZero() {
			p.LastWateredAt = r.now().UTC()
		}
		plants = append(plants, p)
		return plants, len(plants) - 1, nil
	})
}

// Update merges patch into the plant with the given ID.
//
// IsActive=true activates the plant exclusively. IsActive=false is only
// accepted for a plant that is already inactive, since deactivating the
// active plant would leave a non-empty collection without one.
func (r *Registry) Update(ctx context.Context, id string, patch Patch) (Plant, error) {
	if err := patch.Validate(); err != nil {
		return Plant{}, err
	}
	return r.mutate(ctx, "update", func(plants []Plant) ([]Plant, int, error) {
		i := indexOf(plants, id)
		if i < 0 {
			return nil, -1, &NotFoundError{ID: id}
		}
		patch.apply(&plants[i])

		if patch.IsActive != nil {
			if *patch.IsActive {
				activate(plants, i)
			} else if plants[i].IsActive {
				return nil, -1, &ValidationError{
					Field:  "isActive",
					Reason: "cannot deactivate the active plant; activate another plant instead",
				}
			}
		}
		return plants, i, nil
	})
}

// Delete removes a plant. Deleting the active plant promotes the first
// remaining plant.
func (r *Registry) Delete(ctx context.Context, id string) error {
	_, err := r.mutate(ctx, "delete", func(plants []Plant) ([]Plant, int, error) {
		i := indexOf(plants, id)
		if i < 0 {
			return nil, -1, &NotFoundError{ID: id}
		}
		wasActive := plants[i].IsActive
		plants = slices.Delete(plants, i, i+1)
		if wasActive && len(plants) > 0 {
			plants[0].IsActive = true
		}
		return plants, -1, nil
	})
	return err
}

// SetActive makes the given plant the only active one.
func (r *Registry) SetActive(ctx context.Context, id string) error {
	_, err := r.mutate(ctx, "activate", func(plants []Plant) ([]Plant, int, error) {
		i := indexOf(plants, id)
		if i < 0 {
			return nil, -1, &NotFoundError{ID: id}
		}
		activate(plants, i)
		return plants, -1, nil
	})
	return err
}

func activate(plants []Plant, idx int) {
	for i := range plants {
		plants[i].IsActive = i == idx
	}
}

// Water records a watering event now. No other field changes.
func (r *Registry) Water(ctx context.Context, id string) (Plant, error) {
	return r.mutate(ctx, "water", func(plants []Plant) ([]Plant, int, error) {
		i := indexOf(plants, id)
		if i < 0 {
			return nil, -1, &NotFoundError{ID: id}
		}
		plants[i].LastWateredAt = r.now().UTC()
		return plants, i, nil
	})
}

// Reload re-reads the collection from the store and notifies subscribers.
func (r *Registry) Reload(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	plants, err := r.load(ctx)
	if err != nil {
		return err
	}
	r.commit(plants)
	return nil
}

// Reset clears the stored key and empties the collection.
func (r *Registry) Reset(ctx context.Context) error {
	r.writeMu.Lock()
	defer r.writeMu.Unlock()

	if err := r.store.Clear(context.WithoutCancel(ctx), r.key); err != nil {
		return &PersistenceError{Op: "reset", Err: err}
	}
	r.commit([]Plant{})
	return nil
}

// --- Subscribers ---

// Subscribe registers fn to receive the full collection after every
// successful mutation. The returned function deregisters it and is safe
// to call more than once.
func (r *Registry) Subscribe(fn func([]Plant)) (unsubscribe func()) {
	r.subsMu.Lock()
	id := r.nextSub
	r.nextSub++
	r.subs[id] = fn
	r.subsMu.Unlock()

	return func() {
		r.subsMu.Lock()
		delete(r.subs, id)
		r.subsMu.Unlock()
	}
}

// notify calls subscribers in registration order, each with its own copy.
func (r *Registry) notify(plants []Plant) {
	r.subsMu.Lock()
	ids := make([]int, 0, len(r.subs))
	for id := range r.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	fns := make([]func([]Plant), 0, len(ids))
	for _, id := range ids {
		fns = append(fns, r.subs[id])
	}
	r.subsMu.Unlock()

	for _, fn := range fns {
		fn(slices.Clone(plants))
	}
}
