package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jhogsett/LightBench/internal/domain"
)

// ObservationRepository keeps observations as a log ordered by timestamp,
// then ID. The controller appends in clock order, so saves normally land at
// the tail and retention trims from the head.
type ObservationRepository struct {
	mu       sync.RWMutex
	log      []*domain.Observation
	byID     map[int64]*domain.Observation
	sessions map[string]int
	nextID   int64
}

// NewObservationRepository creates an empty in-memory repository
func NewObservationRepository() *ObservationRepository {
	return &ObservationRepository{
		byID:     make(map[int64]*domain.Observation),
		sessions: make(map[string]int),
		nextID:   1,
	}
}

// SaveObservation assigns an ID and inserts obs at its place in the log
func (r *ObservationRepository) SaveObservation(ctx context.Context, obs *domain.Observation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if obs.ID == 0 {
		obs.ID = r.nextID
		r.nextID++
	} else {
		if prev, ok := r.byID[obs.ID]; ok {
			r.remove(prev)
		}
		r.nextID = max(r.nextID, obs.ID+1)
	}

	i := sort.Search(len(r.log), func(i int) bool { return before(obs, r.log[i]) })
	r.log = append(r.log, nil)
	copy(r.log[i+1:], r.log[i:])
	r.log[i] = obs

	r.byID[obs.ID] = obs
	r.sessions[obs.Session]++
	return nil
}

// GetObservation retrieves an observation by ID
func (r *ObservationRepository) GetObservation(ctx context.Context, id int64) (*domain.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	obs, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrObservationNotFound
	}
	return obs, nil
}

// GetObservationsInRange returns observations in [start, end), oldest first
func (r *ObservationRepository) GetObservationsInRange(ctx context.Context, start, end time.Time) ([]*domain.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lo := r.firstAtOrAfter(start)
	hi := r.firstAtOrAfter(end)
	if lo >= hi {
		return nil, nil
	}

	results := make([]*domain.Observation, hi-lo)
	copy(results, r.log[lo:hi])
	return results, nil
}

// GetLatestObservation returns the tail of the log
func (r *ObservationRepository) GetLatestObservation(ctx context.Context) (*domain.Observation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.log) == 0 {
		return nil, domain.ErrObservationNotFound
	}
	return r.log[len(r.log)-1], nil
}

// CountSessionObservations returns how many stored observations belong to session
func (r *ObservationRepository) CountSessionObservations(ctx context.Context, session string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[session], nil
}

// DeleteOldObservations trims every observation older than the cutoff from the head
func (r *ObservationRepository) DeleteOldObservations(ctx context.Context, olderThan time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.firstAtOrAfter(time.Now().Add(-olderThan))
	for _, obs := range r.log[:n] {
		r.forget(obs)
	}
	clear(r.log[:n])
	r.log = r.log[n:]
	return nil
}

// firstAtOrAfter returns the index of the first observation not before t
func (r *ObservationRepository) firstAtOrAfter(t time.Time) int {
	return sort.Search(len(r.log), func(i int) bool { return !r.log[i].Timestamp.Before(t) })
}

// remove drops obs from the log and the indexes. Caller holds mu.
func (r *ObservationRepository) remove(obs *domain.Observation) {
	for i, o := range r.log {
		if o == obs {
			r.log = append(r.log[:i], r.log[i+1:]...)
			break
		}
	}
	r.forget(obs)
}

func (r *ObservationRepository) forget(obs *domain.Observation) {
	delete(r.byID, obs.ID)
	r.sessions[obs.Session]--
	if r.sessions[obs.Session] <= 0 {
		delete(r.sessions, obs.Session)
	}
}

// before orders by timestamp, then by ID for observations saved in the same instant
func before(a, b *domain.Observation) bool {
	if a.Timestamp.Equal(b.Timestamp) {
		return a.ID < b.ID
	}
	return a.Timestamp.Before(b.Timestamp)
}
