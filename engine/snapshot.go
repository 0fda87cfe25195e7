package engine

import (
	"fmt"
	"sync"
	"time"

	"backend/models"
)

// Snapshot is the full in-memory state graph. Operations never mutate the
// live snapshot in place: each one transforms a copy and swaps it in, so a
// failed operation leaves state exactly as it found it and no reader ever
// sees a half-applied sale.
type Snapshot struct {
	Batches   []models.Batch
	Customers []models.Customer
	Sales     []models.Sale
	Expenses  []models.OperationalExpense
	Missions  []models.Mission
	Settings  models.Settings
	Shift     models.ShiftLedger
}

func (s Snapshot) Clone() Snapshot {
	out := s

	out.Batches = make([]models.Batch, len(s.Batches))
	for i, b := range s.Batches {
		out.Batches[i] = b
		out.Batches[i].ExtraExpenses = append([]models.Expense(nil), b.ExtraExpenses...)
		out.Batches[i].Tags = append([]string(nil), b.Tags...)
	}

	out.Customers = make([]models.Customer, len(s.Customers))
	for i, c := range s.Customers {
		out.Customers[i] = c
		out.Customers[i].History = append([]models.Sale(nil), c.History...)
	}

	out.Sales = append([]models.Sale(nil), s.Sales...)
	out.Expenses = append([]models.OperationalExpense(nil), s.Expenses...)
	out.Missions = append([]models.Mission(nil), s.Missions...)
	return out
}

// Store owns the snapshot and is the only mutation entry point. The host is
// an HTTP server, so access is guarded by a RWMutex even though every
// individual operation is a synchronous transform.
type Store struct {
	mu       sync.RWMutex
	snap     Snapshot
	now      func() time.Time
	onChange func(Snapshot)

	// Change deliveries go through a single worker so a slow hook call
	// can never land an older snapshot after a newer one. pending holds
	// the newest undelivered snapshot; queueing supersedes it in place.
	pendingMu sync.Mutex
	pending   *Snapshot
	notify    chan struct{}
}

func New() *Store {
	return NewAt(time.Now)
}

// NewAt builds a store with an injectable clock, used by the shift ledger
// and reporting for their "today" window.
func NewAt(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now: now,
		snap: Snapshot{
			Settings: models.Settings{StoreName: "Retail Ops"},
			Shift:    models.ShiftLedger{State: models.ShiftNotStarted},
		},
	}
}

// SetOnChange registers the persistence/broadcast hook. After every
// successful mutation a private clone of the new snapshot is handed to a
// single delivery worker, off the request path; the in-memory snapshot
// stays the source of truth. Deliveries never reorder: while the hook is
// busy, queued snapshots supersede each other so the worker always hands
// over the newest state and the durable copy cannot go stale.
func (s *Store) SetOnChange(fn func(Snapshot)) {
	s.mu.Lock()
	s.onChange = fn
	if fn != nil && s.notify == nil {
		s.notify = make(chan struct{}, 1)
		go s.deliverChanges()
	}
	s.mu.Unlock()
}

// queueChange stages a snapshot for the delivery worker. Callers hold s.mu,
// so queue order matches swap order.
func (s *Store) queueChange(snap Snapshot) {
	s.pendingMu.Lock()
	s.pending = &snap
	s.pendingMu.Unlock()
	select {
	case s.notify <- struct{}{}:
	default:
	}
}

func (s *Store) deliverChanges() {
	for range s.notify {
		s.pendingMu.Lock()
		snap := s.pending
		s.pending = nil
		s.pendingMu.Unlock()
		if snap == nil {
			continue
		}
		s.mu.RLock()
		fn := s.onChange
		s.mu.RUnlock()
		if fn != nil {
			fn(*snap)
		}
	}
}

// Snapshot returns a deep copy of the current state for read-only use.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Clone()
}

// Replace swaps in a fully built snapshot. Used by restore and boot-time
// loading only.
func (s *Store) Replace(next Snapshot) {
	s.mu.Lock()
	s.snap = next
	if s.onChange != nil {
		s.queueChange(next.Clone())
	}
	s.mu.Unlock()
}

// mutate clones the current snapshot, applies fn to the clone and swaps it
// in on success. On error nothing changes.
func (s *Store) mutate(fn func(*Snapshot) error) error {
	s.mu.Lock()
	next := s.snap.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.snap = next
	if s.onChange != nil {
		s.queueChange(next.Clone())
	}
	s.mu.Unlock()
	return nil
}

func findBatch(snap *Snapshot, id string) (*models.Batch, error) {
	for i := range snap.Batches {
		if snap.Batches[i].ID == id {
			return &snap.Batches[i], nil
		}
	}
	return nil, fmt.Errorf("%w: batch %s", ErrNotFound, id)
}

func findCustomer(snap *Snapshot, id string) (*models.Customer, error) {
	for i := range snap.Customers {
		if snap.Customers[i].ID == id {
			return &snap.Customers[i], nil
		}
	}
	return nil, fmt.Errorf("%w: customer %s", ErrNotFound, id)
}

func findMission(snap *Snapshot, id string) (*models.Mission, error) {
	for i := range snap.Missions {
		if snap.Missions[i].ID == id {
			return &snap.Missions[i], nil
		}
	}
	return nil, fmt.Errorf("%w: mission %s", ErrNotFound, id)
}

func (s *Store) GetBatch(id string) (models.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := findBatch(&s.snap, id)
	if err != nil {
		return models.Batch{}, err
	}
	out := *b
	out.ExtraExpenses = append([]models.Expense(nil), b.ExtraExpenses...)
	out.Tags = append([]string(nil), b.Tags...)
	return out, nil
}

func (s *Store) GetCustomer(id string) (models.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, err := findCustomer(&s.snap, id)
	if err != nil {
		return models.Customer{}, err
	}
	out := *c
	out.History = append([]models.Sale(nil), c.History...)
	return out, nil
}
