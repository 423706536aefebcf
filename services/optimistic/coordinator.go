// Package optimistic owns the tentative schedule state shown to a client
// before the store confirms a mutation. All surfaces mutate through one
// coordinator instead of keeping their own temporary-id bookkeeping.
package optimistic

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"campushub_go/services/timetable"
)

// State tracks one in-flight mutation's lifecycle.
type State string

const (
	StatePending    State = "PENDING"
	StateConfirmed  State = "CONFIRMED"
	StateRolledBack State = "ROLLED_BACK"
)

// Kind identifies the mutation verb.
type Kind string

const (
	KindCreate Kind = "CREATE"
	KindUpdate Kind = "UPDATE"
	KindDelete Kind = "DELETE"
)

var (
	// ErrMutationInFlight rejects a second mutation against an entry whose
	// previous mutation has not resolved yet.
	ErrMutationInFlight = errors.New("optimistic: a mutation for this entry is still pending")
	// ErrUnknownMutation is returned when confirming or failing a key the
	// coordinator is not tracking.
	ErrUnknownMutation = errors.New("optimistic: no pending mutation for key")
	// ErrEntryNotFound is returned when the target entry is not in the
	// visible collection.
	ErrEntryNotFound = errors.New("optimistic: entry not in visible collection")
)

// Mutation is the record of one tentative change.
type Mutation struct {
	Key   string
	Kind  Kind
	State State
}

// RefetchFunc reloads the full entry set for the current scope. It is the
// rollback path for failed updates and deletes: ground truth replaces local
// state wholesale, no per-field reverting.
type RefetchFunc func() ([]timetable.Entry, error)

// VisibleEntry is one row of the client-visible collection. TempID is set
// only while a created entry awaits its server id.
type VisibleEntry struct {
	TempID string `json:"tempId,omitempty"`
	timetable.Entry
}

// Coordinator serializes optimistic mutations over one scope's entries.
// At most one mutation per entry key may be pending at a time; a second
// attempt returns ErrMutationInFlight instead of racing the first.
type Coordinator struct {
	mu        sync.Mutex
	entries   []VisibleEntry
	mutations map[string]*Mutation
	refetch   RefetchFunc
}

// NewCoordinator builds a coordinator over an initial entry set.
func NewCoordinator(initial []timetable.Entry, refetch RefetchFunc) *Coordinator {
	c := &Coordinator{
		mutations: make(map[string]*Mutation),
		refetch:   refetch,
	}
	c.Load(initial)
	return c
}

// Load replaces the visible collection with fresh store state and drops any
// tentative rows. Pending mutation records survive so late confirmations
// still resolve.
func (c *Coordinator) Load(entries []timetable.Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.replaceLocked(entries)
}

func (c *Coordinator) replaceLocked(entries []timetable.Entry) {
	c.entries = make([]VisibleEntry, 0, len(entries))
	for _, e := range entries {
		c.entries = append(c.entries, VisibleEntry{Entry: e})
	}
}

// Entries returns a snapshot of the visible collection, tentative rows
// included.
func (c *Coordinator) Entries() []VisibleEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]VisibleEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// StateOf reports the lifecycle state of a mutation by key. The key is the
// temp id for creates and the formatted entry id for updates and deletes.
func (c *Coordinator) StateOf(key string) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.mutations[key]
	if !ok {
		return "", false
	}
	return m.State, true
}

func entryKey(id uint) string {
	return fmt.Sprintf("%d", id)
}

// ApplyCreate inserts a tentative entry and returns its temporary id. The
// caller dispatches the persisted create and resolves with ConfirmCreate or
// FailCreate.
func (c *Coordinator) ApplyCreate(e timetable.Entry) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	tempID := "temp-" + uuid.New().String()
	e.ID = 0
	c.entries = append(c.entries, VisibleEntry{TempID: tempID, Entry: e})
	c.mutations[tempID] = &Mutation{Key: tempID, Kind: KindCreate, State: StatePending}
	return tempID
}

// ConfirmCreate splices the temporary entry out and inserts the
// server-assigned entry in its place.
func (c *Coordinator) ConfirmCreate(tempID string, persisted timetable.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.mutations[tempID]
	if !ok || m.State != StatePending {
		return ErrUnknownMutation
	}

	for i := range c.entries {
		if c.entries[i].TempID == tempID {
			c.entries[i] = VisibleEntry{Entry: persisted}
			break
		}
	}
	m.State = StateConfirmed
	return nil
}

// FailCreate removes the temporary entry. No refetch is needed: the store
// never saw the row.
func (c *Coordinator) FailCreate(tempID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.mutations[tempID]
	if !ok || m.State != StatePending {
		return ErrUnknownMutation
	}

	for i := range c.entries {
		if c.entries[i].TempID == tempID {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			break
		}
	}
	m.State = StateRolledBack
	return nil
}

// ApplyUpdate replaces the entry's visible fields immediately. The caller
// dispatches the persisted update and resolves with ConfirmUpdate or
// FailUpdate.
func (c *Coordinator) ApplyUpdate(id uint, updated timetable.Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := entryKey(id)
	if m, ok := c.mutations[key]; ok && m.State == StatePending {
		return ErrMutationInFlight
	}

	found := false
	for i := range c.entries {
		if c.entries[i].TempID == "" && c.entries[i].ID == id {
			updated.ID = id
			c.entries[i] = VisibleEntry{Entry: updated}
			found = true
			break
		}
	}
	if !found {
		return ErrEntryNotFound
	}

	c.mutations[key] = &Mutation{Key: key, Kind: KindUpdate, State: StatePending}
	return nil
}

// ConfirmUpdate marks the update accepted. Local state is already correct.
func (c *Coordinator) ConfirmUpdate(id uint) error {
	return c.confirm(entryKey(id))
}

// FailUpdate rolls back by refetching the scope; there is no fine-grained
// revert of the replaced fields.
func (c *Coordinator) FailUpdate(id uint) error {
	return c.rollback(entryKey(id))
}

// ApplyDelete removes the entry from the visible collection immediately.
// The caller dispatches the persisted delete and resolves with
// ConfirmDelete or FailDelete.
func (c *Coordinator) ApplyDelete(id uint) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := entryKey(id)
	if m, ok := c.mutations[key]; ok && m.State == StatePending {
		return ErrMutationInFlight
	}

	found := false
	for i := range c.entries {
		if c.entries[i].TempID == "" && c.entries[i].ID == id {
			c.entries = append(c.entries[:i], c.entries[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return ErrEntryNotFound
	}

	c.mutations[key] = &Mutation{Key: key, Kind: KindDelete, State: StatePending}
	return nil
}

// ConfirmDelete marks the delete accepted.
func (c *Coordinator) ConfirmDelete(id uint) error {
	return c.confirm(entryKey(id))
}

// FailDelete rolls back by refetching the scope, restoring the row if the
// store still has it.
func (c *Coordinator) FailDelete(id uint) error {
	return c.rollback(entryKey(id))
}

func (c *Coordinator) confirm(key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	m, ok := c.mutations[key]
	if !ok || m.State != StatePending {
		return ErrUnknownMutation
	}
	m.State = StateConfirmed
	return nil
}

func (c *Coordinator) rollback(key string) error {
	c.mu.Lock()
	m, ok := c.mutations[key]
	if !ok || m.State != StatePending {
		c.mu.Unlock()
		return ErrUnknownMutation
	}
	m.State = StateRolledBack
	refetch := c.refetch
	c.mu.Unlock()

	if refetch == nil {
		return nil
	}
	fresh, err := refetch()
	if err != nil {
		return fmt.Errorf("rollback refetch: %w", err)
	}

	c.mu.Lock()
	c.replaceLocked(fresh)
	c.mu.Unlock()
	return nil
}
