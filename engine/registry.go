package engine

import (
	"cmp"
	"reflect"
	"slices"
	"sync"

	"github.com/lixenwraith/sgf/parameter"
)

// member is a committed entity with its insertion sequence
type member struct {
	e   Entity
	seq uint64
}

// Registry is the ordered set of live entities
//
// Mutation discipline:
//   - Add/Remove only queue requests, safe to call during iteration
//   - Commit applies queued requests atomically and rebuilds the draw order
//   - ForEachInDrawOrder iterates the committed snapshot, ascending ZIndex,
//     insertion order for equal keys
type Registry struct {
	mu      sync.Mutex
	members map[Entity]uint64
	order   []member
	seq     uint64

	pendingAdd    []Entity
	pendingAddSet map[Entity]struct{}
	pendingRem    []Entity
	pendingRemSet map[Entity]struct{}

	owner Remover
}

// NewRegistry creates an empty registry
// owner is installed as the removal back-reference of added entities, nil means the registry itself
func NewRegistry(owner Remover) *Registry {
	r := &Registry{
		members:       make(map[Entity]uint64),
		order:         make([]member, 0, parameter.RegistryInitialCapacity),
		pendingAddSet: make(map[Entity]struct{}),
		pendingRemSet: make(map[Entity]struct{}),
		owner:         owner,
	}
	if r.owner == nil {
		r.owner = r
	}
	return r
}

// Add queues e for insertion at the end of the ordering
// Adding a registered or queued entity is a no-op; a queued removal is cancelled
func (r *Registry) Add(e Entity) error {
	if isNil(e) {
		return ErrNilEntity
	}
	c := e.Core()
	if c.destroyed {
		return ErrDestroyed
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[e]; ok {
		if _, removing := r.pendingRemSet[e]; removing {
			delete(r.pendingRemSet, e)
			r.pendingRem = slices.DeleteFunc(r.pendingRem, func(x Entity) bool { return x == e })
		}
		return nil
	}
	if _, ok := r.pendingAddSet[e]; ok {
		return nil
	}

	r.pendingAdd = append(r.pendingAdd, e)
	r.pendingAddSet[e] = struct{}{}
	c.attach(e, r.owner)
	return nil
}

// Remove queues e for removal, a queued add is cancelled instead
func (r *Registry) Remove(e Entity) {
	if isNil(e) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pendingAddSet[e]; ok {
		delete(r.pendingAddSet, e)
		r.pendingAdd = slices.DeleteFunc(r.pendingAdd, func(x Entity) bool { return x == e })
		e.Core().attach(nil, nil)
		return
	}
	if _, ok := r.members[e]; !ok {
		return
	}
	if _, ok := r.pendingRemSet[e]; ok {
		return
	}
	r.pendingRem = append(r.pendingRem, e)
	r.pendingRemSet[e] = struct{}{}
}

// RemoveEntity implements Remover
func (r *Registry) RemoveEntity(e Entity) {
	r.Remove(e)
}

// Commit applies queued removals then additions, returns removed entities in request order
func (r *Registry) Commit() []Entity {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := r.applyRemovals()
	added := len(r.pendingAdd) > 0
	for _, e := range r.pendingAdd {
		r.seq++
		r.members[e] = r.seq
		r.order = append(r.order, member{e: e, seq: r.seq})
	}
	r.pendingAdd = r.pendingAdd[:0]
	clear(r.pendingAddSet)

	if added || removed != nil || !r.sorted() {
		r.sortOrder()
	}
	return removed
}

func (r *Registry) applyRemovals() []Entity {
	if len(r.pendingRem) == 0 {
		return nil
	}
	removed := make([]Entity, 0, len(r.pendingRem))
	for _, e := range r.pendingRem {
		delete(r.members, e)
		removed = append(removed, e)
		e.Core().attach(nil, nil)
	}
	r.pendingRem = r.pendingRem[:0]
	clear(r.pendingRemSet)

	// New slice so a snapshot held by an in-progress iteration stays intact
	kept := make([]member, 0, max(len(r.members), parameter.RegistryInitialCapacity))
	for _, m := range r.order {
		if _, ok := r.members[m.e]; ok {
			kept = append(kept, m)
		}
	}
	r.order = kept
	return removed
}

func compareMembers(a, b member) int {
	if c := cmp.Compare(a.e.Core().ZIndex, b.e.Core().ZIndex); c != 0 {
		return c
	}
	return cmp.Compare(a.seq, b.seq)
}

func (r *Registry) sorted() bool {
	return slices.IsSortedFunc(r.order, compareMembers)
}

func (r *Registry) sortOrder() {
	slices.SortFunc(r.order, compareMembers)
}

// Clear removes every committed and queued entity, returns the committed ones in draw order
func (r *Registry) Clear() []Entity {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entity, 0, len(r.order))
	for _, m := range r.order {
		out = append(out, m.e)
		m.e.Core().attach(nil, nil)
	}
	for _, e := range r.pendingAdd {
		e.Core().attach(nil, nil)
	}
	clear(r.members)
	r.order = nil
	r.pendingAdd = nil
	clear(r.pendingAddSet)
	r.pendingRem = nil
	clear(r.pendingRemSet)
	return out
}

// ForEachInDrawOrder calls fn for every committed entity, ascending ZIndex
// ZIndex changes take effect at the next commit
func (r *Registry) ForEachInDrawOrder(fn func(e Entity)) {
	r.mu.Lock()
	snapshot := r.order
	r.mu.Unlock()

	for _, m := range snapshot {
		fn(m.e)
	}
}

// Entities returns a copy of the committed entities in draw order
func (r *Registry) Entities() []Entity {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entity, len(r.order))
	for i, m := range r.order {
		out[i] = m.e
	}
	return out
}

// Contains reports committed membership, queued additions are not members yet
func (r *Registry) Contains(e Entity) bool {
	if isNil(e) {
		return false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.members[e]
	return ok
}

// Len returns the committed member count
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

// Pending returns queued additions and removals
func (r *Registry) Pending() (adds, removes int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pendingAdd), len(r.pendingRem)
}

// isNil catches nil interfaces and typed nil pointers
func isNil(e Entity) bool {
	if e == nil {
		return true
	}
	v := reflect.ValueOf(e)
	return v.Kind() == reflect.Pointer && v.IsNil()
}
