package render

import (
	"fmt"
	"slices"
)

// OpKind classifies a recorded surface call
type OpKind uint8

const (
	OpCreate OpKind = iota
	OpSet
	OpStack
	OpDestroy
)

func (k OpKind) String() string {
	switch k {
	case OpCreate:
		return "Create"
	case OpSet:
		return "Set"
	case OpStack:
		return "Stack"
	case OpDestroy:
		return "Destroy"
	default:
		return "Unknown"
	}
}

// Op is one recorded surface call
type Op struct {
	Kind   OpKind
	Handle Handle
	Attr   Attr
	Value  any
}

// Node is the recorded state of a live handle
type Node struct {
	Attrs Attrs
	Stack int
}

// Recorder is an in-memory Surface that records every call
// Used by tests and headless runs; not safe for concurrent use
type Recorder struct {
	nodes   map[Handle]*Node
	created []Handle
	next    Handle
	ops     []Op

	// Injected SetAttribute failures, empty attr matches all
	failing map[Handle]Attr
}

// NewRecorder creates an empty recorder
func NewRecorder() *Recorder {
	return &Recorder{
		nodes:   make(map[Handle]*Node),
		failing: make(map[Handle]Attr),
	}
}

// CreateHandle implements Surface
func (r *Recorder) CreateHandle(initial Attrs) (Handle, error) {
	r.next++
	h := r.next
	attrs := make(Attrs, len(initial))
	for k, v := range initial {
		attrs[k] = v
	}
	r.nodes[h] = &Node{Attrs: attrs}
	r.created = append(r.created, h)
	r.ops = append(r.ops, Op{Kind: OpCreate, Handle: h})
	return h, nil
}

// SetAttribute implements Surface
func (r *Recorder) SetAttribute(h Handle, name Attr, value any) error {
	n, ok := r.nodes[h]
	if !ok {
		return fmt.Errorf("set %s on %d: %w", name, h, ErrUnknownHandle)
	}
	if attr, ok := r.failing[h]; ok && (attr == "" || attr == name) {
		return fmt.Errorf("set %s on %d: injected failure", name, h)
	}
	n.Attrs[name] = value
	r.ops = append(r.ops, Op{Kind: OpSet, Handle: h, Attr: name, Value: value})
	return nil
}

// SetStackOrder implements Surface
func (r *Recorder) SetStackOrder(h Handle, key int) error {
	n, ok := r.nodes[h]
	if !ok {
		return fmt.Errorf("stack %d: %w", h, ErrUnknownHandle)
	}
	n.Stack = key
	r.ops = append(r.ops, Op{Kind: OpStack, Handle: h, Value: key})
	return nil
}

// DestroyHandle implements Surface
func (r *Recorder) DestroyHandle(h Handle) error {
	if _, ok := r.nodes[h]; !ok {
		return fmt.Errorf("destroy %d: %w", h, ErrUnknownHandle)
	}
	delete(r.nodes, h)
	delete(r.failing, h)
	r.ops = append(r.ops, Op{Kind: OpDestroy, Handle: h})
	return nil
}

// FailAttr injects a SetAttribute failure for h, empty attr fails every attribute
func (r *Recorder) FailAttr(h Handle, attr Attr) {
	r.failing[h] = attr
}

// ClearFailures removes injected failures
func (r *Recorder) ClearFailures() {
	clear(r.failing)
}

// Ops returns a copy of the recorded calls
func (r *Recorder) Ops() []Op {
	return slices.Clone(r.ops)
}

// Count returns the number of recorded calls of kind
func (r *Recorder) Count(kind OpKind) int {
	n := 0
	for _, op := range r.ops {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// Writes counts calls that changed visual state: creates, attribute and stack writes
func (r *Recorder) Writes() int {
	return r.Count(OpCreate) + r.Count(OpSet) + r.Count(OpStack)
}

// Reset forgets recorded calls, live handles are kept
func (r *Recorder) Reset() {
	r.ops = r.ops[:0]
}

// Node returns the state of a live handle
func (r *Recorder) Node(h Handle) (Node, bool) {
	n, ok := r.nodes[h]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// Live returns the number of live handles
func (r *Recorder) Live() int {
	return len(r.nodes)
}

// StackOrder returns live handles bottom to top, creation order breaks ties
func (r *Recorder) StackOrder() []Handle {
	out := make([]Handle, 0, len(r.nodes))
	for _, h := range r.created {
		if _, ok := r.nodes[h]; ok {
			out = append(out, h)
		}
	}
	slices.SortStableFunc(out, func(a, b Handle) int {
		return r.nodes[a].Stack - r.nodes[b].Stack
	})
	return out
}
