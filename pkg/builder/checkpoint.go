package builder

import "github.com/yaklabco/oakwood/pkg/syntax"

// Checkpoint marks a position in the event log. FinishAt turns everything
// recorded since the checkpoint into one node; Restore discards it.
type Checkpoint struct {
	owner  *Builder
	event  int
	pos    int
	diags  int
	depth  int
	reused int
}

// Completed is a finished node. It can be wrapped later through
// CheckpointBefore.
type Completed struct {
	at   Checkpoint
	kind syntax.Kind
}

// Kind returns the completed node's kind.
func (c Completed) Kind() syntax.Kind { return c.kind }

// Pos returns the token index where the node starts.
func (c Completed) Pos() int { return c.at.pos }

// mark captures the current state. The caller appends the event it refers to.
func (b *Builder) mark() Checkpoint {
	return Checkpoint{
		owner:  b,
		event:  len(b.events),
		pos:    b.pos,
		diags:  len(b.diags),
		depth:  len(b.open),
		reused: b.reusedNodes,
	}
}

// Checkpoint records the current position. Pending trivia is attached first,
// so a node finished at this checkpoint starts at a significant token.
func (b *Builder) Checkpoint() Checkpoint {
	b.flushTrivia()
	cp := b.mark()
	b.events = append(b.events, event{kind: evTombstone})

	return cp
}

// CheckpointBefore returns a checkpoint positioned where a completed node
// starts, for wrapping it in a new parent.
func (b *Builder) CheckpointBefore(node Completed) Checkpoint {
	b.check(node.at)
	return node.at
}

// FinishAt closes everything recorded since cp into one node of kind, placed
// where cp was taken. It may be called repeatedly with the same checkpoint;
// each call wraps the previous node.
func (b *Builder) FinishAt(cp Checkpoint, kind syntax.Kind) Completed {
	b.check(cp)
	if len(b.open) != cp.depth {
		panic("builder: FinishAt across an unclosed Open")
	}

	idx := cp.event
	if b.events[idx].kind == evTombstone {
		b.events[idx] = event{kind: evOpen, nodeKind: kind}
	} else {
		for b.events[idx].forwardParent != 0 {
			idx += b.events[idx].forwardParent
		}

		parent := len(b.events)
		b.events = append(b.events, event{kind: evOpen, nodeKind: kind})
		b.events[idx].forwardParent = parent - idx
		b.links = append(b.links, idx)
	}

	b.events = append(b.events, event{kind: evClose})

	return Completed{at: cp, kind: kind}
}

// Restore rewinds to cp: the token position, the event log and the
// diagnostics return to their state when cp was taken.
func (b *Builder) Restore(cp Checkpoint) {
	b.check(cp)
	if len(b.open) < cp.depth {
		panic("builder: Restore across a closed node")
	}

	for len(b.links) > 0 {
		src := b.links[len(b.links)-1]
		if src+b.events[src].forwardParent <= cp.event {
			break
		}
		b.events[src].forwardParent = 0
		b.links = b.links[:len(b.links)-1]
	}

	b.events = b.events[:cp.event+1]
	b.events[cp.event] = event{kind: evTombstone}
	b.pos = cp.pos
	b.diags = b.diags[:cp.diags]
	b.open = b.open[:cp.depth]
	b.reusedNodes = cp.reused
}

// Try runs fn speculatively and rewinds everything it did if it returns
// false.
func (b *Builder) Try(fn func() bool) bool {
	cp := b.Checkpoint()
	if fn() {
		return true
	}
	b.Restore(cp)

	return false
}

func (b *Builder) check(cp Checkpoint) {
	if cp.owner != b {
		panic("builder: checkpoint belongs to a different builder")
	}

	if cp.event >= len(b.events) {
		panic("builder: checkpoint is no longer valid")
	}

	if kind := b.events[cp.event].kind; kind != evTombstone && kind != evOpen {
		panic("builder: checkpoint is no longer valid")
	}
}
