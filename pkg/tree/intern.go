package tree

import (
	"sync"

	"github.com/yaklabco/oakwood/pkg/syntax"
)

// Interner deduplicates structurally equal green nodes so that repeated
// subtrees share one allocation. It is safe for concurrent use.
type Interner struct {
	mu    sync.Mutex
	nodes map[uint64][]*Node
	hits  int
}

// NewInterner creates an empty interner.
func NewInterner() *Interner {
	return &Interner{nodes: make(map[uint64][]*Node)}
}

// Intern returns a previously seen node equal to n, or records n.
func (in *Interner) Intern(n *Node) *Node {
	in.mu.Lock()
	defer in.mu.Unlock()

	for _, candidate := range in.nodes[n.hash] {
		if Equal(candidate, n) {
			in.hits++
			return candidate
		}
	}

	in.nodes[n.hash] = append(in.nodes[n.hash], n)

	return n
}

// Node builds and interns a node in one step.
func (in *Interner) Node(kind syntax.Kind, children []Element) *Node {
	return in.Intern(NewNode(kind, children))
}

// Len returns how many distinct nodes are stored.
func (in *Interner) Len() int {
	in.mu.Lock()
	defer in.mu.Unlock()

	count := 0
	for _, bucket := range in.nodes {
		count += len(bucket)
	}

	return count
}

// Hits returns how many Intern calls returned an existing node.
func (in *Interner) Hits() int {
	in.mu.Lock()
	defer in.mu.Unlock()

	return in.hits
}
