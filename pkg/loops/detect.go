package loops

import (
	"context"
	"slices"

	"github.com/matzehuels/treelink/pkg/errors"
	"github.com/matzehuels/treelink/pkg/hierarchy"
	"github.com/matzehuels/treelink/pkg/linkage"
)

// ctxCheckInterval is how many steps pass between context checks.
const ctxCheckInterval = 1024

// Loop is a closed walk: the revisited slice followed by the node that
// closed it, so the first and last nodes are equal.
type Loop []hierarchy.Node

// Review is a revisit whose classification depends on how the rise scan is
// read. Status is the classification that was applied; Alternate is the
// outcome under the first-node reading.
type Review struct {
	Slice     []hierarchy.Node
	Status    Status
	Alternate Status
}

// Findings is the outcome of one detector run.
type Findings struct {
	Loops   []Loop   // in discovery order, not deduplicated
	Reviews []Review // deduplicated by node set
	Seeds   int      // searches started
	Steps   int      // candidates evaluated
}

// Option configures [Detect].
type Option func(*detector)

// WithMaxSteps bounds the number of candidates evaluated. Zero means
// unbounded.
func WithMaxSteps(n int) Option { return func(d *detector) { d.maxSteps = n } }

type detector struct {
	graph    *hierarchy.Graph
	links    *linkage.Linkages
	maxSteps int

	queued   map[hierarchy.Node]bool
	reviewed map[string]bool
	found    Findings
}

// frame is one level of the explicit search stack.
type frame struct {
	node  hierarchy.Node
	cands []hierarchy.Node
	next  int
}

// Detect searches g overlaid with l for loops. Every node touched by a
// linkage seeds a search, taken last first; nodes reached by any search are
// removed from the seed queue. Detection fails only when ctx is done or the
// step limit is exceeded.
func Detect(ctx context.Context, g *hierarchy.Graph, l *linkage.Linkages, opts ...Option) (*Findings, error) {
	if g == nil || l == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "detect: graph and linkages are required")
	}
	d := &detector{
		graph:    g,
		links:    l,
		queued:   make(map[hierarchy.Node]bool),
		reviewed: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(d)
	}

	queue := l.Nodes()
	for _, n := range queue {
		d.queued[n] = true
	}
	for len(queue) > 0 {
		seed := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if !d.queued[seed] {
			continue
		}
		d.queued[seed] = false
		d.found.Seeds++
		if err := d.search(ctx, seed); err != nil {
			return nil, err
		}
	}
	return &d.found, nil
}

func (d *detector) search(ctx context.Context, seed hierarchy.Node) error {
	path := []hierarchy.Node{seed}
	onPath := map[hierarchy.Node]int{seed: 0}
	stack := []frame{d.expand(seed)}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next >= len(top.cands) {
			delete(onPath, top.node)
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
			continue
		}
		cand := top.cands[top.next]
		top.next++

		if err := d.step(ctx); err != nil {
			return err
		}
		d.queued[cand] = false

		idx, seen := onPath[cand]
		if !seen {
			onPath[cand] = len(path)
			path = append(path, cand)
			stack = append(stack, d.expand(cand))
			continue
		}

		slice := path[idx:]
		status := classifySlice(slice, previousNode)
		if alt := classifySlice(slice, firstNode); alt != status {
			d.review(slice, status, alt)
		}
		if status == HasLoop {
			loop := make(Loop, 0, len(slice)+1)
			loop = append(append(loop, slice...), cand)
			d.found.Loops = append(d.found.Loops, loop)
		}
	}
	return nil
}

func (d *detector) step(ctx context.Context) error {
	d.found.Steps++
	if d.maxSteps > 0 && d.found.Steps > d.maxSteps {
		return errors.New(errors.ErrCodeStepLimit, "detect: exceeded %d steps", d.maxSteps)
	}
	if d.found.Steps%ctxCheckInterval == 0 {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(errors.ErrCodeCancelled, err, "detect")
		}
	}
	return nil
}

// expand lists the neighbours of n in search order: children, parent, then
// linkage sources. Nodes at home depth are not expanded.
func (d *detector) expand(n hierarchy.Node) frame {
	f := frame{node: n}
	if n.IsRoot() {
		return f
	}
	add := func(c hierarchy.Node) {
		if !slices.Contains(f.cands, c) {
			f.cands = append(f.cands, c)
		}
	}
	for _, c := range d.graph.Children(n) {
		add(c)
	}
	if p, ok := d.graph.Parent(n); ok {
		add(p)
	}
	if !d.links.IsDestination(n) {
		return f
	}
	for _, e := range d.links.Sources(n) {
		add(e.From)
	}
	return f
}

func (d *detector) review(slice []hierarchy.Node, status, alt Status) {
	key := setKey(slice)
	if d.reviewed[key] {
		return
	}
	d.reviewed[key] = true
	d.found.Reviews = append(d.found.Reviews, Review{
		Slice:     slices.Clone(slice),
		Status:    status,
		Alternate: alt,
	})
}
