package rule

import (
	"cmp"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/mlange-42/ark/ecs"
)

// Entry is the ECS component stored for every registered rule.
type Entry[T comparable] struct {
	Rule *Rule[T]
	seq  uint64
}

// Registry keeps the active rule set as entities of an ark world so rules
// can be added and removed between ticks.
type Registry[T comparable] struct {
	world   *ecs.World
	mapper  *ecs.Map1[Entry[T]]
	filter  *ecs.Filter1[Entry[T]]
	nextSeq uint64
	logger  *slog.Logger
}

// NewRegistry creates an empty registry. A nil logger discards output.
func NewRegistry[T comparable](logger *slog.Logger) *Registry[T] {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	world := ecs.NewWorld()
	return &Registry[T]{
		world:  world,
		mapper: ecs.NewMap1[Entry[T]](world),
		filter: ecs.NewFilter1[Entry[T]](world),
		logger: logger,
	}
}

// Add validates r and stores it. Malformed rules are rejected and logged.
func (reg *Registry[T]) Add(r *Rule[T]) (ecs.Entity, error) {
	if r == nil {
		return ecs.Entity{}, fmt.Errorf("%w: nil rule", ErrInvalidRule)
	}
	if err := r.Validate(); err != nil {
		reg.logger.Warn("rule rejected", "rule", r.String(), "error", err)
		return ecs.Entity{}, err
	}
	entry := Entry[T]{Rule: r, seq: reg.nextSeq}
	reg.nextSeq++
	e := reg.mapper.NewEntity(&entry)
	reg.logger.Debug("rule added", "rule", r.String(), "dims", r.Dimensions().String())
	return e, nil
}

// AddAll adds every rule and returns the number accepted along with the
// validation errors of the rejected ones.
func (reg *Registry[T]) AddAll(rules []*Rule[T]) (int, []error) {
	var errs []error
	added := 0
	for _, r := range rules {
		if _, err := reg.Add(r); err != nil {
			errs = append(errs, err)
			continue
		}
		added++
	}
	return added, errs
}

// Remove drops the rule stored under e. It reports false for stale entities.
func (reg *Registry[T]) Remove(e ecs.Entity) bool {
	if !reg.world.Alive(e) {
		return false
	}
	if entry := reg.mapper.Get(e); entry != nil {
		reg.logger.Debug("rule removed", "rule", entry.Rule.String())
	}
	reg.world.RemoveEntity(e)
	return true
}

// Rules returns the registered rules in insertion order.
func (reg *Registry[T]) Rules() []*Rule[T] {
	var entries []Entry[T]
	query := reg.filter.Query()
	for query.Next() {
		entries = append(entries, *query.Get())
	}
	slices.SortFunc(entries, func(a, b Entry[T]) int { return cmp.Compare(a.seq, b.seq) })

	rules := make([]*Rule[T], len(entries))
	for i, e := range entries {
		rules[i] = e.Rule
	}
	return rules
}

// Len reports how many rules are registered.
func (reg *Registry[T]) Len() int {
	n := 0
	query := reg.filter.Query()
	for query.Next() {
		n++
	}
	return n
}
