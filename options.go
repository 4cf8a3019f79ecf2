// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package bq

// Options configures queue creation and variant selection.
type Options struct {
	// Variant selection
	joinable bool
	growable bool

	// Growable lock discipline
	unified  bool
	unlocked bool

	// Growable shrink-on-mostly-empty
	autoShrink bool

	// Capacity (exact; never rounded or clamped)
	capacity int
}

// Builder creates queues with fluent configuration.
//
// Example:
//
//	// Blocking bounded queue
//	q := bq.Build[Event](bq.New(64))
//
//	// Completion-tracked queue
//	q := bq.Build[Task](bq.New(64).Joinable())
//
//	// Resizable queue, one mutex, shrink when mostly empty
//	q := bq.Build[int](bq.New(8).Growable().UnifiedLock().AutoShrink())
type Builder struct {
	opts Options
}

// New creates a queue builder with the given capacity.
//
// For Bounded and Joinable the capacity is the fixed maximum; for
// Growable it is the initial buffer size. Panics if capacity < 1.
func New(capacity int) *Builder {
	if capacity < 1 {
		panic("bq: capacity must be >= 1")
	}
	return &Builder{opts: Options{capacity: capacity}}
}

// Joinable selects the completion-tracked blocking variant.
// Incompatible with Growable.
func (b *Builder) Joinable() *Builder {
	b.opts.joinable = true
	return b
}

// Growable selects the resizable split-lock variant.
// Incompatible with Joinable.
func (b *Builder) Growable() *Builder {
	b.opts.growable = true
	return b
}

// UnifiedLock makes a Growable queue guard both sides with one mutex,
// so producers and consumers never touch the buffer or its indices
// unsynchronized. The check-then-act gap between HasItem and Dequeue is
// a property of the two-call API and remains: with multiple consumers,
// Dequeue can still report ErrEmpty after a positive check.
// Implies Growable.
func (b *Builder) UnifiedLock() *Builder {
	b.opts.growable = true
	b.opts.unified = true
	return b
}

// Unlocked makes a Growable queue take no locks at all. Any concurrent
// use is a data race; intended for demonstrating what the locks buy.
// Implies Growable.
func (b *Builder) Unlocked() *Builder {
	b.opts.growable = true
	b.opts.unlocked = true
	return b
}

// AutoShrink makes a Growable queue halve its buffer when it is at most
// half full and above the floor capacity. Off by default: in split-lock
// mode concurrent grow and shrink acquire the two mutexes in opposite
// orders. Implies Growable.
func (b *Builder) AutoShrink() *Builder {
	b.opts.growable = true
	b.opts.autoShrink = true
	return b
}

// Build creates a Queue[T] from the builder configuration.
//
// Variant selection:
//
//	Growable()  → Growable (lock mode per UnifiedLock/Unlocked)
//	Joinable()  → Joinable
//	neither     → Bounded
//
// Panics if both Joinable() and Growable() are set, or if both
// UnifiedLock() and Unlocked() are set.
func Build[T any](b *Builder) Queue[T] {
	switch {
	case b.opts.growable && b.opts.joinable:
		panic("bq: Joinable and Growable are mutually exclusive")
	case b.opts.growable:
		return BuildGrowable[T](b)
	case b.opts.joinable:
		return NewJoinable[T](b.opts.capacity)
	default:
		return NewBounded[T](b.opts.capacity)
	}
}

// BuildBounded creates a Bounded queue with compile-time type safety.
// Panics if the builder selects another variant.
func BuildBounded[T any](b *Builder) *Bounded[T] {
	if b.opts.joinable || b.opts.growable {
		panic("bq: BuildBounded requires no variant constraints")
	}
	return NewBounded[T](b.opts.capacity)
}

// BuildJoinable creates a Joinable queue with compile-time type safety.
// Panics if the builder is not configured with Joinable() only.
func BuildJoinable[T any](b *Builder) *Joinable[T] {
	if !b.opts.joinable || b.opts.growable {
		panic("bq: BuildJoinable requires Joinable() without Growable()")
	}
	return NewJoinable[T](b.opts.capacity)
}

// BuildGrowable creates a Growable queue with compile-time type safety.
// Panics if the builder is not configured with Growable(), or if the
// lock configuration is contradictory.
func BuildGrowable[T any](b *Builder) *Growable[T] {
	if !b.opts.growable || b.opts.joinable {
		panic("bq: BuildGrowable requires Growable() without Joinable()")
	}
	if b.opts.unified && b.opts.unlocked {
		panic("bq: UnifiedLock and Unlocked are mutually exclusive")
	}
	mode := lockSplit
	switch {
	case b.opts.unified:
		mode = lockUnified
	case b.opts.unlocked:
		mode = lockNone
	}
	return newGrowable[T](b.opts.capacity, mode, b.opts.autoShrink)
}
