package sim

import (
	"cmp"
	"math"

	"github.com/addrummond/heap"
)

// timelineEntry wraps a Command for the heap.
// Ordering: timestamp → kind rank → input order.
type timelineEntry struct {
	cmd Command
}

func (a *timelineEntry) Cmp(b *timelineEntry) int {
	if c := cmp.Compare(a.cmd.Timestamp(), b.cmd.Timestamp()); c != 0 {
		return c
	}
	if c := cmp.Compare(a.cmd.Kind().Rank(), b.cmd.Kind().Rank()); c != 0 {
		return c
	}
	return cmp.Compare(a.cmd.Order(), b.cmd.Order())
}

// Timeline holds pending external commands in a strict total order.
type Timeline struct {
	events heap.Heap[timelineEntry, heap.Min]
	n      int
}

// NewTimeline creates a timeline holding cmds.
func NewTimeline(cmds ...Command) *Timeline {
	tl := &Timeline{}
	for _, c := range cmds {
		tl.Schedule(c)
	}
	return tl
}

// Schedule adds a command to the timeline.
func (tl *Timeline) Schedule(c Command) {
	if c == nil {
		panic("Schedule: command must not be nil")
	}
	heap.PushOrderable(&tl.events, timelineEntry{cmd: c})
	tl.n++
}

// Len returns the number of pending commands.
func (tl *Timeline) Len() int {
	return tl.n
}

// Peek returns the next command without removing it.
func (tl *Timeline) Peek() (Command, bool) {
	e, ok := heap.Peek(&tl.events)
	if !ok {
		return nil, false
	}
	return e.cmd, true
}

// PopNext removes and returns the next command, or nil.
func (tl *Timeline) PopNext() Command {
	e, ok := heap.PopOrderable(&tl.events)
	if !ok {
		return nil
	}
	tl.n--
	return e.cmd
}

// NextTime returns the timestamp of the next command, or +Inf.
func (tl *Timeline) NextTime() float64 {
	c, ok := tl.Peek()
	if !ok {
		return math.Inf(1)
	}
	return c.Timestamp()
}

// eventSource identifies which source the loop should advance next.
type eventSource int

const (
	sourceNone     eventSource = iota // both sources exhausted or unreachable
	sourceInternal                    // CPU decision only
	sourceExternal                    // external command only
	sourceBoth                        // CPU decision first, then the command at the same time
)

// nextSource merges the two event sources. Internal events win exact ties
// (within Epsilon) and are then followed by the external command.
func nextSource(internal, external float64) eventSource {
	internalOK := !math.IsInf(internal, 1)
	externalOK := !math.IsInf(external, 1)
	switch {
	case !internalOK && !externalOK:
		return sourceNone
	case internalOK && externalOK && math.Abs(internal-external) < Epsilon:
		return sourceBoth
	case internal < external:
		return sourceInternal
	default:
		return sourceExternal
	}
}
