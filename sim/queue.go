// Implements the ready queue and the two hold queues.
// The ready queue holds admitted processes waiting for the CPU; the hold
// queues hold jobs that fit the system but not its currently free capacity.

package sim

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/gammazero/deque"
)

// ReadyQueue is a FIFO of processes waiting for the CPU.
// Insertion order is the only ordering key: a preempted process re-enters at the back.
type ReadyQueue struct {
	queue deque.Deque[*Process]
}

// Enqueue adds a process to the back of the ready queue.
func (rq *ReadyQueue) Enqueue(p *Process) {
	if p == nil {
		panic("Enqueue: process must not be nil")
	}
	p.State = StateReady
	rq.queue.PushBack(p)
}

// Dequeue removes the process at the front of the queue.
// Returns nil if the queue is empty.
func (rq *ReadyQueue) Dequeue() *Process {
	if rq.queue.Len() == 0 {
		return nil
	}
	return rq.queue.PopFront()
}

// Peek returns the process at the front without removing it, or nil.
func (rq *ReadyQueue) Peek() *Process {
	if rq.queue.Len() == 0 {
		return nil
	}
	return rq.queue.Front()
}

// Len returns the number of waiting processes.
func (rq *ReadyQueue) Len() int {
	return rq.queue.Len()
}

// RemainingWork sums the remaining service over every queued process, in queue order.
func (rq *ReadyQueue) RemainingWork() float64 {
	total := 0.0
	for i := 0; i < rq.queue.Len(); i++ {
		total += rq.queue.At(i).RemainingService
	}
	return total
}

// Items returns a copy of the queue contents, front first.
func (rq *ReadyQueue) Items() []*Process {
	items := make([]*Process, rq.queue.Len())
	for i := range items {
		items[i] = rq.queue.At(i)
	}
	return items
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, p := range rq.Items() {
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(fmt.Sprint(p.ID))
	}
	sb.WriteString("]")
	return sb.String()
}

// HoldQueue1 holds priority-1 jobs ordered by ascending requested memory,
// ties broken by ascending arrival serial.
type HoldQueue1 struct {
	jobs []Job
}

func compareHold1(a, b Job) int {
	if c := cmp.Compare(a.Memory, b.Memory); c != 0 {
		return c
	}
	return cmp.Compare(a.Serial, b.Serial)
}

// Enqueue inserts a job at its ordered position.
func (hq *HoldQueue1) Enqueue(j Job) {
	i, _ := slices.BinarySearchFunc(hq.jobs, j, compareHold1)
	hq.jobs = slices.Insert(hq.jobs, i, j)
}

// Len returns the number of held jobs.
func (hq *HoldQueue1) Len() int {
	return len(hq.jobs)
}

// Items returns a copy of the held jobs in admission order.
func (hq *HoldQueue1) Items() []Job {
	return slices.Clone(hq.jobs)
}

// Drain scans the queue in order and removes every job for which admit
// returns true. A job that does not fit does not block the jobs after it.
// Returns the number of jobs removed.
func (hq *HoldQueue1) Drain(admit func(Job) bool) int {
	kept := hq.jobs[:0]
	removed := 0
	for _, j := range hq.jobs {
		if admit(j) {
			removed++
			continue
		}
		kept = append(kept, j)
	}
	clear(hq.jobs[len(kept):])
	hq.jobs = kept
	return removed
}

// HoldQueue2 holds all other jobs in strict FIFO arrival order.
type HoldQueue2 struct {
	queue deque.Deque[Job]
}

// Enqueue adds a job to the back of the queue.
func (hq *HoldQueue2) Enqueue(j Job) {
	hq.queue.PushBack(j)
}

// Len returns the number of held jobs.
func (hq *HoldQueue2) Len() int {
	return hq.queue.Len()
}

// Items returns a copy of the held jobs, front first.
func (hq *HoldQueue2) Items() []Job {
	items := make([]Job, hq.queue.Len())
	for i := range items {
		items[i] = hq.queue.At(i)
	}
	return items
}

// Drain removes jobs from the front while admit returns true and stops at
// the first job that is refused, so a later arrival never passes it.
// Returns the number of jobs removed.
func (hq *HoldQueue2) Drain(admit func(Job) bool) int {
	removed := 0
	for hq.queue.Len() > 0 {
		if !admit(hq.queue.Front()) {
			break
		}
		hq.queue.PopFront()
		removed++
	}
	return removed
}
