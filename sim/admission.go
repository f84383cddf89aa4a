package sim

import (
	"github.com/sirupsen/logrus"
)

// AdmissionOutcome is the immediate result of submitting a job.
type AdmissionOutcome string

const (
	Admitted AdmissionOutcome = "admitted"
	HeldQ1   AdmissionOutcome = "held-q1"
	HeldQ2   AdmissionOutcome = "held-q2"
	Rejected AdmissionOutcome = "rejected"
)

// AdmissionManager owns the ready queue and both hold queues and decides,
// for each arriving job, whether to admit, hold or reject it.
type AdmissionManager struct {
	pool  *ResourcePool
	Ready *ReadyQueue
	Hold1 *HoldQueue1
	Hold2 *HoldQueue2

	nextSerial uint64
}

// NewAdmissionManager creates an AdmissionManager allocating from pool.
func NewAdmissionManager(pool *ResourcePool) *AdmissionManager {
	if pool == nil {
		panic("NewAdmissionManager: pool must not be nil")
	}
	return &AdmissionManager{
		pool:  pool,
		Ready: &ReadyQueue{},
		Hold1: &HoldQueue1{},
		Hold2: &HoldQueue2{},
	}
}

// Submit assigns the job its arrival serial and admits, holds or rejects it.
// A job larger than the total capacity is dropped without a trace.
// On Admitted the new process is at the back of the ready queue and the
// caller is expected to give the dispatcher a chance to start it.
func (am *AdmissionManager) Submit(job Job, now float64) AdmissionOutcome {
	am.nextSerial++
	job.Serial = am.nextSerial

	if am.pool.Exceeds(job.Memory, job.Devices) {
		logrus.Debugf("[t=%.2f] job %d rejected: requests M=%d S=%d, system has M=%d S=%d",
			now, job.ID, job.Memory, job.Devices, am.pool.TotalMemory(), am.pool.TotalDevices())
		return Rejected
	}
	if am.tryAdmit(job, now) != nil {
		logrus.Debugf("[t=%.2f] job %d admitted", now, job.ID)
		return Admitted
	}
	if job.Priority == 1 {
		am.Hold1.Enqueue(job)
		logrus.Debugf("[t=%.2f] job %d held in hold queue 1", now, job.ID)
		return HeldQ1
	}
	am.Hold2.Enqueue(job)
	logrus.Debugf("[t=%.2f] job %d held in hold queue 2", now, job.ID)
	return HeldQ2
}

// Reclaim re-scans the hold queues after resources were released.
// Hold queue 1 is scanned first and every fitting job is admitted; hold
// queue 2 is then drained in FIFO order up to its first non-fitting job.
// The two-phase scan repeats until a full pass admits nothing.
// Returns the admitted processes in admission order.
func (am *AdmissionManager) Reclaim(now float64) []*Process {
	var admitted []*Process
	admit := func(j Job) bool {
		p := am.tryAdmit(j, now)
		if p == nil {
			return false
		}
		admitted = append(admitted, p)
		return true
	}
	for {
		moved := am.Hold1.Drain(admit)
		moved += am.Hold2.Drain(admit)
		if moved == 0 {
			break
		}
	}
	if len(admitted) > 0 {
		logrus.Debugf("[t=%.2f] reclaimed %d held job(s)", now, len(admitted))
	}
	return admitted
}

// Waiting reports whether any process is ready or any job is held.
func (am *AdmissionManager) Waiting() bool {
	return am.Ready.Len() > 0 || am.Hold1.Len() > 0 || am.Hold2.Len() > 0
}

// Held returns the number of jobs in both hold queues.
func (am *AdmissionManager) Held() int {
	return am.Hold1.Len() + am.Hold2.Len()
}

// tryAdmit allocates the job's resources and enqueues its process, or returns nil.
func (am *AdmissionManager) tryAdmit(j Job, now float64) *Process {
	if !am.pool.CanAllocate(j.Memory, j.Devices) {
		return nil
	}
	am.pool.Allocate(j.Memory, j.Devices)
	p := NewProcess(j, now)
	am.Ready.Enqueue(p)
	return p
}
