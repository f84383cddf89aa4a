package sim

// ResourcePool tracks total and available memory and device units.
// Available counts always stay within [0, total]: Allocate and Release clamp
// instead of underflowing or overflowing.
type ResourcePool struct {
	totalMemory      int
	availableMemory  int
	totalDevices     int
	availableDevices int
}

// NewResourcePool creates a pool with everything available.
func NewResourcePool(totalMemory, totalDevices int) *ResourcePool {
	p := &ResourcePool{}
	p.Configure(totalMemory, totalDevices)
	return p
}

// Configure resets both totals and makes all capacity available.
// Negative totals are treated as zero.
func (p *ResourcePool) Configure(totalMemory, totalDevices int) {
	p.totalMemory = max(totalMemory, 0)
	p.availableMemory = p.totalMemory
	p.totalDevices = max(totalDevices, 0)
	p.availableDevices = p.totalDevices
}

func (p *ResourcePool) TotalMemory() int      { return p.totalMemory }
func (p *ResourcePool) AvailableMemory() int  { return p.availableMemory }
func (p *ResourcePool) TotalDevices() int     { return p.totalDevices }
func (p *ResourcePool) AvailableDevices() int { return p.availableDevices }

// CanAllocate reports whether the request fits in the currently available capacity.
func (p *ResourcePool) CanAllocate(memory, devices int) bool {
	return memory <= p.availableMemory && devices <= p.availableDevices
}

// Exceeds reports whether the request is larger than the total capacity in
// either dimension, i.e. it could never fit even with the system idle.
func (p *ResourcePool) Exceeds(memory, devices int) bool {
	return memory > p.totalMemory || devices > p.totalDevices
}

// Allocate takes the given units, clamping available counts at zero.
func (p *ResourcePool) Allocate(memory, devices int) {
	p.availableMemory = clamp(p.availableMemory-memory, 0, p.totalMemory)
	p.availableDevices = clamp(p.availableDevices-devices, 0, p.totalDevices)
}

// Release returns the given units, clamping available counts at the totals.
// Over-release is silently absorbed.
func (p *ResourcePool) Release(memory, devices int) {
	p.availableMemory = clamp(p.availableMemory+memory, 0, p.totalMemory)
	p.availableDevices = clamp(p.availableDevices+devices, 0, p.totalDevices)
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
