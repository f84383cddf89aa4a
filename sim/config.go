package sim

// DefaultQuantumBase is added to the team offset to derive the static quantum.
const DefaultQuantumBase = 10

// SimConfig groups the initial state of a simulation.
// A configuration command later in the input overrides these values.
type SimConfig struct {
	TotalMemory  int        // initial memory units (0 until configured)
	TotalDevices int        // initial device units (0 until configured)
	Team         int        // team offset; static quantum = QuantumBase + Team
	QuantumBase  int        // base of the static quantum
	Policy       PolicyKind // active policy before the first configuration command
}

// NewSimConfig creates a SimConfig with the default quantum base and the dynamic policy.
func NewSimConfig(totalMemory, totalDevices, team int) SimConfig {
	return SimConfig{
		TotalMemory:  totalMemory,
		TotalDevices: totalDevices,
		Team:         team,
		QuantumBase:  DefaultQuantumBase,
		Policy:       PolicyDynamic,
	}
}

// StaticQuantum returns the configured static slice before the lower bound of 1 is applied.
func (c SimConfig) StaticQuantum(team int) int {
	return c.QuantumBase + team
}
