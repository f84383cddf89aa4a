package sim

import (
	"fmt"
)

// recordingReporter keeps every snapshot and notice for inspection.
type recordingReporter struct {
	snapshots []Snapshot
	notices   []string
}

func (r *recordingReporter) Report(s Snapshot) { r.snapshots = append(r.snapshots, s) }
func (r *recordingReporter) Notice(msg string) { r.notices = append(r.notices, msg) }

func intPtr(v int) *int { return &v }

// cmdBuilder hands out commands with increasing input order, as if each
// were the next line of a command file.
type cmdBuilder struct {
	seq uint64
}

func (b *cmdBuilder) header(t float64, raw string) CommandHeader {
	b.seq++
	return CommandHeader{Time: t, Seq: b.seq, Raw: raw}
}

func (b *cmdBuilder) config(t float64, mem, dev int) *ConfigCommand {
	return &ConfigCommand{
		CommandHeader: b.header(t, fmt.Sprintf("C %g M=%d S=%d", t, mem, dev)),
		Memory:        intPtr(mem),
		Devices:       intPtr(dev),
	}
}

func (b *cmdBuilder) configTeam(t float64, mem, dev, team int) *ConfigCommand {
	c := b.config(t, mem, dev)
	c.Raw = fmt.Sprintf("%s TEAM=%d", c.Raw, team)
	c.Team = intPtr(team)
	return c
}

func (b *cmdBuilder) arrival(t float64, id, mem, dev int, service float64, prio int) *ArrivalCommand {
	return &ArrivalCommand{
		CommandHeader: b.header(t, fmt.Sprintf("A %g J=%d M=%d S=%d R=%g P=%d", t, id, mem, dev, service, prio)),
		Job: Job{
			ID:          id,
			ArrivalTime: t,
			Memory:      mem,
			Devices:     dev,
			ServiceTime: service,
			Priority:    prio,
		},
	}
}

func (b *cmdBuilder) display(t float64) *DisplayCommand {
	return &DisplayCommand{CommandHeader: b.header(t, fmt.Sprintf("D %g", t))}
}

func (b *cmdBuilder) switchTo(t float64, mode string) *SwitchCommand {
	return &SwitchCommand{CommandHeader: b.header(t, fmt.Sprintf("S %g %s", t, mode)), Mode: mode}
}

func newTestSimulator(rep Reporter) *Simulator {
	return NewSimulator(NewSimConfig(0, 0, 0), rep)
}

func finishedIDs(recs []FinishedRecord) []int {
	ids := make([]int, len(recs))
	for i, r := range recs {
		ids[i] = r.JobID
	}
	return ids
}

func jobIDs(jobs []Job) []int {
	ids := make([]int, len(jobs))
	for i, j := range jobs {
		ids[i] = j.ID
	}
	return ids
}

func processIDs(ps []*Process) []int {
	ids := make([]int, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}
