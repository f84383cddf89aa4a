// Package workload turns the line-oriented command input into sim.Command
// values. Malformed lines are dropped here and never reach the simulator.
package workload

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/jobsched/sim"
)

// LoadCommandsFile reads every command from the file at path.
func LoadCommandsFile(path string) ([]sim.Command, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening command file: %w", err)
	}
	defer f.Close()
	return LoadCommands(f)
}

// LoadCommands reads commands line by line. Each command keeps the 1-based
// position of its line as its input order.
func LoadCommands(r io.Reader) ([]sim.Command, error) {
	var cmds []sim.Command
	scanner := bufio.NewScanner(r)
	var lineNo uint64
	dropped := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, ok := ParseLine(line, lineNo)
		if !ok {
			dropped++
			logrus.Debugf("dropping input line %d: %q", lineNo, line)
			continue
		}
		cmds = append(cmds, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading commands: %w", err)
	}
	logrus.Infof("loaded %d command(s), dropped %d line(s)", len(cmds), dropped)
	return cmds, nil
}

// ParseLine converts one line into a command. ok is false for lines that
// must be ignored: unknown leading tag, missing or unparsable time, or any
// unparsable numeric field.
func ParseLine(line string, order uint64) (sim.Command, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, false
	}
	tag := sim.CommandKind(strings.ToUpper(line[:1])[0])
	switch tag {
	case sim.KindConfig, sim.KindArrival, sim.KindDisplay, sim.KindSwitch:
	default:
		return nil, false
	}

	toks := strings.Fields(line)
	if len(toks) < 2 {
		return nil, false
	}
	t, err := strconv.ParseFloat(toks[1], 64)
	if err != nil || math.IsNaN(t) || math.IsInf(t, 0) {
		return nil, false
	}
	header := sim.CommandHeader{Time: t, Seq: order, Raw: line}
	fields := toks[2:]

	switch tag {
	case sim.KindConfig:
		return parseConfig(header, fields)
	case sim.KindArrival:
		return parseArrival(header, fields)
	case sim.KindDisplay:
		return &sim.DisplayCommand{CommandHeader: header}, true
	default:
		mode := ""
		if len(fields) > 0 {
			mode = fields[0]
		}
		return &sim.SwitchCommand{CommandHeader: header, Mode: mode}, true
	}
}

func parseConfig(h sim.CommandHeader, fields []string) (sim.Command, bool) {
	c := &sim.ConfigCommand{CommandHeader: h}
	for _, f := range fields {
		key, val, ok := splitField(f)
		if !ok {
			continue
		}
		var dst **int
		switch key {
		case "M":
			dst = &c.Memory
		case "S":
			dst = &c.Devices
		case "TEAM":
			dst = &c.Team
		default:
			continue
		}
		n, err := strconv.Atoi(val)
		if err != nil {
			return nil, false
		}
		*dst = &n
	}
	return c, true
}

func parseArrival(h sim.CommandHeader, fields []string) (sim.Command, bool) {
	j := sim.Job{ArrivalTime: h.Time, Priority: 1}
	for _, f := range fields {
		key, val, ok := splitField(f)
		if !ok {
			continue
		}
		var err error
		switch key {
		case "J":
			j.ID, err = strconv.Atoi(val)
		case "M":
			j.Memory, err = strconv.Atoi(val)
		case "S":
			j.Devices, err = strconv.Atoi(val)
		case "R":
			j.ServiceTime, err = strconv.ParseFloat(val, 64)
			if err == nil && (math.IsNaN(j.ServiceTime) || math.IsInf(j.ServiceTime, 0)) {
				err = fmt.Errorf("non-finite service time %q", val)
			}
		case "P":
			j.Priority, err = strconv.Atoi(val)
		}
		if err != nil {
			return nil, false
		}
	}
	return &sim.ArrivalCommand{CommandHeader: h, Job: j}, true
}

// splitField splits a KEY=VALUE token; the key is upper-cased.
func splitField(tok string) (key, val string, ok bool) {
	key, val, ok = strings.Cut(tok, "=")
	if !ok {
		return "", "", false
	}
	return strings.ToUpper(key), val, true
}
