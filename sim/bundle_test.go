package sim

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPolicyBundle_ValidYAML(t *testing.T) {
	yaml := `
policy: static
quantum_base: 20
team: 3
memory: 512
devices: 8
trace: decisions
`
	path := writeTempYAML(t, yaml)
	bundle, err := LoadPolicyBundle(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bundle.Policy != "static" {
		t.Errorf("expected policy 'static', got %q", bundle.Policy)
	}
	if bundle.QuantumBase == nil || *bundle.QuantumBase != 20 {
		t.Errorf("expected quantum base 20, got %v", bundle.QuantumBase)
	}
	if bundle.Team == nil || *bundle.Team != 3 {
		t.Errorf("expected team 3, got %v", bundle.Team)
	}
	if bundle.Memory == nil || *bundle.Memory != 512 {
		t.Errorf("expected memory 512, got %v", bundle.Memory)
	}
	if bundle.Devices == nil || *bundle.Devices != 8 {
		t.Errorf("expected devices 8, got %v", bundle.Devices)
	}
	if bundle.Trace != "decisions" {
		t.Errorf("expected trace 'decisions', got %q", bundle.Trace)
	}
}

func TestLoadPolicyBundle_ZeroValueIsDistinctFromUnset(t *testing.T) {
	path := writeTempYAML(t, "team: 0\n")
	bundle, err := LoadPolicyBundle(path)
	require.NoError(t, err)

	// team: 0 is explicitly set, the other fields are not
	require.NotNil(t, bundle.Team)
	assert.Equal(t, 0, *bundle.Team)
	assert.Nil(t, bundle.QuantumBase)
	assert.Nil(t, bundle.Memory)
	assert.Nil(t, bundle.Devices)
	assert.Empty(t, bundle.Policy)
}

func TestLoadPolicyBundle_EmptyFile(t *testing.T) {
	path := writeTempYAML(t, "")
	bundle, err := LoadPolicyBundle(path)
	require.NoError(t, err)
	assert.Equal(t, &PolicyBundle{}, bundle)
}

func TestLoadPolicyBundle_UnknownKeyRejected(t *testing.T) {
	path := writeTempYAML(t, "polcy: fcfs\n")
	_, err := LoadPolicyBundle(path)
	assert.Error(t, err)
}

func TestLoadPolicyBundle_MalformedYAML(t *testing.T) {
	path := writeTempYAML(t, "team: [1, 2\n")
	_, err := LoadPolicyBundle(path)
	assert.Error(t, err)
}

func TestLoadPolicyBundle_MissingFile(t *testing.T) {
	_, err := LoadPolicyBundle(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPolicyBundle_Validate(t *testing.T) {
	tests := []struct {
		name    string
		bundle  PolicyBundle
		wantErr bool
	}{
		{"empty bundle", PolicyBundle{}, false},
		{"all valid", PolicyBundle{Policy: "fcfs", QuantumBase: intPtr(4), Memory: intPtr(0), Devices: intPtr(2), Trace: "none"}, false},
		{"negative team is allowed", PolicyBundle{Team: intPtr(-12)}, false},
		{"unknown policy", PolicyBundle{Policy: "lottery"}, true},
		{"policy names are lower case", PolicyBundle{Policy: "FCFS"}, true},
		{"unknown trace level", PolicyBundle{Trace: "verbose"}, true},
		{"negative quantum base", PolicyBundle{QuantumBase: intPtr(-1)}, true},
		{"negative memory", PolicyBundle{Memory: intPtr(-1)}, true},
		{"negative devices", PolicyBundle{Devices: intPtr(-3)}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.bundle.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPolicyBundle_Apply_OverridesOnlySetFields(t *testing.T) {
	// GIVEN a config with every field set
	cfg := NewSimConfig(100, 2, 1)

	// WHEN a bundle sets the policy and the team only
	bundle := PolicyBundle{Policy: "fcfs", Team: intPtr(-4)}
	bundle.Apply(&cfg)

	// THEN the other fields keep their values
	assert.Equal(t, SimConfig{
		TotalMemory:  100,
		TotalDevices: 2,
		Team:         -4,
		QuantumBase:  DefaultQuantumBase,
		Policy:       PolicyFCFS,
	}, cfg)
}

func writeTempYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "defaults.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
