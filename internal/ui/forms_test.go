package ui

import (
	"reflect"
	"strings"
	"testing"
)

func settingsValues(set map[int]string) []string {
	values := make([]string, settingsFieldCount)
	for i, v := range set {
		values[i] = v
	}
	return values
}

func TestParseSettingsInputs(t *testing.T) {
	tests := []struct {
		name     string
		values   map[int]string
		wantKeys []string
		wantErr  string
	}{
		{
			name:     "all blank is an empty patch",
			values:   nil,
			wantKeys: []string{},
		},
		{
			name:     "fan only",
			values:   map[int]string{fieldFanSpeed: "75"},
			wantKeys: []string{"fanspeed"},
		},
		{
			name: "pool settings",
			values: map[int]string{
				fieldStratumURL:      "public-pool.io",
				fieldStratumPort:     "21496",
				fieldStratumUser:     "bc1qexample.worker",
				fieldStratumPassword: "x",
			},
			wantKeys: []string{"stratumURL", "stratumPort", "stratumUser", "stratumPassword"},
		},
		{
			name:     "tuning",
			values:   map[int]string{fieldFrequency: "575", fieldCoreVoltage: "1200"},
			wantKeys: []string{"frequency", "coreVoltage"},
		},
		{
			name:    "port zero",
			values:  map[int]string{fieldStratumPort: "0"},
			wantErr: "stratum port",
		},
		{
			name:    "port too large",
			values:  map[int]string{fieldStratumPort: "70000"},
			wantErr: "stratum port",
		},
		{
			name:    "fan above 100",
			values:  map[int]string{fieldFanSpeed: "101"},
			wantErr: "fan speed",
		},
		{
			name:    "fan not a number",
			values:  map[int]string{fieldFanSpeed: "fast"},
			wantErr: "fan speed",
		},
		{
			name:    "negative frequency",
			values:  map[int]string{fieldFrequency: "-5"},
			wantErr: "frequency",
		},
		{
			name:    "voltage with unit",
			values:  map[int]string{fieldCoreVoltage: "1.2V"},
			wantErr: "core voltage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, err := parseSettingsInputs(settingsValues(tt.values))
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want mention of %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got := patch.Keys(); !reflect.DeepEqual(got, tt.wantKeys) {
				t.Fatalf("keys = %v, want %v", got, tt.wantKeys)
			}
		})
	}
}

func TestParseSettingsInputs_WrongCount(t *testing.T) {
	if _, err := parseSettingsInputs([]string{"a"}); err == nil {
		t.Fatal("expected error for short value list")
	}
}

func TestSettingsModal_CurrentValuesArePlaceholdersOnly(t *testing.T) {
	m, _ := newTestModel(t, nil, "10.0.0.5")
	m, _ = press(t, m, "s")
	form, ok := m.modal.(*settingsModal)
	if !ok {
		t.Fatalf("modal = %T, want settings form", m.modal)
	}
	for i, v := range form.values() {
		if v != "" {
			t.Fatalf("field %d prefilled with %q; untouched fields must stay out of the patch", i, v)
		}
	}
}
