package axeos

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Telemetry is the raw document served by the first telemetry endpoint that
// answered successfully.
type Telemetry struct {
	Address  string
	Endpoint string
	Document json.RawMessage
}

// Snapshot parses the document into normalized fields.
func (t Telemetry) Snapshot() (Snapshot, error) {
	return ParseSnapshot(t.Document)
}

// RestartResult confirms a restart command. StatusCode is whatever the
// firmware answered with and is informational only.
type RestartResult struct {
	Message    string
	StatusCode int
}

// Snapshot is the normalized telemetry record. Firmware builds omit fields
// inconsistently, so every field is optional.
type Snapshot struct {
	Hostname  *string
	ASICModel *string
	Version   *string

	HashRate    *float64 // GH/s as reported by firmware
	Temperature *float64 // °C
	Power       *float64 // W

	CoreVoltage       *float64 // requested, mV
	CoreVoltageActual *float64 // measured, mV
	InputVoltage      *float64 // mV

	UptimeSeconds  *uint64
	SharesAccepted *uint64
	SharesRejected *uint64

	Frequency   *float64 // MHz
	FanSpeed    *float64 // percent
	StratumURL  *string
	StratumPort *uint64
	StratumUser *string

	BestDiff        *float64 // all-time best share difficulty
	BestSessionDiff *float64 // best since boot
}

// ParseSnapshot extracts known fields from a telemetry document. Missing or
// mistyped fields are left nil; only a document that is not a JSON object
// is an error.
func ParseSnapshot(doc []byte) (Snapshot, error) {
	var fields map[string]any
	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return Snapshot{}, fmt.Errorf("decode telemetry: %w", err)
	}
	if fields == nil {
		return Snapshot{}, fmt.Errorf("decode telemetry: document is not an object")
	}

	return Snapshot{
		Hostname:  stringField(fields, "hostname"),
		ASICModel: stringField(fields, "ASICModel"),
		Version:   stringField(fields, "version"),

		HashRate:    floatField(fields, "hashRate"),
		Temperature: floatField(fields, "temp"),
		Power:       floatField(fields, "power"),

		CoreVoltage:       floatField(fields, "coreVoltage"),
		CoreVoltageActual: floatField(fields, "coreVoltageActual"),
		InputVoltage:      floatField(fields, "voltage"),

		UptimeSeconds:  uintField(fields, "uptimeSeconds"),
		SharesAccepted: uintField(fields, "sharesAccepted"),
		SharesRejected: uintField(fields, "sharesRejected"),

		Frequency:   floatField(fields, "frequency"),
		FanSpeed:    floatField(fields, "fanspeed"),
		StratumURL:  stringField(fields, "stratumURL"),
		StratumPort: uintField(fields, "stratumPort"),
		StratumUser: stringField(fields, "stratumUser"),

		BestDiff:        diffField(fields, "bestDiff"),
		BestSessionDiff: diffField(fields, "bestSessionDiff"),
	}, nil
}

// Label returns the best human name for the miner.
func (s Snapshot) Label() string {
	if s.Hostname != nil && strings.TrimSpace(*s.Hostname) != "" {
		return strings.TrimSpace(*s.Hostname)
	}
	if s.ASICModel != nil {
		return *s.ASICModel
	}
	return ""
}

func stringField(fields map[string]any, key string) *string {
	switch v := fields[key].(type) {
	case string:
		return &v
	case json.Number:
		s := v.String()
		return &s
	}
	return nil
}

func floatField(fields map[string]any, key string) *float64 {
	var (
		f   float64
		err error
	)
	switch v := fields[key].(type) {
	case json.Number:
		f, err = v.Float64()
	case string:
		f, err = strconv.ParseFloat(strings.TrimSpace(v), 64)
	default:
		return nil
	}
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// diffSuffixes are the SI suffixes firmware uses for difficulty strings
// such as "4.29G".
var diffSuffixes = map[byte]float64{
	'k': 1e3, 'K': 1e3,
	'M': 1e6,
	'G': 1e9,
	'T': 1e12,
	'P': 1e15,
	'E': 1e18,
}

// diffField reads a difficulty reported either as a number or as a string
// with an optional SI suffix.
func diffField(fields map[string]any, key string) *float64 {
	v, ok := fields[key].(string)
	if !ok {
		return floatField(fields, key)
	}
	raw := strings.TrimSpace(v)
	if raw == "" {
		return nil
	}
	scale := 1.0
	if m, ok := diffSuffixes[raw[len(raw)-1]]; ok {
		scale = m
		raw = strings.TrimSpace(raw[:len(raw)-1])
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	f *= scale
	return &f
}

// BestDifficulty returns the all-time best difficulty, falling back to the
// session best on firmware that only reports that.
func (s Snapshot) BestDifficulty() (float64, bool) {
	switch {
	case s.BestDiff != nil && *s.BestDiff > 0:
		return *s.BestDiff, true
	case s.BestSessionDiff != nil:
		return *s.BestSessionDiff, true
	}
	return 0, false
}

// FormatDifficulty abbreviates a share difficulty the way pool dashboards
// do: 4290000000 becomes "4.29B".
func FormatDifficulty(d float64) string {
	switch {
	case d >= 1e12:
		return fmt.Sprintf("%.2fT", d/1e12)
	case d >= 1e9:
		return fmt.Sprintf("%.2fB", d/1e9)
	case d >= 1e6:
		return fmt.Sprintf("%.2fM", d/1e6)
	case d >= 1e3:
		return fmt.Sprintf("%.2fK", d/1e3)
	}
	return strconv.FormatFloat(d, 'f', -1, 64)
}

func uintField(fields map[string]any, key string) *uint64 {
	var raw string
	switch v := fields[key].(type) {
	case json.Number:
		raw = v.String()
	case string:
		raw = strings.TrimSpace(v)
	default:
		return nil
	}
	if n, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return &n
	}
	// Some builds report counters as floats ("123.0").
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < 0 || math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxUint64 {
		return nil
	}
	n := uint64(f)
	return &n
}
