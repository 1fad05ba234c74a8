package axeos

import (
	"encoding/json"
	"fmt"
)

// SettingsPatch is a sparse settings update. Nil fields are left untouched on
// the miner and are never sent.
type SettingsPatch struct {
	StratumURL      *string
	StratumPort     *uint16
	StratumUser     *string
	StratumPassword *string
	FanSpeed        *uint8  // percent, 0-100
	Frequency       *uint16 // MHz
	CoreVoltage     *uint16 // mV
}

// settingsField maps one patch field to its firmware key.
type settingsField struct {
	key   string
	value func(p SettingsPatch) (any, bool)
}

// settingsFields is the wire-key table for PATCH /api/system. Keep it in sync
// with the firmware's accepted keys.
var settingsFields = []settingsField{
	{key: "stratumURL", value: func(p SettingsPatch) (any, bool) { return deref(p.StratumURL) }},
	{key: "stratumPort", value: func(p SettingsPatch) (any, bool) { return deref(p.StratumPort) }},
	{key: "stratumUser", value: func(p SettingsPatch) (any, bool) { return deref(p.StratumUser) }},
	{key: "stratumPassword", value: func(p SettingsPatch) (any, bool) { return deref(p.StratumPassword) }},
	{key: "fanspeed", value: func(p SettingsPatch) (any, bool) { return deref(p.FanSpeed) }},
	{key: "frequency", value: func(p SettingsPatch) (any, bool) { return deref(p.Frequency) }},
	{key: "coreVoltage", value: func(p SettingsPatch) (any, bool) { return deref(p.CoreVoltage) }},
}

func deref[T any](v *T) (any, bool) {
	if v == nil {
		return nil, false
	}
	return *v, true
}

// WithStratumURL returns a copy of p with the stratum URL set.
func (p SettingsPatch) WithStratumURL(v string) SettingsPatch {
	p.StratumURL = &v
	return p
}

// WithStratumPort returns a copy of p with the stratum port set.
func (p SettingsPatch) WithStratumPort(v uint16) SettingsPatch {
	p.StratumPort = &v
	return p
}

// WithStratumUser returns a copy of p with the stratum user set.
func (p SettingsPatch) WithStratumUser(v string) SettingsPatch {
	p.StratumUser = &v
	return p
}

// WithStratumPassword returns a copy of p with the stratum password set.
func (p SettingsPatch) WithStratumPassword(v string) SettingsPatch {
	p.StratumPassword = &v
	return p
}

// WithFanSpeed returns a copy of p with the fan speed percent set.
func (p SettingsPatch) WithFanSpeed(v uint8) SettingsPatch {
	p.FanSpeed = &v
	return p
}

// WithFrequency returns a copy of p with the ASIC frequency set.
func (p SettingsPatch) WithFrequency(v uint16) SettingsPatch {
	p.Frequency = &v
	return p
}

// WithCoreVoltage returns a copy of p with the requested core voltage set.
func (p SettingsPatch) WithCoreVoltage(v uint16) SettingsPatch {
	p.CoreVoltage = &v
	return p
}

// Fields returns the populated fields keyed by firmware name.
func (p SettingsPatch) Fields() map[string]any {
	out := make(map[string]any, len(settingsFields))
	for _, f := range settingsFields {
		if v, ok := f.value(p); ok {
			out[f.key] = v
		}
	}
	return out
}

// Keys returns the firmware keys that will be sent, in table order.
func (p SettingsPatch) Keys() []string {
	keys := make([]string, 0, len(settingsFields))
	for _, f := range settingsFields {
		if _, ok := f.value(p); ok {
			keys = append(keys, f.key)
		}
	}
	return keys
}

// IsEmpty reports whether no field is populated. An empty patch is still a
// valid request.
func (p SettingsPatch) IsEmpty() bool {
	return len(p.Keys()) == 0
}

// Payload encodes the populated fields as a JSON object.
func (p SettingsPatch) Payload() ([]byte, error) {
	return json.Marshal(p.Fields())
}

// Validate checks ranges the wire types cannot express.
func (p SettingsPatch) Validate() error {
	if p.FanSpeed != nil && *p.FanSpeed > 100 {
		return fmt.Errorf("fan speed %d%% out of range 0-100", *p.FanSpeed)
	}
	return nil
}
