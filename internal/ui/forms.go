package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/axedeck/internal/axeos"
	"github.com/five82/axedeck/internal/registry"
)

// formField is one labelled text input.
type formField struct {
	label string
	input textinput.Model
}

func newFormField(label, placeholder string, limit int) formField {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 30
	ti.Prompt = ""
	return formField{label: label, input: ti}
}

// fieldSet tracks focus across a list of inputs.
type fieldSet struct {
	fields []formField
	focus  int
}

func (f *fieldSet) focusFirst() {
	f.focus = 0
	for i := range f.fields {
		if i == 0 {
			f.fields[i].input.Focus()
		} else {
			f.fields[i].input.Blur()
		}
	}
}

func (f *fieldSet) move(delta int) {
	if len(f.fields) == 0 {
		return
	}
	f.fields[f.focus].input.Blur()
	f.focus = (f.focus + delta + len(f.fields)) % len(f.fields)
	f.fields[f.focus].input.Focus()
}

func (f *fieldSet) updateFocused(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f fieldSet) values() []string {
	out := make([]string, len(f.fields))
	for i, field := range f.fields {
		out[i] = strings.TrimSpace(field.input.Value())
	}
	return out
}

func (f fieldSet) render(styles Styles, labelWidth int) string {
	var b strings.Builder
	for i, field := range f.fields {
		label := padRight(field.label+":", labelWidth)
		if i == f.focus {
			b.WriteString(styles.AccentText.Render(label))
		} else {
			b.WriteString(styles.MutedText.Render(label))
		}
		b.WriteString(field.input.View())
		b.WriteString("\n")
	}
	return b.String()
}

// --- Add miner ---

type addMinerMsg struct {
	name    string
	address string
}

type addMinerModal struct {
	fieldSet
	err string
}

func newAddMinerModal() *addMinerModal {
	m := &addMinerModal{fieldSet: fieldSet{fields: []formField{
		newFormField("Name", "optional, e.g. garage bitaxe", 64),
		newFormField("Address", "e.g. 192.168.1.42", 255),
	}}}
	m.focusFirst()
	return m
}

func (m *addMinerModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocused(msg), false
	}
	switch {
	case key.Matches(keyMsg, keys.Cancel):
		return m, nil, true
	case key.Matches(keyMsg, keys.Confirm):
		values := m.values()
		addr, err := registry.NormalizeAddress(values[1])
		if err != nil {
			m.err = err.Error()
			return m, nil, false
		}
		return m, emit(addMinerMsg{name: values[0], address: addr}), true
	case key.Matches(keyMsg, keys.NextField):
		m.move(1)
		return m, nil, false
	case key.Matches(keyMsg, keys.PrevField):
		m.move(-1)
		return m, nil, false
	}
	m.err = ""
	return m, m.updateFocused(msg), false
}

func (m *addMinerModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(modalTitle(styles, "Add Miner", 44))
	b.WriteString(m.render(styles, 10))
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Enter: Save  •  Tab: Next field  •  Esc: Cancel"))
	return placeModal(theme, width, height, 54, b.String())
}

// --- Rename miner ---

type renameMinerMsg struct {
	id   string
	name string
}

type renameModal struct {
	fieldSet
	id    string
	title string
	err   string
}

func newRenameModal(miner registry.Miner, title string) *renameModal {
	field := newFormField("Name", title, 64)
	field.input.SetValue(miner.Name)
	m := &renameModal{fieldSet: fieldSet{fields: []formField{field}}, id: miner.ID, title: title}
	m.focusFirst()
	return m
}

func (m *renameModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocused(msg), false
	}
	switch {
	case key.Matches(keyMsg, keys.Cancel):
		return m, nil, true
	case key.Matches(keyMsg, keys.Confirm):
		name := m.values()[0]
		if name == "" {
			m.err = "name cannot be empty"
			return m, nil, false
		}
		return m, emit(renameMinerMsg{id: m.id, name: name}), true
	}
	m.err = ""
	return m, m.updateFocused(msg), false
}

func (m *renameModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(modalTitle(styles, "Rename "+truncate(m.title, 28), 44))
	b.WriteString(m.render(styles, 10))
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Enter: Save  •  Esc: Cancel"))
	return placeModal(theme, width, height, 54, b.String())
}

// --- Settings ---

// Settings form field order.
const (
	fieldStratumURL = iota
	fieldStratumPort
	fieldStratumUser
	fieldStratumPassword
	fieldFanSpeed
	fieldFrequency
	fieldCoreVoltage
	settingsFieldCount
)

type settingsSubmitMsg struct {
	address string
	patch   axeos.SettingsPatch
}

type settingsModal struct {
	fieldSet
	address string
	title   string
	err     string
}

// newSettingsModal builds the settings form. Current values from snap are
// shown as placeholders only, so untouched fields stay out of the patch.
func newSettingsModal(address, title string, snap axeos.Snapshot) *settingsModal {
	fields := make([]formField, settingsFieldCount)
	fields[fieldStratumURL] = newFormField("Stratum URL", placeholderString(snap.StratumURL, "public-pool.io"), 255)
	fields[fieldStratumPort] = newFormField("Stratum port", placeholderUint(snap.StratumPort, "21496"), 5)
	fields[fieldStratumUser] = newFormField("Stratum user", placeholderString(snap.StratumUser, "bc1q...worker"), 255)
	fields[fieldStratumPassword] = newFormField("Password", "unchanged", 255)
	fields[fieldStratumPassword].input.EchoMode = textinput.EchoPassword
	fields[fieldFanSpeed] = newFormField("Fan %", placeholderFloat(snap.FanSpeed, "0-100"), 3)
	fields[fieldFrequency] = newFormField("Freq MHz", placeholderFloat(snap.Frequency, "e.g. 525"), 5)
	fields[fieldCoreVoltage] = newFormField("Core mV", placeholderFloat(snap.CoreVoltage, "e.g. 1200"), 5)

	m := &settingsModal{fieldSet: fieldSet{fields: fields}, address: address, title: title}
	m.focusFirst()
	return m
}

func (m *settingsModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateFocused(msg), false
	}
	switch {
	case key.Matches(keyMsg, keys.Cancel):
		return m, nil, true
	case key.Matches(keyMsg, keys.Confirm):
		patch, err := parseSettingsInputs(m.values())
		if err != nil {
			m.err = err.Error()
			return m, nil, false
		}
		return m, emit(settingsSubmitMsg{address: m.address, patch: patch}), true
	case key.Matches(keyMsg, keys.NextField):
		m.move(1)
		return m, nil, false
	case key.Matches(keyMsg, keys.PrevField):
		m.move(-1)
		return m, nil, false
	}
	m.err = ""
	return m, m.updateFocused(msg), false
}

func (m *settingsModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	var b strings.Builder
	b.WriteString(modalTitle(styles, "Settings · "+m.title, 48))
	b.WriteString(styles.MutedText.Render("Blank fields are left unchanged on the miner."))
	b.WriteString("\n\n")
	b.WriteString(m.render(styles, 14))
	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.DangerText.Render(m.err))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render("Enter: Apply  •  Tab: Next field  •  Esc: Cancel"))
	return placeModal(theme, width, height, 58, b.String())
}

// parseSettingsInputs turns trimmed form values, ordered as the field
// constants, into a sparse patch. Blank values stay unset.
func parseSettingsInputs(values []string) (axeos.SettingsPatch, error) {
	var patch axeos.SettingsPatch
	if len(values) != settingsFieldCount {
		return patch, fmt.Errorf("expected %d settings values, got %d", settingsFieldCount, len(values))
	}

	if v := values[fieldStratumURL]; v != "" {
		patch = patch.WithStratumURL(v)
	}
	if v := values[fieldStratumPort]; v != "" {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil || n == 0 {
			return patch, fmt.Errorf("stratum port: %q is not a port number (1-65535)", v)
		}
		patch = patch.WithStratumPort(uint16(n))
	}
	if v := values[fieldStratumUser]; v != "" {
		patch = patch.WithStratumUser(v)
	}
	if v := values[fieldStratumPassword]; v != "" {
		patch = patch.WithStratumPassword(v)
	}
	if v := values[fieldFanSpeed]; v != "" {
		n, err := strconv.ParseUint(v, 10, 8)
		if err != nil || n > 100 {
			return patch, fmt.Errorf("fan speed: %q must be a whole percent 0-100", v)
		}
		patch = patch.WithFanSpeed(uint8(n))
	}
	if v := values[fieldFrequency]; v != "" {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return patch, fmt.Errorf("frequency: %q is not a whole number of MHz", v)
		}
		patch = patch.WithFrequency(uint16(n))
	}
	if v := values[fieldCoreVoltage]; v != "" {
		n, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return patch, fmt.Errorf("core voltage: %q is not a whole number of mV", v)
		}
		patch = patch.WithCoreVoltage(uint16(n))
	}

	return patch, patch.Validate()
}

func placeholderString(v *string, fallback string) string {
	if v != nil && strings.TrimSpace(*v) != "" {
		return *v
	}
	return fallback
}

func placeholderUint(v *uint64, fallback string) string {
	if v != nil {
		return strconv.FormatUint(*v, 10)
	}
	return fallback
}

func placeholderFloat(v *float64, fallback string) string {
	if v != nil {
		return strconv.FormatFloat(*v, 'f', -1, 64)
	}
	return fallback
}
