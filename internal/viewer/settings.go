package viewer

import (
	"errors"
	"fmt"
)

// SettingField names a single playback setting.
type SettingField string

const (
	FieldLoop       SettingField = "loop"
	FieldSpeed      SettingField = "speed"
	FieldBackground SettingField = "background"
	FieldRenderer   SettingField = "renderer"
)

// SettingClass says how a change to a field reaches a live render session.
type SettingClass int

const (
	// LivePatchable changes are pushed into the live instance directly.
	LivePatchable SettingClass = iota
	// RequiresRebuild changes affect how the instance is constructed, so the
	// session must be destroyed and recreated under the new snapshot.
	RequiresRebuild
	// PresentationOnly changes never reach the render session at all.
	PresentationOnly
)

// settingClasses is the full classification of setting fields. Any field
// added to PlaybackSettings must be entered here.
var settingClasses = map[SettingField]SettingClass{
	FieldSpeed:      LivePatchable,
	FieldLoop:       RequiresRebuild,
	FieldRenderer:   RequiresRebuild,
	FieldBackground: PresentationOnly,
}

// ErrInvalidSetting is returned when a settings update fails validation.
var ErrInvalidSetting = errors.New("invalid setting")

// DefaultSettings returns the settings used before the user changes anything.
func DefaultSettings() PlaybackSettings {
	return PlaybackSettings{
		Loop:            true,
		Speed:           1.0,
		BackgroundColor: "#ffffff",
		Renderer:        RendererSVG,
	}
}

// SettingsUpdate is a partial update to PlaybackSettings. Nil fields are
// left unchanged.
type SettingsUpdate struct {
	Loop            *bool     `json:"loop,omitempty"`
	Speed           *float64  `json:"speed,omitempty"`
	BackgroundColor *string   `json:"background,omitempty"`
	Renderer        *Renderer `json:"renderer,omitempty"`
}

// Validate checks the update without applying it.
func (u SettingsUpdate) Validate() error {
	if u.Speed != nil && *u.Speed <= 0 {
		return fmt.Errorf("%w: speed must be positive, got %v", ErrInvalidSetting, *u.Speed)
	}
	if u.Renderer != nil && !u.Renderer.Valid() {
		return fmt.Errorf("%w: unknown renderer %q", ErrInvalidSetting, *u.Renderer)
	}
	return nil
}

// Apply returns s with the update applied plus the list of fields whose
// values actually changed. Setting a field to its current value is not a
// change and must not trigger a rebuild.
func (u SettingsUpdate) Apply(s PlaybackSettings) (PlaybackSettings, []SettingField) {
	var changed []SettingField
	if u.Loop != nil && *u.Loop != s.Loop {
		s.Loop = *u.Loop
		changed = append(changed, FieldLoop)
	}
	if u.Speed != nil && *u.Speed != s.Speed {
		s.Speed = *u.Speed
		changed = append(changed, FieldSpeed)
	}
	if u.BackgroundColor != nil && *u.BackgroundColor != s.BackgroundColor {
		s.BackgroundColor = *u.BackgroundColor
		changed = append(changed, FieldBackground)
	}
	if u.Renderer != nil && *u.Renderer != s.Renderer {
		s.Renderer = *u.Renderer
		changed = append(changed, FieldRenderer)
	}
	return s, changed
}

// requiresRebuild reports whether any of the changed fields is classified
// RequiresRebuild.
func requiresRebuild(fields []SettingField) bool {
	for _, f := range fields {
		if settingClasses[f] == RequiresRebuild {
			return true
		}
	}
	return false
}

// containsField reports whether fields includes f.
func containsField(fields []SettingField, f SettingField) bool {
	for _, g := range fields {
		if g == f {
			return true
		}
	}
	return false
}
