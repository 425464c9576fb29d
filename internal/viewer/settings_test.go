package viewer

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSettingClasses_cover_all_fields(t *testing.T) {
	for _, f := range []SettingField{FieldLoop, FieldSpeed, FieldBackground, FieldRenderer} {
		if _, ok := settingClasses[f]; !ok {
			t.Errorf("field %q missing from classification table", f)
		}
	}
	if settingClasses[FieldSpeed] != LivePatchable {
		t.Error("speed must be live-patchable")
	}
	if settingClasses[FieldLoop] != RequiresRebuild || settingClasses[FieldRenderer] != RequiresRebuild {
		t.Error("loop and renderer must require a rebuild")
	}
	if settingClasses[FieldBackground] != PresentationOnly {
		t.Error("background must be presentation-only")
	}
}

func TestSettingsUpdate_validate(t *testing.T) {
	zero := 0.0
	negative := -1.0
	bad := Renderer("webgl")

	for _, u := range []SettingsUpdate{
		{Speed: &zero},
		{Speed: &negative},
		{Renderer: &bad},
	} {
		if err := u.Validate(); !errors.Is(err, ErrInvalidSetting) {
			t.Errorf("%+v: expected ErrInvalidSetting, got %v", u, err)
		}
	}

	speed := 1.5
	renderer := RendererCanvas
	if err := (SettingsUpdate{Speed: &speed, Renderer: &renderer}).Validate(); err != nil {
		t.Errorf("valid update rejected: %v", err)
	}
}

func TestSettingsUpdate_apply_reports_changes(t *testing.T) {
	s := DefaultSettings()

	speed := 2.0
	loop := false
	next, changed := SettingsUpdate{Speed: &speed, Loop: &loop}.Apply(s)

	if next.Speed != 2.0 || next.Loop {
		t.Errorf("apply did not take: %+v", next)
	}
	wantChanged := []SettingField{FieldLoop, FieldSpeed}
	if diff := cmp.Diff(wantChanged, changed); diff != "" {
		t.Errorf("changed fields (-want +got):\n%s", diff)
	}
	if !requiresRebuild(changed) {
		t.Error("loop change must require a rebuild")
	}
}

func TestSettingsUpdate_same_value_is_not_a_change(t *testing.T) {
	s := DefaultSettings()

	loop := s.Loop
	renderer := s.Renderer
	_, changed := SettingsUpdate{Loop: &loop, Renderer: &renderer}.Apply(s)

	if len(changed) != 0 {
		t.Errorf("setting fields to current values must not count as changes: %v", changed)
	}
}

func TestSettingsUpdate_speed_only_no_rebuild(t *testing.T) {
	speed := 0.5
	_, changed := SettingsUpdate{Speed: &speed}.Apply(DefaultSettings())
	if requiresRebuild(changed) {
		t.Error("speed-only change must not require a rebuild")
	}
}
