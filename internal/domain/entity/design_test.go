package entity

import (
	"testing"

	domainerrors "yearbook/internal/domain/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultDesignSettings_AreValid(t *testing.T) {
	settings := DefaultDesignSettings("s:2024")

	require.NoError(t, settings.Validate())
	assert.Equal(t, "classic-left", settings.PageSettings.Layout)
	assert.Equal(t, "poppins", settings.PageSettings.FontFamily.Name)
	assert.Equal(t, "pt-sans", settings.PageSettings.FontFamily.Quote)
	assert.Equal(t, 1000, settings.FlipbookSettings.FlippingTime)
	assert.True(t, settings.FlipbookSettings.ShowPageCorners)
	assert.Nil(t, settings.Deadline)
}

func TestDecodeDesignSettings_MergesDefaults(t *testing.T) {
	raw := []byte(`{
		"page_settings": {"layout": "modern-center", "colors": {"accent": "#FF0000"}},
		"flipbook_settings": {"show_page_corners": false, "appearance": {"style": "spiral"}},
		"deadline": "2024-06-01T00:00:00Z",
		"front_covers": [{"type": "video", "url": "/uploads/design/intro.mp4"}]
	}`)

	settings, err := DecodeDesignSettings("s:2024", raw)
	require.NoError(t, err)

	assert.Equal(t, DesignSettingsVersion, settings.Version)
	assert.Equal(t, ScopeID("s:2024"), settings.Scope)
	assert.Equal(t, "modern-center", settings.PageSettings.Layout)
	assert.Equal(t, "#FF0000", settings.PageSettings.Colors.Accent)
	assert.Equal(t, "#FFFFFF", settings.PageSettings.Colors.Background)
	assert.False(t, settings.FlipbookSettings.ShowPageCorners)
	assert.True(t, settings.FlipbookSettings.DrawShadow)
	assert.Equal(t, "spiral", settings.FlipbookSettings.Appearance.Style)
	assert.Equal(t, "#888888", settings.FlipbookSettings.Appearance.SpiralColor)
	require.NotNil(t, settings.Deadline)
	assert.Equal(t, 2024, settings.Deadline.Year())
	require.Len(t, settings.FrontCovers, 1)
	assert.Equal(t, CoverMediaVideo, settings.FrontCovers[0].Type)
	assert.Empty(t, settings.BackCovers)
}

func TestDecodeDesignSettings_EmptyInputYieldsDefaults(t *testing.T) {
	settings, err := DecodeDesignSettings("s:2024", nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultDesignSettings("s:2024"), settings)
}

func TestDecodeDesignSettings_ScopeCannotBeOverridden(t *testing.T) {
	settings, err := DecodeDesignSettings("s:2024", []byte(`{"scope_id": "other:2024"}`))
	require.NoError(t, err)

	assert.Equal(t, ScopeID("s:2024"), settings.Scope)
}

func TestDecodeDesignSettings_Invalid(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "malformed json", raw: `{"page_settings":`},
		{name: "unknown layout", raw: `{"page_settings": {"layout": "diagonal"}}`},
		{name: "bad color", raw: `{"page_settings": {"colors": {"text": "red"}}}`},
		{name: "bad direction", raw: `{"flipbook_settings": {"direction": "up"}}`},
		{name: "flip too fast", raw: `{"flipbook_settings": {"flipping_time": 5}}`},
		{name: "cover without url", raw: `{"back_covers": [{"type": "image"}]}`},
		{name: "cover bad type", raw: `{"back_covers": [{"type": "gif", "url": "/a.gif"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeDesignSettings("s:2024", []byte(tt.raw))
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}
