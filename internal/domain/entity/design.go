package entity

import (
	"bytes"
	"encoding/json"
	"time"

	domainerrors "yearbook/internal/domain/errors"

	"github.com/go-playground/validator/v10"
)

// DesignSettingsVersion is the schema version written with every saved design record.
const DesignSettingsVersion = 1

var structValidator = validator.New()

// DesignSettings is the per-scope rendering configuration of a yearbook.
type DesignSettings struct {
	Version          int              `json:"version"`
	Scope            ScopeID          `json:"scope_id"`
	PageSettings     PageSettings     `json:"page_settings"`
	FlipbookSettings FlipbookSettings `json:"flipbook_settings"`
	Deadline         *time.Time       `json:"deadline"` // Editing cutoff for every page in the scope.
	FrontCovers      []CoverItem      `json:"front_covers" validate:"dive"`
	BackCovers       []CoverItem      `json:"back_covers" validate:"dive"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// PageSettings controls how each student page is styled.
type PageSettings struct {
	Layout          string     `json:"layout" validate:"oneof=classic-left classic-right modern-center"`
	FontFamily      FontFamily `json:"font_family"`
	FontSize        FontSize   `json:"font_size"`
	Colors          Colors     `json:"colors"`
	PhotoFrame      string     `json:"photo_frame" validate:"oneof=square rounded circle"`
	BackgroundImage string     `json:"background_image"`
}

// FontFamily selects the typefaces for the name and the quote.
type FontFamily struct {
	Name  string `json:"name" validate:"oneof=poppins pt-sans roboto serif"`
	Quote string `json:"quote" validate:"oneof=poppins pt-sans roboto serif"`
}

// FontSize holds point sizes for the name and the quote.
type FontSize struct {
	Name  string `json:"name" validate:"numeric"`
	Quote string `json:"quote" validate:"numeric"`
}

// Colors is the page color triple.
type Colors struct {
	Background string `json:"background" validate:"hexcolor"`
	Text       string `json:"text" validate:"hexcolor"`
	Accent     string `json:"accent" validate:"hexcolor"`
}

// FlipbookSettings configures the page-turn viewer.
type FlipbookSettings struct {
	Direction       string             `json:"direction" validate:"oneof=ltr rtl"`
	FlippingTime    int                `json:"flipping_time" validate:"gte=100,lte=10000"` // Milliseconds.
	ShowPageCorners bool               `json:"show_page_corners"`
	DrawShadow      bool               `json:"draw_shadow"`
	FlipSound       string             `json:"flip_sound"` // Empty disables the sound.
	Appearance      FlipbookAppearance `json:"appearance"`
	Controls        FlipbookControls   `json:"controls"`
	Automation      FlipbookAutomation `json:"automation"`
}

// FlipbookAppearance describes the binding and backdrop.
type FlipbookAppearance struct {
	BackgroundColor string `json:"background_color" validate:"hexcolor"`
	Style           string `json:"style" validate:"oneof=classic hardcover spiral"`
	SpiralColor     string `json:"spiral_color" validate:"hexcolor"`
}

// FlipbookControls holds viewer control flags.
type FlipbookControls struct {
	SinglePageMode bool `json:"single_page_mode"`
}

// FlipbookAutomation configures autoplay.
type FlipbookAutomation struct {
	AutoPlay     bool `json:"auto_play"`
	FlipInterval int  `json:"flip_interval" validate:"gte=1000,lte=60000"` // Milliseconds.
}

// CoverMediaType is the kind of media shown on a cover page.
type CoverMediaType string

const (
	CoverMediaImage CoverMediaType = "image"
	CoverMediaVideo CoverMediaType = "video"
)

// CoverItem is one front or back cover page.
type CoverItem struct {
	Type CoverMediaType `json:"type" validate:"oneof=image video"`
	URL  string         `json:"url" validate:"required"`
}

// DefaultDesignSettings returns the design every scope starts with.
func DefaultDesignSettings(scope ScopeID) *DesignSettings {
	return &DesignSettings{
		Version: DesignSettingsVersion,
		Scope:   scope,
		PageSettings: PageSettings{
			Layout:     "classic-left",
			FontFamily: FontFamily{Name: "poppins", Quote: "pt-sans"},
			FontSize:   FontSize{Name: "24", Quote: "14"},
			Colors: Colors{
				Background: "#FFFFFF",
				Text:       "#333333",
				Accent:     "#2563EB",
			},
			PhotoFrame: "rounded",
		},
		FlipbookSettings: FlipbookSettings{
			Direction:       "ltr",
			FlippingTime:    1000,
			ShowPageCorners: true,
			DrawShadow:      true,
			FlipSound:       "/sounds/classic.mp3",
			Appearance: FlipbookAppearance{
				BackgroundColor: "#f1f5f9",
				Style:           "classic",
				SpiralColor:     "#888888",
			},
			Automation: FlipbookAutomation{
				FlipInterval: 5000,
			},
		},
		FrontCovers: []CoverItem{},
		BackCovers:  []CoverItem{},
	}
}

// DecodeDesignSettings deserializes a stored or submitted design record on top of
// the defaults, so absent fields keep their default values, then validates it.
func DecodeDesignSettings(scope ScopeID, raw []byte) (*DesignSettings, error) {
	settings := DefaultDesignSettings(scope)

	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, settings); err != nil {
			return nil, domainerrors.ErrValidationFailed.WithDetails("malformed design settings: " + err.Error())
		}
	}

	settings.Version = DesignSettingsVersion
	settings.Scope = scope
	if settings.FrontCovers == nil {
		settings.FrontCovers = []CoverItem{}
	}
	if settings.BackCovers == nil {
		settings.BackCovers = []CoverItem{}
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Validate checks every field against its allowed values.
func (d *DesignSettings) Validate() error {
	if err := structValidator.Struct(d); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails(err.Error())
	}

	return nil
}
