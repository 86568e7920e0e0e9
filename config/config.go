// Package config is the typed key/value store for the keyboard core,
// grouping the recognised options of spec.md §6 into sections and
// backing them with a TOML document.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type RepositionMethod string

const (
	RepositionNone             RepositionMethod = "none"
	RepositionPreventOcclusion RepositionMethod = "prevent-occlusion"
	RepositionReduceTravel     RepositionMethod = "reduce-travel"
)

type TouchInputMode string

const (
	TouchInputNone   TouchInputMode = "none"
	TouchInputSingle TouchInputMode = "single"
	TouchInputMulti  TouchInputMode = "multi"
)

type KeyAction string

const (
	KeyActionSingleStroke  KeyAction = "single-stroke"
	KeyActionDelayedStroke KeyAction = "delayed-stroke"
)

type InputEventSource string

const (
	InputEventSourceGTK    InputEventSource = "GTK"
	InputEventSourceXInput InputEventSource = "XInput"
)

type DockingEdge string

const (
	DockingEdgeTop    DockingEdge = "top"
	DockingEdgeBottom DockingEdge = "bottom"
)

type DockingMonitor string

const (
	DockingMonitorActive  DockingMonitor = "active"
	DockingMonitorPrimary DockingMonitor = "primary"
)

// Keyboard groups the "keyboard" section of spec.md §6.
type Keyboard struct {
	ShowClickButtons              bool             `toml:"show-click-buttons"`
	StickyKeyReleaseDelay         int              `toml:"sticky-key-release-delay"`
	StickyKeyReleaseOnHideDelay   int              `toml:"sticky-key-release-on-hide-delay"`
	LongPressDelay                int              `toml:"long-press-delay"`
	DefaultKeyAction               KeyAction        `toml:"default-key-action"`
	TouchInput                     TouchInputMode   `toml:"touch-input"`
	InputEventSource               InputEventSource `toml:"input-event-source"`
}

// AutoShow groups the "auto-show" section of spec.md §6.
type AutoShow struct {
	Enabled                        bool             `toml:"enabled"`
	RepositionMethodFloating       RepositionMethod `toml:"reposition-method-floating"`
	RepositionMethodDocked         RepositionMethod `toml:"reposition-method-docked"`
	WidgetClearance                float64          `toml:"widget-clearance"`
	HideOnKeyPress                 bool             `toml:"hide-on-key-press"`
	HideOnKeyPressPause            int              `toml:"hide-on-key-press-pause"`
	TabletModeDetectionEnabled     bool             `toml:"tablet-mode-detection-enabled"`
	KeyboardDeviceDetectionEnabled bool             `toml:"keyboard-device-detection-enabled"`
}

// Window groups the "window" section of spec.md §6.
type Window struct {
	Transparency             float64        `toml:"transparency"`
	BackgroundTransparency   float64        `toml:"background-transparency"`
	InactiveTransparency     float64        `toml:"inactive-transparency"`
	InactiveTransparencyDelay float64       `toml:"inactive-transparency-delay"`
	DockingEnabled           bool           `toml:"docking-enabled"`
	DockingEdge              DockingEdge    `toml:"docking-edge"`
	DockingMonitor           DockingMonitor `toml:"docking-monitor"`
	DockingShrinkWorkarea    bool           `toml:"docking-shrink-workarea"`
	DockingAspectChangeRange float64        `toml:"docking-aspect-change-range"`
}

// WordSuggestions groups the "word-suggestions" section of spec.md §6.
type WordSuggestions struct {
	Enabled              bool `toml:"enabled"`
	AutoLearn            bool `toml:"auto-learn"`
	PunctuationAssistance bool `toml:"punctuation-assistance"`
	AccentInsensitive    bool `toml:"accent-insensitive"`
	MaxWordChoices       int  `toml:"max-word-choices"`
	PauseLearningLocked  bool `toml:"pause-learning-locked"`
}

// Store is the root configuration document.
type Store struct {
	Keyboard        Keyboard        `toml:"keyboard"`
	AutoShow        AutoShow        `toml:"auto-show"`
	Window          Window          `toml:"window"`
	WordSuggestions WordSuggestions `toml:"word-suggestions"`
}

// Default returns a Store with every recognised key set to its
// liveness-preserving default (spec.md §7), so a zero-value caller
// that never loads a file still gets sane behavior.
func Default() *Store {
	return &Store{
		Keyboard: Keyboard{
			StickyKeyReleaseDelay:       0,
			StickyKeyReleaseOnHideDelay: 0,
			LongPressDelay:              0,
			DefaultKeyAction:            KeyActionSingleStroke,
			TouchInput:                  TouchInputSingle,
			InputEventSource:            InputEventSourceXInput,
		},
		AutoShow: AutoShow{
			Enabled:                  true,
			RepositionMethodFloating: RepositionPreventOcclusion,
			RepositionMethodDocked:   RepositionNone,
			WidgetClearance:          0,
			HideOnKeyPressPause:      1000,
		},
		Window: Window{
			Transparency:             0,
			BackgroundTransparency:   0,
			InactiveTransparency:     0,
			InactiveTransparencyDelay: 1,
			DockingEdge:              DockingEdgeBottom,
			DockingMonitor:           DockingMonitorActive,
			DockingAspectChangeRange: 0.3,
		},
		WordSuggestions: WordSuggestions{
			Enabled:        true,
			AutoLearn:      true,
			MaxWordChoices: 5,
		},
	}
}

// FillDefaults returns a copy of s with every zero-valued recognised
// field replaced by its default, leaving explicitly-set fields alone.
func (s Store) FillDefaults() Store {
	def := Default()
	out := s

	if out.Keyboard.DefaultKeyAction == "" {
		out.Keyboard.DefaultKeyAction = def.Keyboard.DefaultKeyAction
	}
	if out.Keyboard.TouchInput == "" {
		out.Keyboard.TouchInput = def.Keyboard.TouchInput
	}
	if out.Keyboard.InputEventSource == "" {
		out.Keyboard.InputEventSource = def.Keyboard.InputEventSource
	}
	if out.AutoShow.RepositionMethodFloating == "" {
		out.AutoShow.RepositionMethodFloating = def.AutoShow.RepositionMethodFloating
	}
	if out.AutoShow.RepositionMethodDocked == "" {
		out.AutoShow.RepositionMethodDocked = def.AutoShow.RepositionMethodDocked
	}
	if out.AutoShow.HideOnKeyPressPause == 0 {
		out.AutoShow.HideOnKeyPressPause = def.AutoShow.HideOnKeyPressPause
	}
	if out.Window.DockingEdge == "" {
		out.Window.DockingEdge = def.Window.DockingEdge
	}
	if out.Window.DockingMonitor == "" {
		out.Window.DockingMonitor = def.Window.DockingMonitor
	}
	if out.Window.DockingAspectChangeRange == 0 {
		out.Window.DockingAspectChangeRange = def.Window.DockingAspectChangeRange
	}
	if out.WordSuggestions.MaxWordChoices == 0 {
		out.WordSuggestions.MaxWordChoices = def.WordSuggestions.MaxWordChoices
	}
	return out
}

// Load reads a TOML document from path and fills any unset keys with
// defaults.
func Load(path string) (*Store, error) {
	var s Store
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	filled := s.FillDefaults()
	return &filled, nil
}

// Save serializes s to path as TOML, creating or truncating the file.
func Save(path string, s *Store) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: save %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	enc := toml.NewEncoder(f)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}
