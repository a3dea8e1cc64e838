package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/brandon/mail-dialog/internal/dialog"
)

// Preset is a named set of dialog properties loaded from YAML
type Preset struct {
	Mode                 string   `yaml:"mode"`
	Title                string   `yaml:"title,omitempty"`
	ShowPreviousMessage  *bool    `yaml:"show_previous_message,omitempty"`
	PreviousMessageLabel string   `yaml:"previous_message_label,omitempty"`
	MessageLabel         string   `yaml:"message_label,omitempty"`
	BeginButtonText      string   `yaml:"begin_button_text,omitempty"`
	EndButtonText        string   `yaml:"end_button_text,omitempty"`
	Subject              string   `yaml:"subject,omitempty"`
	To                   []string `yaml:"to,omitempty"`
	Cc                   []string `yaml:"cc,omitempty"`
}

type presetsFile struct {
	Presets map[string]Preset `yaml:"presets"`
}

// LoadPresets reads named presets from a YAML file
func LoadPresets(path string) (map[string]Preset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read presets file: %w", err)
	}

	var f presetsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse presets file: %w", err)
	}
	if f.Presets == nil {
		f.Presets = map[string]Preset{}
	}

	for name, p := range f.Presets {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("preset %s: %w", name, err)
		}
	}
	return f.Presets, nil
}

// Validate checks the preset mode. An empty mode means Compose.
func (p Preset) Validate() error {
	if p.Mode == "" {
		return nil
	}
	_, err := dialog.ParseMode(p.Mode)
	return err
}

// Properties converts the preset into dialog properties
func (p Preset) Properties() (dialog.Properties, error) {
	mode := dialog.Compose
	if p.Mode != "" {
		m, err := dialog.ParseMode(p.Mode)
		if err != nil {
			return dialog.Properties{}, err
		}
		mode = m
	}
	return dialog.Properties{
		Mode:                 mode,
		Title:                p.Title,
		ShowPreviousMessage:  p.ShowPreviousMessage,
		PreviousMessageLabel: p.PreviousMessageLabel,
		MessageLabel:         p.MessageLabel,
		BeginButtonText:      p.BeginButtonText,
		EndButtonText:        p.EndButtonText,
		DefaultTo:            append([]string(nil), p.To...),
		DefaultCc:            append([]string(nil), p.Cc...),
	}, nil
}
