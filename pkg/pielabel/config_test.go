package pielabel

import (
	"testing"

	"github.com/matzehuels/pielabel/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	if c.AnchorOffset != 5 || c.InflectionOffset != 15 || c.Padding != 10 ||
		c.LineHeight != 32 || c.AdjustOffset != 15 || c.SkipOverlapLabels || c.TriggerOn != "touchstart" {
		t.Errorf("DefaultConfig() = %+v", c)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestNewConfigOptions(t *testing.T) {
	c := NewConfig(
		WithSkipOverlap(true),
		WithLineHeight(20),
		WithPadding(4),
		WithAdjustOffset(8),
		WithOffsets(2, 12),
		WithTrigger("click"),
	)
	if !c.SkipOverlapLabels || c.LineHeight != 20 || c.Padding != 4 || c.AdjustOffset != 8 ||
		c.AnchorOffset != 2 || c.InflectionOffset != 12 || c.trigger() != "click" {
		t.Errorf("NewConfig() = %+v", c)
	}
	if (Config{}).trigger() != DefaultTrigger {
		t.Error("empty trigger should fall back to default")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		opt     Option
		wantErr bool
	}{
		{"zero padding ok", WithPadding(0), false},
		{"zero line height", WithLineHeight(0), true},
		{"negative padding", WithPadding(-1), true},
		{"negative offsets", WithOffsets(-1, 5), true},
		{"negative adjust", WithAdjustOffset(-3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConfig(tt.opt).Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("code = %v", errors.GetCode(err))
			}
		})
	}
}
