package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JasperK04/KTP/internal/config"
)

func TestWatchEnabled(t *testing.T) {
	withWatch := config.DefaultConfig()
	withWatch.KB.Path = "kb.yaml"
	withWatch.KB.Watch = true
	withoutWatch := config.DefaultConfig()

	tests := []struct {
		name        string
		flagChanged bool
		flagValue   bool
		cfg         *config.Config
		want        bool
	}{
		{"config default off", false, false, withoutWatch, false},
		{"config enables watching", false, false, withWatch, true},
		{"flag overrides config off", true, false, withWatch, false},
		{"flag enables watching", true, true, withoutWatch, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, watchEnabled(tt.flagChanged, tt.flagValue, tt.cfg))
		})
	}
}
