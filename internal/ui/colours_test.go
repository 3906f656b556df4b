package ui_test

import (
	"testing"

	"github.com/jrsteele09/panel-console/internal/ui"
	"github.com/stretchr/testify/require"
)

func TestColourMethod(t *testing.T) {
	require.Equal(t, ui.Green+" GET    "+ui.ResetColor, ui.ColourMethod("GET"))
	require.Equal(t, ui.Gray+" HEAD   "+ui.ResetColor, ui.ColourMethod("HEAD"))
}

func TestColourStatus(t *testing.T) {
	require.Equal(t, ui.Red+"401"+ui.ResetColor, ui.ColourStatus(401))
	require.Equal(t, ui.Green+"200"+ui.ResetColor, ui.ColourStatus(200))
}
