package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.Color
	}{
		{name: "built returns green", status: StatusBuilt, wantFG: colorGreen},
		{name: "installed returns green", status: StatusInstalled, wantFG: colorGreen},
		{name: "skipped returns yellow", status: StatusSkipped, wantFG: ColorYellow},
		{name: "failed returns bold red", status: statusFailed, wantBold: true, wantFG: colorBoldRed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantFG, style.GetForeground())
		})
	}

	t.Run("unknown status is unstyled", func(t *testing.T) {
		style := StatusStyle("mystery")
		assert.False(t, style.GetBold())
		assert.Equal(t, lipgloss.NoColor{}, style.GetForeground())
	})
}

func TestFormatStepLine(t *testing.T) {
	line := FormatStepLine("Windows x64", StatusBuilt)
	assert.Contains(t, line, "t:")
	assert.Contains(t, line, "Windows x64")
	assert.Contains(t, line, "built")

	long := FormatStepLine(strings.Repeat("x", 60), StatusSkipped)
	assert.Contains(t, long, strings.Repeat("x", 60)+"  ")
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("build complete"), "✔ build complete")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{5 * 1024 * 1024, "5.0 MiB"},
		{3 * 1024 * 1024 * 1024, "3.0 GiB"},
		{15 * 1024, "15 KiB"},
		{-1, "0 B"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatBytes(tt.in))
		})
	}
}
