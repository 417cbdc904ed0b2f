package feedback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSliderFill(t *testing.T) {
	tests := []struct {
		value int
		want  string
	}{
		{1, "0.00%"},
		{5, "44.44%"},
		{8, "77.78%"},
		{10, "100.00%"},
		{42, "100.00%"},
		{-3, "0.00%"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFill(DefaultSlider.Fill(tt.value)), "value %d", tt.value)
	}
	assert.InDelta(t, 77.78, DefaultSlider.Fill(8), 0.01)
	assert.Zero(t, Slider{Min: 3, Max: 3}.Fill(3))
}

func TestPanelSetDifficulty(t *testing.T) {
	rec := &recorder{}
	panel := NewPanel(rec, DefaultSlider)

	panel.SetDifficulty("8")
	assert.Equal(t, "8", rec.label)
	assert.Equal(t, "77.78%", rec.fill)

	panel.SetDifficulty("not-a-number")
	assert.Equal(t, "5", rec.label)

	panel.SetDifficulty(" 11 ")
	assert.Equal(t, "10", rec.label)
}

func TestPanelToggle(t *testing.T) {
	rec := &recorder{}
	panel := NewPanel(rec, DefaultSlider)
	assert.False(t, panel.Expanded())

	panel.Toggle()
	assert.True(t, panel.Expanded())
	assert.True(t, rec.expanded)

	panel.Toggle()
	assert.False(t, panel.Expanded())

	panel.Collapse()
	assert.Equal(t, []string{"expand", "collapse", "collapse"}, rec.Events())
}

func TestStatusMessages(t *testing.T) {
	assert.Contains(t, StatusSuccess.Message(), "Thank you for your feedback")
	assert.NotEmpty(t, StatusSending.Message())
	assert.Empty(t, Status(0).Message())
}
