package cli

import (
	"strings"
	"testing"

	"github.com/awest/budgeteer/internal/model"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		format func(string) string
		name   string
		icon   string
	}{
		{format: FormatSuccess, name: "success", icon: SuccessIcon},
		{format: FormatError, name: "error", icon: ErrorIcon},
		{format: FormatWarning, name: "warning", icon: WarningIcon},
		{format: FormatInfo, name: "info", icon: InfoIcon},
		{format: FormatTitle, name: "title", icon: MoneyIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := tt.format("hello")
			if !strings.Contains(out, "hello") {
				t.Errorf("output %q does not contain the message", out)
			}
			if !strings.Contains(out, tt.icon) {
				t.Errorf("output %q does not contain icon %q", out, tt.icon)
			}
		})
	}
}

func TestStyleClassification(t *testing.T) {
	for _, c := range []model.Classification{
		model.ClassOnTrack,
		model.ClassNearLimit,
		model.ClassOver,
		model.ClassUnbudgeted,
	} {
		out := StyleClassification(c)
		if !strings.Contains(out, string(c)) {
			t.Errorf("styled output %q lost the label %q", out, c)
		}
	}
}
