//go:build !integration

package console

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestLayoutTitleBox(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		width    int
		expected []string // Substrings that should be present in output
	}{
		{
			name:  "basic title",
			title: "Test Title",
			width: 40,
			expected: []string{
				"Test Title",
			},
		},
		{
			name:  "longer title",
			title: "Workflow Compilation Report",
			width: 80,
			expected: []string{
				"Workflow Compilation Report",
			},
		},
		{
			name:  "title with special characters",
			title: "⚠️ Important Notice",
			width: 60,
			expected: []string{
				"⚠️ Important Notice",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := LayoutTitleBox(tt.title, tt.width)

			// Check that output is not empty
			if output == "" {
				t.Error("LayoutTitleBox() returned empty string")
			}

			// Check that title appears in output
			for _, expected := range tt.expected {
				if !strings.Contains(output, expected) {
					t.Errorf("LayoutTitleBox() output missing expected string '%s'\nGot:\n%s", expected, output)
				}
			}
		})
	}
}

func TestLayoutInfoSection(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		value    string
		expected []string // Substrings that should be present in output
	}{
		{
			name:  "simple label and value",
			label: "Workflow",
			value: "order-flow",
			expected: []string{
				"Workflow",
				"order-flow",
			},
		},
		{
			name:  "status label",
			label: "Status",
			value: "Compiled",
			expected: []string{
				"Status",
				"Compiled",
			},
		},
		{
			name:  "file path value",
			label: "Location",
			value: "/path/to/file",
			expected: []string{
				"Location",
				"/path/to/file",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := LayoutInfoSection(tt.label, tt.value)

			// Check that output is not empty
			if output == "" {
				t.Error("LayoutInfoSection() returned empty string")
			}

			// Check that expected strings appear in output
			for _, expected := range tt.expected {
				if !strings.Contains(output, expected) {
					t.Errorf("LayoutInfoSection() output missing expected string '%s'\nGot:\n%s", expected, output)
				}
			}
		})
	}
}

func TestLayoutEmphasisBox(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		color    lipgloss.AdaptiveColor
		expected []string // Substrings that should be present in output
	}{
		{
			name:    "warning message",
			content: "⚠️ WARNING",
			color:   lipgloss.AdaptiveColor{Light: "3", Dark: "11"},
			expected: []string{
				"⚠️ WARNING",
			},
		},
		{
			name:    "error message",
			content: "✗ ERROR: Failed",
			color:   lipgloss.AdaptiveColor{Light: "1", Dark: "9"},
			expected: []string{
				"✗ ERROR: Failed",
			},
		},
		{
			name:    "success message",
			content: "✓ Success",
			color:   lipgloss.AdaptiveColor{Light: "2", Dark: "10"},
			expected: []string{
				"✓ Success",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := LayoutEmphasisBox(tt.content, tt.color)

			// Check that output is not empty
			if output == "" {
				t.Error("LayoutEmphasisBox() returned empty string")
			}

			// Check that content appears in output
			for _, expected := range tt.expected {
				if !strings.Contains(output, expected) {
					t.Errorf("LayoutEmphasisBox() output missing expected string '%s'\nGot:\n%s", expected, output)
				}
			}
		})
	}
}

func TestLayoutJoinVertical(t *testing.T) {
	tests := []struct {
		name     string
		sections []string
		expected []string // Substrings that should be present in output
	}{
		{
			name:     "single section",
			sections: []string{"Section 1"},
			expected: []string{"Section 1"},
		},
		{
			name:     "multiple sections",
			sections: []string{"Section 1", "Section 2", "Section 3"},
			expected: []string{
				"Section 1",
				"Section 2",
				"Section 3",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := LayoutJoinVertical(tt.sections...)

			for _, expected := range tt.expected {
				if !strings.Contains(output, expected) {
					t.Errorf("LayoutJoinVertical() output missing expected string '%s'\nGot:\n%s", expected, output)
				}
			}
		})
	}
}
