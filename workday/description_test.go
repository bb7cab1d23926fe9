package workday

import "testing"

func TestDescriptionText(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "  ", ""},
		{"plain", "Intro to   programs.", "Intro to programs."},
		{"escaped paragraphs", "&lt;p&gt;Covers  recursion.&lt;/p&gt;&lt;p&gt;Recommended &amp;amp; fun.&lt;/p&gt;", "Covers recursion.\nRecommended & fun."},
		{"inline markup", "<div>Topics <b>include</b> graphs</div>", "Topics include graphs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DescriptionText(tt.raw); got != tt.want {
				t.Errorf("DescriptionText(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}
