package domain

import "testing"

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "lowercase and trim", input: "  Jane Doe  ", want: "jane doe"},
		{name: "collapse whitespace", input: "Jane \t  Doe", want: "jane doe"},
		{name: "hyphen separator", input: "HW3-Jane-Doe", want: "hw3 jane doe"},
		{name: "underscore and dot", input: "jane_doe.final", want: "jane doe final"},
		{name: "mixed punctuation", input: "Doe, Jane (resubmit)", want: "doe jane resubmit"},
		{name: "fullwidth folded", input: "ＨＷ３", want: "hw3"},
		{name: "cjk preserved", input: "实验报告-王小明", want: "实验报告 王小明"},
		{name: "cjk brackets", input: "报告【电子版】王小明", want: "报告 电子版 王小明"},
		{name: "empty", input: "", want: ""},
		{name: "only separators", input: "-_-.", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.want {
				t.Errorf("NormalizeName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLookupKey(t *testing.T) {
	if got := LookupKey("jane doe"); got != "janedoe" {
		t.Errorf("LookupKey = %q, want janedoe", got)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "path separators", input: "a/b\\c", want: "a_b_c"},
		{name: "dropped characters", input: `001 <Jane?> "Doe"*.docx`, want: "001 Jane Doe.docx"},
		{name: "clean name untouched", input: "001 Jane Doe.docx", want: "001 Jane Doe.docx"},
		{name: "colon", input: "report: final.pdf", want: "report_ final.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeFileName(tt.input); got != tt.want {
				t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
