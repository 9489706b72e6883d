package domain

import "testing"

func TestNewSourceFile(t *testing.T) {
	f := NewSourceFile("/work/HW3-Jane Doe-final.docx")
	if f.Stem != "HW3-Jane Doe-final" {
		t.Errorf("Stem = %q", f.Stem)
	}
	if f.Ext != ".docx" {
		t.Errorf("Ext = %q", f.Ext)
	}
	if f.NormalizedStem != "hw3 jane doe final" {
		t.Errorf("NormalizedStem = %q", f.NormalizedStem)
	}
}

func TestExtract_WindowsLongestFirst(t *testing.T) {
	ex := &Extractor{MaxWindow: 2}
	file := NewSourceFile("HW3-Jane Doe-final.docx")

	got := ex.Extract(file)
	want := []Candidate{
		{Text: "hw3 jane", Start: 0, Tokens: 2},
		{Text: "jane doe", Start: 1, Tokens: 2},
		{Text: "doe final", Start: 2, Tokens: 2},
		{Text: "hw3", Start: 0, Tokens: 1},
		{Text: "jane", Start: 1, Tokens: 1},
		{Text: "doe", Start: 2, Tokens: 1},
		{Text: "final", Start: 3, Tokens: 1},
	}

	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestExtract_OrderingNonIncreasing(t *testing.T) {
	ex := &Extractor{MaxWindow: 3}
	file := NewSourceFile("a-b-c-d-e.pdf")

	prev := int(^uint(0) >> 1)
	for _, c := range ex.Extract(file) {
		if c.Tokens > prev {
			t.Fatalf("candidate ordering increased in token length: %+v", c)
		}
		prev = c.Tokens
	}
}

func TestExtract_WindowCappedByStemLength(t *testing.T) {
	ex := &Extractor{MaxWindow: 10}
	file := NewSourceFile("jane.docx")

	got := ex.Extract(file)
	if len(got) != 1 || got[0].Text != "jane" {
		t.Errorf("expected single candidate jane, got %v", got)
	}
}

func TestExtract_EmptyStem(t *testing.T) {
	ex := &Extractor{MaxWindow: 2}
	if got := ex.Extract(NewSourceFile("---.docx")); got != nil {
		t.Errorf("expected no candidates, got %v", got)
	}
}

func TestExtractIDs(t *testing.T) {
	ex := &Extractor{MaxWindow: 2}

	tests := []struct {
		name string
		file string
		want []string
	}{
		{name: "student id run", file: "20210001-Jane.docx", want: []string{"20210001"}},
		{name: "short runs ignored", file: "HW3-Jane v2.docx", want: nil},
		{name: "two runs", file: "20210001_20210002.pdf", want: []string{"20210001", "20210002"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ex.ExtractIDs(NewSourceFile(tt.file))
			if len(got) != len(tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, got)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("run %d: expected %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestCandidateOverlaps(t *testing.T) {
	a := Candidate{Start: 0, Tokens: 2}
	b := Candidate{Start: 1, Tokens: 1}
	c := Candidate{Start: 2, Tokens: 1}

	if !a.Overlaps(b) {
		t.Error("expected a to overlap b")
	}
	if a.Overlaps(c) {
		t.Error("expected a not to overlap c")
	}
}
