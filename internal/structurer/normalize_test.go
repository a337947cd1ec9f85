package structurer

import "testing"

func TestNormalize_CollapsesSpacesAndTrimsLines(t *testing.T) {
	in := "Customer   Name:\t Rahul  Sharma  \n   Address:  12 Palm Grove "
	want := "Customer Name: Rahul Sharma\nAddress: 12 Palm Grove"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_RejoinsHyphenWrappedWords(t *testing.T) {
	in := "terrace water-\nproofing layer"
	want := "terrace waterproofing layer"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_CollapsesBlankLineRuns(t *testing.T) {
	in := "first\n\n\n\n\nsecond"
	want := "first\n\nsecond"
	if got := Normalize(in); got != want {
		t.Errorf("Normalize() = %q, want %q", got, want)
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"plain line",
		"a\n \n \nb", // whitespace-only lines must not survive a pass
		"x  y\n\n\n\nz\t\tw",
		"water-\n proofing\n\n\n\ndone  ",
	}
	for _, in := range inputs {
		once := Normalize(in)
		twice := Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestNormalize_Empty(t *testing.T) {
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
	if got := Normalize("   \n\t\n  "); got != "" {
		t.Errorf("Normalize(whitespace) = %q, want empty", got)
	}
}
