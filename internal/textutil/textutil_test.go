package textutil

import "testing"

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"  jane  DOE ": "Jane Doe",
		"madonna":      "Madonna",
		"":             "",
		"ANNA maria":   "Anna Maria",
	}
	for input, want := range cases {
		if got := TitleCase(input); got != want {
			t.Fatalf("TitleCase(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestStripHTML(t *testing.T) {
	input := "<p>First line<br>second   line</p><p>Third &amp; last</p>"
	want := "First line\nsecond line\nThird & last"
	if got := StripHTML(input); got != want {
		t.Fatalf("StripHTML = %q, want %q", got, want)
	}
}

func TestStripHTMLPlainText(t *testing.T) {
	if got := StripHTML("  just text  "); got != "just text" {
		t.Fatalf("unexpected plain text result %q", got)
	}
}
