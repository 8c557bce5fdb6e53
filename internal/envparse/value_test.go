package envparse

import (
	"testing"

	"github.com/envcore/dotparse/internal/envscan"
)

func readValueString(input string, opts Options) (string, outcome, int) {
	s := envscan.New([]byte(input))
	var v value
	o := readValue(s, &v, opts, nil)
	return string(v.commit()), o, s.Index()
}

func TestReadValueModes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  Options
		want  string
	}{
		{name: "implicit unquoted", input: "bar\n", opts: DefaultOptions(), want: "bar"},
		{name: "implicit leading space dropped", input: "  bar\n", opts: DefaultOptions(), want: "bar"},
		{name: "single quoted", input: "'bar'\n", opts: DefaultOptions(), want: "bar"},
		{name: "single quoted no escapes", input: `'b\nr'` + "\n", opts: DefaultOptions(), want: `b\nr`},
		{name: "double quoted with escape", input: `"b\nr"` + "\n", opts: DefaultOptions(), want: "b\nr"},
		{name: "empty single quoted", input: "''\n", opts: DefaultOptions(), want: ""},
		{name: "empty double quoted", input: `""` + "\n", opts: DefaultOptions(), want: ""},
		{name: "backtick quoted", input: "`bar`\n", opts: DefaultOptions(), want: "bar"},
		{name: "triple single heredoc with newline", input: "'''line1\nline2'''\n", opts: DefaultOptions(), want: "line1\nline2"},
		{name: "triple double heredoc with newline", input: `"""line1` + "\n" + `line2"""` + "\n", opts: DefaultOptions(), want: "line1\nline2"},
		{name: "triple single with embedded stray quote", input: "'''it''s fine'''\n", opts: DefaultOptions(), want: "it''s fine"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, o, _ := readValueString(tt.input, tt.opts)
			if o != outcomeSuccess {
				t.Fatalf("outcome = %v, want outcomeSuccess", o)
			}
			if got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadValueEscapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "newline", input: `"\n"` + "\n", want: "\n"},
		{name: "tab", input: `"\t"` + "\n", want: "\t"},
		{name: "carriage return", input: `"\r"` + "\n", want: "\r"},
		{name: "backslash", input: `"\\"` + "\n", want: `\`},
		{name: "escaped double quote", input: `"a\"b"` + "\n", want: `a"b`},
		{name: "unknown escape kept literal", input: `"a\qb"` + "\n", want: `a\qb`},
		{name: "double backslash collapses to one", input: `"a\\\\b"` + "\n", want: `a\\b`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, o, _ := readValueString(tt.input, DefaultOptions())
			if o != outcomeSuccess {
				t.Fatalf("outcome = %v, want outcomeSuccess", o)
			}
			if got != tt.want {
				t.Errorf("value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadValueInlineHashStopsImplicitValue(t *testing.T) {
	// readValue itself reports outcomeComment for an inline "# ..." in
	// an unquoted value; readPair is what folds that back into a
	// successful pair keeping the value accumulated so far.
	got, o, _ := readValueString("bar#comment\n", DefaultOptions())
	if o != outcomeComment {
		t.Fatalf("outcome = %v, want outcomeComment", o)
	}
	if got != "bar" {
		t.Fatalf("value = %q, want %q", got, "bar")
	}
}

func TestReadValueCommentOnly(t *testing.T) {
	got, o, _ := readValueString("#just a comment\n", DefaultOptions())
	if o != outcomeComment {
		t.Fatalf("outcome = %v, want outcomeComment", o)
	}
	if got != "" {
		t.Fatalf("value = %q, want empty", got)
	}
}

func TestReadValueGarbageAfterQuoteDiscarded(t *testing.T) {
	got, o, idx := readValueString("'bar' garbage here\nNEXT=1", DefaultOptions())
	if o != outcomeSuccess {
		t.Fatalf("outcome = %v, want outcomeSuccess", o)
	}
	if got != "bar" {
		t.Fatalf("value = %q, want %q", got, "bar")
	}
	if idx != len("'bar' garbage here\n") {
		t.Fatalf("index after garbage-clear = %d, want %d", idx, len("'bar' garbage here\n"))
	}
}

func TestReadValueMarkerPositions(t *testing.T) {
	s := envscan.New([]byte("${FOO} and ${BAR}\n"))
	var v value
	o := readValue(s, &v, DefaultOptions(), nil)
	if o != outcomeSuccess {
		t.Fatalf("outcome = %v, want outcomeSuccess", o)
	}
	positions := append([]variablePosition(nil), v.positions...)
	owned := v.commit()

	if len(positions) != 2 {
		t.Fatalf("len(positions) = %d, want 2", len(positions))
	}
	if name := string(owned[positions[0].nameStart:positions[0].nameEnd]); name != "FOO" {
		t.Errorf("positions[0] name = %q, want FOO", name)
	}
	if name := string(owned[positions[1].nameStart:positions[1].nameEnd]); name != "BAR" {
		t.Errorf("positions[1] name = %q, want BAR", name)
	}
	for i, p := range positions {
		if !(p.start < p.end && p.end <= len(owned)) {
			t.Errorf("positions[%d] = %+v out of range for value of length %d", i, p, len(owned))
		}
	}
}

func TestReadValueUnknownEscapeRecordsDiagnostic(t *testing.T) {
	s := envscan.New([]byte(`"a\qb"` + "\n"))
	var v value
	var diag Diagnostics
	o := readValue(s, &v, DefaultOptions(), &diag)
	if o != outcomeSuccess {
		t.Fatalf("outcome = %v, want outcomeSuccess", o)
	}
	if got := string(v.commit()); got != `a\qb` {
		t.Fatalf("value = %q, want %q", got, `a\qb`)
	}
	issues := diag.Issues()
	if len(issues) != 1 || issues[0].Reason != ReasonUnknownEscape {
		t.Fatalf("issues = %+v, want a single ReasonUnknownEscape", issues)
	}
}

func TestReadValueEscapedInterpolationNotRecorded(t *testing.T) {
	// A backslash immediately before '{' breaks "$" / "{" adjacency, so
	// the brace is never treated as an interpolation opener.
	s := envscan.New([]byte("$\\{FOO}\n"))
	var v value
	readValue(s, &v, DefaultOptions(), nil)
	if len(v.positions) != 0 {
		t.Fatalf("len(positions) = %d, want 0 for an escaped marker", len(v.positions))
	}
}
