package diag

import (
	"reflect"
	"testing"
)

func TestParse_LineShape(t *testing.T) {
	got := Parse("Line 5: unexpected token")
	want := []Diagnostic{{Message: "unexpected token", Line: 5, Severity: SeverityError}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %+v, want %+v", got, want)
	}
}

func TestParse_LineColumnShape(t *testing.T) {
	got := Parse("Error at line 3, column 10: missing quote")
	want := []Diagnostic{{Message: "missing quote", Line: 3, Column: 10, Severity: SeverityError}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %+v, want %+v", got, want)
	}
}

func TestParse_WarningShape(t *testing.T) {
	got := Parse("Warning: deprecated syntax")
	want := []Diagnostic{{Message: "deprecated syntax", Severity: SeverityWarning}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %+v, want %+v", got, want)
	}
}

func TestParse_Empty(t *testing.T) {
	if got := Parse(""); len(got) != 0 {
		t.Errorf("Parse(\"\") = %+v, want empty", got)
	}
}

func TestParse_DropsNonMatchingLines(t *testing.T) {
	got := Parse("random line\nLine 2: bad\n")
	want := []Diagnostic{{Message: "bad", Line: 2, Severity: SeverityError}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %+v, want %+v", got, want)
	}
}

func TestParse_GenericErrorFallback(t *testing.T) {
	got := Parse("custom error happened")
	want := []Diagnostic{{Message: "custom error happened", Severity: SeverityError}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %+v, want %+v", got, want)
	}
}

func TestParse_FallbackIsCaseInsensitive(t *testing.T) {
	got := Parse("  ERROR: stack overflow  ")
	want := []Diagnostic{{Message: "ERROR: stack overflow", Severity: SeverityError}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse = %+v, want %+v", got, want)
	}
}

func TestParse_PreservesInputOrder(t *testing.T) {
	raw := "Warning: shadowed name\nLine 9: bad call\nnoise\nError at line 1, column 2: oops"
	got := Parse(raw)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3: %+v", len(got), got)
	}
	if got[0].Severity != SeverityWarning {
		t.Errorf("got[0] = %+v, want the warning first", got[0])
	}
	if got[1].Line != 9 {
		t.Errorf("got[1] = %+v, want line 9", got[1])
	}
	if got[2].Line != 1 || got[2].Column != 2 {
		t.Errorf("got[2] = %+v, want line 1 column 2", got[2])
	}
}

func TestParse_ColumnNeverWithoutLine(t *testing.T) {
	raw := "Line 5: a\nError at line 3, column 10: b\nWarning: c\nsome error d"
	for _, d := range Parse(raw) {
		if d.Column > 0 && d.Line == 0 {
			t.Errorf("diagnostic %+v has column without line", d)
		}
	}
}

func TestParse_BlankAndWhitespaceLines(t *testing.T) {
	if got := Parse("\n   \n\t\n"); len(got) != 0 {
		t.Errorf("Parse(whitespace) = %+v, want empty", got)
	}
}
