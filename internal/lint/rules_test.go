package lint

import (
	"strings"
	"testing"

	"julint/internal/diag"
	"julint/internal/source"
)

func checkText(t *testing.T, text string) *Report {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.jl", []byte(text))
	return Check(fs.Get(id), Options{})
}

func issueWithCode(rep *Report, code diag.Code) (diag.Diagnostic, bool) {
	for _, d := range rep.Bag.Items() {
		if d.Code == code {
			return d, true
		}
	}
	return diag.Diagnostic{}, false
}

func TestBlockBalance(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    bool
		message string
	}{
		{
			name:  "balanced function and end",
			input: "function foo()\nend\n",
			want:  false,
		},
		{
			name:    "function without end",
			input:   "function foo()\n",
			want:    true,
			message: "imbalance: 1 'function' vs 0 'end'",
		},
		{
			name:    "end without function",
			input:   "x = 1\nend\n",
			want:    true,
			message: "imbalance: 0 'function' vs 1 'end'",
		},
		{
			name:  "indented end line still counts",
			input: "function foo()\n    end\n",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := checkText(t, tt.input)
			d, got := issueWithCode(rep, diag.BlockImbalance)
			if got != tt.want {
				t.Fatalf("BlockImbalance fired = %v, want %v", got, tt.want)
			}
			if tt.message != "" && d.Message != tt.message {
				t.Errorf("message = %q, want %q", d.Message, tt.message)
			}
		})
	}
}

func TestCatchSyntax(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		want     bool
		fragment string
	}{
		{
			name:  "catch with identifier and semicolon",
			input: "try\nf()\ncatch err;\ng()\nend\n",
			want:  false,
		},
		{
			name:  "catch with underscore",
			input: "try\nf()\ncatch _\ng()\nend\n",
			want:  false,
		},
		{
			name:     "catch with bare identifier",
			input:    "try\nf()\ncatch e\ng()\nend\n",
			want:     true,
			fragment: "catch e",
		},
		{
			name:     "double space before underscore is still flagged",
			input:    "catch  _\n",
			want:     true,
			fragment: "catch  _",
		},
		{
			name:  "catch at end of input without terminator",
			input: "catch e",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := checkText(t, tt.input)
			d, got := issueWithCode(rep, diag.InvalidCatch)
			if got != tt.want {
				t.Fatalf("InvalidCatch fired = %v, want %v", got, tt.want)
			}
			if tt.fragment != "" && !strings.Contains(d.Message, "'"+tt.fragment+"'") {
				t.Errorf("message %q does not quote fragment %q", d.Message, tt.fragment)
			}
		})
	}
}

func TestQuoteBalance(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"balanced doubles", `s = "ok"` + "\n", false},
		{"unterminated string", `s = "oops` + "\n", true},
		{"odd mixed count", `s = 'a' * "b` + "\n", true},
		{"no quotes at all", "x = 1\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := checkText(t, tt.input)
			if _, got := issueWithCode(rep, diag.UnbalancedQuotes); got != tt.want {
				t.Errorf("UnbalancedQuotes fired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCharLiterals(t *testing.T) {
	t.Run("two character literal", func(t *testing.T) {
		rep := checkText(t, "c = 'ab'\n")
		d, ok := issueWithCode(rep, diag.MultiCharLiteral)
		if !ok {
			t.Fatal("MultiCharLiteral did not fire")
		}
		if !strings.Contains(d.Message, "'ab'") {
			t.Errorf("message %q does not list 'ab'", d.Message)
		}
	})

	t.Run("single character literal is fine", func(t *testing.T) {
		rep := checkText(t, "c = 'a'\n")
		if _, ok := issueWithCode(rep, diag.MultiCharLiteral); ok {
			t.Error("MultiCharLiteral fired on a single-char literal")
		}
	})

	t.Run("text between literals matches too", func(t *testing.T) {
		// non-overlapping scan picks up ' * ' between the two literals
		rep := checkText(t, "c = 'a' * 'b'\n")
		d, ok := issueWithCode(rep, diag.MultiCharLiteral)
		if !ok {
			t.Fatal("MultiCharLiteral did not fire")
		}
		if !strings.Contains(d.Message, "' * '") {
			t.Errorf("message %q does not list the inter-literal match", d.Message)
		}
	})

	t.Run("only first three listed", func(t *testing.T) {
		rep := checkText(t, "'ab' 'cd' 'ef' 'gh'\n")
		d, ok := issueWithCode(rep, diag.MultiCharLiteral)
		if !ok {
			t.Fatal("MultiCharLiteral did not fire")
		}
		for _, want := range []string{"'ab'", "'cd'", "'ef'"} {
			if !strings.Contains(d.Message, want) {
				t.Errorf("message %q does not list %s", d.Message, want)
			}
		}
		if strings.Contains(d.Message, "'gh'") {
			t.Errorf("message %q lists a fourth literal", d.Message)
		}
		if !strings.Contains(d.Message, "(4 total)") {
			t.Errorf("message %q does not carry the total", d.Message)
		}
	})
}

func TestIndentation(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		want      bool
		histogram string
	}{
		{
			name:  "multiples of four",
			input: "x = 1\n    y = 2\n        z = 3\n",
			want:  false,
		},
		{
			name:      "two space indent",
			input:     "x = 1\n  y = 2\n",
			want:      true,
			histogram: "0:1 2:1",
		},
		{
			name:  "blank lines ignored",
			input: "x = 1\n\n   \ny = 2\n",
			want:  false,
		},
		{
			name:      "tab counts as one",
			input:     "\tx = 1\n",
			want:      true,
			histogram: "1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := checkText(t, tt.input)
			d, got := issueWithCode(rep, diag.IndentResidue)
			if got != tt.want {
				t.Fatalf("IndentResidue fired = %v, want %v", got, tt.want)
			}
			if tt.histogram != "" && !strings.Contains(d.Message, tt.histogram) {
				t.Errorf("message %q does not contain histogram %q", d.Message, tt.histogram)
			}
		})
	}
}

func TestRedundantConv(t *testing.T) {
	t.Run("T wrapping a literal", func(t *testing.T) {
		rep := checkText(t, "a = T(0.5)\n")
		d, ok := issueWithCode(rep, diag.RedundantConv)
		if !ok {
			t.Fatal("RedundantConv did not fire")
		}
		if !strings.Contains(d.Message, "T(0.5)") {
			t.Errorf("message %q does not list T(0.5)", d.Message)
		}
	})

	t.Run("other conversions untouched", func(t *testing.T) {
		rep := checkText(t, "a = Int(5)\n")
		if _, ok := issueWithCode(rep, diag.RedundantConv); ok {
			t.Error("RedundantConv fired on Int(5)")
		}
	})

	t.Run("substring match inside longer name", func(t *testing.T) {
		// the pattern is a raw substring match, so FloatT(1) trips it
		rep := checkText(t, "a = FloatT(1)\n")
		if _, ok := issueWithCode(rep, diag.RedundantConv); !ok {
			t.Error("RedundantConv did not fire on FloatT(1)")
		}
	})
}

func TestVagueFilter(t *testing.T) {
	t.Run("every match is reported", func(t *testing.T) {
		rep := checkText(t, `filter(tf -> "name" not in names)`+"\n")
		d, ok := issueWithCode(rep, diag.VagueFilter)
		if !ok {
			t.Fatal("VagueFilter did not fire")
		}
		if !strings.Contains(d.Message, "'name'") {
			t.Errorf("message %q does not quote the capture", d.Message)
		}
	})

	t.Run("empty capture", func(t *testing.T) {
		rep := checkText(t, `filter(tf -> "" not in names)`+"\n")
		if _, ok := issueWithCode(rep, diag.VagueFilter); !ok {
			t.Error("VagueFilter did not fire on empty capture")
		}
	})

	t.Run("no filter expression", func(t *testing.T) {
		rep := checkText(t, "x = 1\n")
		if _, ok := issueWithCode(rep, diag.VagueFilter); ok {
			t.Error("VagueFilter fired without a filter expression")
		}
	})
}

func TestPythonOps(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
		parts []string
	}{
		{
			name:  "and plus True",
			input: "x = True and y\n",
			want:  true,
			parts: []string{"'True' (use 'true')", "'and' (use '&&')"},
		},
		{
			name:  "is not operator",
			input: "a is not b\n",
			want:  true,
			parts: []string{"'is not' (use '!==')"},
		},
		{
			name:  "julia operators pass",
			input: "x = a && b\n",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := checkText(t, tt.input)
			d, got := issueWithCode(rep, diag.PythonOperator)
			if got != tt.want {
				t.Fatalf("PythonOperator fired = %v, want %v", got, tt.want)
			}
			for _, part := range tt.parts {
				if !strings.Contains(d.Message, part) {
					t.Errorf("message %q missing %q", d.Message, part)
				}
			}
		})
	}

	t.Run("more than three distinct tokens", func(t *testing.T) {
		rep := checkText(t, "and or elif True\n")
		d, ok := issueWithCode(rep, diag.PythonOperator)
		if !ok {
			t.Fatal("PythonOperator did not fire")
		}
		// ASCII sort puts True first; or is fourth and dropped
		if strings.Contains(d.Message, "'or'") {
			t.Errorf("message %q lists a fourth token", d.Message)
		}
		if !strings.HasSuffix(d.Message, ", ...") {
			t.Errorf("message %q does not mark truncation", d.Message)
		}
	})
}

func TestNotInFix(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFixed string
		autoFixed bool
	}{
		{
			name:      "double quoted operand",
			input:     `"x" not in y;` + "\n",
			wantFixed: "!x in y;\n",
			autoFixed: true,
		},
		{
			name:      "single quoted operand loses its content",
			input:     `'abc' not in list;` + "\n",
			wantFixed: "! in list;\n",
			autoFixed: true,
		},
		{
			name:      "two rewrites in one line",
			input:     `"a" not in xs, "b" not in ys;` + "\n",
			wantFixed: "!a in xs, !b in ys;\n",
			autoFixed: true,
		},
		{
			name:      "no quoted operand means no rewrite",
			input:     "x not in y;\n",
			wantFixed: "x not in y;\n",
			autoFixed: false,
		},
		{
			name:      "no negated membership at all",
			input:     "x in y;\n",
			wantFixed: "x in y;\n",
			autoFixed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rep := checkText(t, tt.input)
			if rep.AutoFixed != tt.autoFixed {
				t.Fatalf("AutoFixed = %v, want %v", rep.AutoFixed, tt.autoFixed)
			}
			if string(rep.Fixed) != tt.wantFixed {
				t.Errorf("Fixed = %q, want %q", rep.Fixed, tt.wantFixed)
			}
			if _, ok := issueWithCode(rep, diag.NotInRewritten); ok != tt.autoFixed {
				t.Errorf("NotInRewritten fired = %v, want %v", ok, tt.autoFixed)
			}
		})
	}

	t.Run("fix edits cover every match", func(t *testing.T) {
		rep := checkText(t, `"a" not in xs, "b" not in ys;`+"\n")
		d, ok := issueWithCode(rep, diag.NotInRewritten)
		if !ok {
			t.Fatal("NotInRewritten did not fire")
		}
		if len(d.Fixes) != 1 {
			t.Fatalf("fixes = %d, want 1", len(d.Fixes))
		}
		if len(d.Fixes[0].Edits) != 2 {
			t.Errorf("edits = %d, want 2", len(d.Fixes[0].Edits))
		}
		if d.Fixes[0].Edits[0].NewText != "!a in xs" {
			t.Errorf("first edit = %q, want %q", d.Fixes[0].Edits[0].NewText, "!a in xs")
		}
	})
}
