package codegen

import "testing"

func TestNamesFor(t *testing.T) {
	got := NamesFor("calc")
	want := Names{
		Alphabet:     "calcAlphabet",
		DFA:          "calcDFA",
		DFAs:         "calcDFAs",
		Newlines:     "calcNewlines",
		Token:        "CalcToken",
		EndOfInput:   "ErrCalcEndOfInput",
		InvalidToken: "ErrCalcInvalidToken",
		Match:        "MatchCalc",
		Next:         "NextCalc",
	}
	if got != want {
		t.Errorf("NamesFor(%q) = %+v, want %+v", "calc", got, want)
	}
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"Calc", false},
		{"calc2", false},
		{"C_lang", false},
		{"", true},
		{"2calc", true},
		{"_calc", true},
		{"my-lexer", true},
	}

	for _, tt := range tests {
		err := ValidName(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
		}
	}
}

func TestLowerFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"A", "a"},
		{"ABC", "aBC"},
		{"Hello", "hello"},
		{"hello", "hello"},
		{"X", "x"},
	}

	for _, tt := range tests {
		got := LowerFirst(tt.input)
		if got != tt.want {
			t.Errorf("LowerFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestUpperFirst(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", ""},
		{"a", "A"},
		{"abc", "Abc"},
		{"hello", "Hello"},
		{"Hello", "Hello"},
		{"x", "X"},
	}

	for _, tt := range tests {
		got := UpperFirst(tt.input)
		if got != tt.want {
			t.Errorf("UpperFirst(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
