package off

import (
	"bufio"
	"errors"
	"strings"
	"testing"

	"github.com/spaghettifunk/offmesh/engine/core"
)

func TestSkipLineLongerThanBuffer(t *testing.T) {
	long := "OFF " + strings.Repeat("x", 100) + "\n42\n"
	tk := NewTokenizer(bufio.NewReaderSize(strings.NewReader(long), 16))

	if err := tk.SkipLine(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tk.Line() != 2 {
		t.Errorf("expected line 2, got %d", tk.Line())
	}
	n, err := ReadInt[int](tk)
	if err != nil || n != 42 {
		t.Errorf("ReadInt = %d, %v", n, err)
	}
}

func TestAtLineEnd(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected bool
	}{
		{name: "newline", input: "\nnext", expected: true},
		{name: "blanks then newline", input: " \t\r\n", expected: true},
		{name: "end of stream", input: "   ", expected: true},
		{name: "comment", input: "  # trailing", expected: true},
		{name: "token", input: "  0.5 1", expected: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewTokenizer(strings.NewReader(tc.input)).AtLineEnd()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.expected {
				t.Errorf("AtLineEnd() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestReadNumbers(t *testing.T) {
	tk := NewTokenizer(strings.NewReader("  -1.5e2\n\n  +7 -3 1e400"))

	f, err := ReadFloat[float32](tk)
	if err != nil || f != -150 {
		t.Errorf("ReadFloat = %v, %v", f, err)
	}
	u, err := ReadInt[uint16](tk)
	if err != nil || u != 7 {
		t.Errorf("ReadInt[uint16] = %v, %v", u, err)
	}
	i, err := ReadInt[int8](tk)
	if err != nil || i != -3 {
		t.Errorf("ReadInt[int8] = %v, %v", i, err)
	}
	if tk.Line() != 3 {
		t.Errorf("expected line 3, got %d", tk.Line())
	}
	if _, err := ReadFloat[float64](tk); !errors.Is(err, core.ErrMalformedNumber) {
		t.Errorf("expected ErrMalformedNumber for overflow, got %v", err)
	}
	if _, err := ReadFloat[float64](tk); !errors.Is(err, core.ErrTruncatedInput) {
		t.Errorf("expected ErrTruncatedInput at end of stream, got %v", err)
	}
}

func TestReadFloatDecimalOnly(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected float64
		valid    bool
	}{
		{name: "integer", input: "42", expected: 42, valid: true},
		{name: "signed exponent", input: "-1.5E+2", expected: -150, valid: true},
		{name: "leading dot", input: ".5", expected: 0.5, valid: true},
		{name: "trailing dot", input: "+5.", expected: 5, valid: true},
		{name: "hex float", input: "0x1p3"},
		{name: "nan", input: "nan"},
		{name: "inf", input: "Inf"},
		{name: "infinity", input: "-infinity"},
		{name: "bare dot", input: "."},
		{name: "missing exponent digits", input: "1e"},
		{name: "underscore", input: "1_000"},
		{name: "trailing garbage", input: "1.0f"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadFloat[float64](NewTokenizer(strings.NewReader(tc.input)))
			if !tc.valid {
				if !errors.Is(err, core.ErrMalformedNumber) {
					t.Errorf("expected ErrMalformedNumber for %q, got %v (%v)", tc.input, err, got)
				}
				return
			}
			if err != nil || got != tc.expected {
				t.Errorf("ReadFloat(%q) = %v, %v; want %v", tc.input, got, err, tc.expected)
			}
		})
	}
}
