package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/chronos-tachyon/huffman/v2"
)

const testInput = "abracadabra"

func TestBuildPipeline(t *testing.T) {
	for _, canonical := range []bool{false, true} {
		p, err := buildPipeline([]byte(testInput), options{canonical: canonical})
		if err != nil {
			t.Fatalf("canonical=%v: buildPipeline failed: %v", canonical, err)
		}
		if p.tree.NumSymbols() != 5 {
			t.Errorf("canonical=%v: expected 5 symbols, got %d", canonical, p.tree.NumSymbols())
		}
		if expect := huffman.CanonicalCodes(p.tree); canonical && !p.codes.Equal(expect) {
			t.Errorf("canonical=%v: tree does not reproduce the canonical codes", canonical)
		}
	}

	_, err := buildPipeline(nil, options{})
	if !errors.Is(err, huffman.ErrEmptyAlphabet) {
		t.Errorf("expected ErrEmptyAlphabet, got %v", err)
	}
}

func TestRunCodes(t *testing.T) {
	var buf bytes.Buffer
	if err := runCodes(&buf, []byte(testInput), options{}); err != nil {
		t.Fatalf("runCodes failed: %v", err)
	}

	// a:5*1 + b:2*3 + c:1*3 + d:1*3 + r:2*3
	actual := buf.String()
	if !strings.HasPrefix(actual, "CodeTable{\n") {
		t.Errorf("unexpected output:\n%s", actual)
	}
	if !strings.HasSuffix(actual, "WeightedLength() = 23\n") {
		t.Errorf("unexpected output:\n%s", actual)
	}
}

func TestRunFreqs(t *testing.T) {
	type testRow struct {
		name   string
		opts   options
		expect string
	}

	testData := [...]testRow{
		{
			name: "all",
			opts: options{},
			expect: "'a'\t5\t\"0\"\n" +
				"'b'\t2\t\"110\"\n" +
				"'c'\t1\t\"100\"\n" +
				"'d'\t1\t\"101\"\n" +
				"'r'\t2\t\"111\"\n",
		},
		{
			name: "canonical",
			opts: options{canonical: true},
			expect: "'a'\t5\t\"0\"\n" +
				"'b'\t2\t\"100\"\n" +
				"'c'\t1\t\"101\"\n" +
				"'d'\t1\t\"110\"\n" +
				"'r'\t2\t\"111\"\n",
		},
		{
			name:   "symbol",
			opts:   options{symbol: "b"},
			expect: "'b'\t2\t\"110\"\n",
		},
		{
			name:   "symbol-canonical",
			opts:   options{symbol: "b", canonical: true},
			expect: "'b'\t2\t\"100\"\n",
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := runFreqs(&buf, []byte(testInput), row.opts); err != nil {
				t.Fatalf("runFreqs failed: %v", err)
			}
			if actual := buf.String(); actual != row.expect {
				t.Errorf("wrong output:\n\texpect: %q\n\tactual: %q", row.expect, actual)
			}
		})
	}

	var buf bytes.Buffer
	err := runFreqs(&buf, []byte(testInput), options{symbol: "z"})
	if !errors.Is(err, huffman.ErrSymbolNotInAlphabet) {
		t.Errorf("expected ErrSymbolNotInAlphabet, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestRunRoundTrip(t *testing.T) {
	inputs := []string{
		testInput,
		"aaaaaaa",
		strings.Repeat("the quick brown fox jumps over the lazy dog\n", 50),
	}
	for _, input := range inputs {
		for _, opts := range []options{
			{workers: 1},
			{workers: 1, canonical: true},
			{workers: 4},
			{workers: 4, canonical: true},
		} {
			if err := runRoundTrip(nil, []byte(input), opts); err != nil {
				t.Errorf("runRoundTrip(%q, %+v) failed: %v", input[:min(len(input), 16)], opts, err)
			}
		}
	}
}
