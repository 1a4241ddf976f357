package huffman

import (
	"errors"
	"math/rand"
	"sync"
	"testing"
)

func symbolsEqual(a, b []Symbol) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestDecode_Example(t *testing.T) {
	tree, err := BuildTree(makeExampleFrequencies())
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}

	type testRow struct {
		bits   string
		expect string
	}

	testData := [...]testRow{
		{bits: "1100", expect: "aab"},
		{bits: "100010011", expect: "abcd"},
		{bits: "011010001", expect: "dcba"},
		{bits: "1", expect: "a"},
	}
	for _, row := range testData {
		t.Run(row.bits, func(t *testing.T) {
			symbols, err := Decode(MustParseBits(row.bits), tree)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			actual, ok := BytesOf(symbols)
			if !ok || string(actual) != row.expect {
				t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", row.expect, actual)
			}
		})
	}
}

func TestDecode_Empty(t *testing.T) {
	for _, freqs := range []FrequencyTable{makeExampleFrequencies(), {'a': 1}} {
		tree, err := BuildTree(freqs)
		if err != nil {
			t.Fatalf("BuildTree failed: %v", err)
		}
		symbols, err := Decode(BitSequence{}, tree)
		if err != nil {
			t.Errorf("Decode failed: %v", err)
		}
		if symbols == nil || len(symbols) != 0 {
			t.Errorf("expected empty non-nil result, got %#v", symbols)
		}
	}
}

func TestDecode_SingleSymbol(t *testing.T) {
	tree, err := BuildTree(FrequencyTable{'k': 42})
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}

	symbols, err := Decode(MustParseBits("0000"), tree)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !symbolsEqual(symbols, []Symbol{'k', 'k', 'k', 'k'}) {
		t.Errorf("expected 4 copies of %d, got %v", 'k', symbols)
	}

	_, err = Decode(MustParseBits("0010"), tree)
	var ice *InvalidCodeError
	if !errors.As(err, &ice) {
		t.Fatalf("expected *InvalidCodeError, got %v", err)
	}
	if ice.Offset != 2 {
		t.Errorf("expected offset 2, got %d", ice.Offset)
	}
	if !errors.Is(err, ErrInvalidCode) {
		t.Errorf("expected errors.Is(err, ErrInvalidCode)")
	}
}

func TestDecode_Truncated(t *testing.T) {
	tree, err := BuildTree(makeExampleFrequencies())
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	codes := GenerateCodes(tree)

	input := SymbolsOf([]byte("abcdcba"))
	bits, err := Encode(input, codes)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	// boundaries[k] is the number of symbols completed after k bits, or -1
	// if k falls inside a code.
	boundaries := make([]int, bits.Len()+1)
	for i := range boundaries {
		boundaries[i] = -1
	}
	boundaries[0] = 0
	var offset int
	for i, symbol := range input {
		code, _ := codes.Lookup(symbol)
		offset += code.Len()
		boundaries[offset] = i + 1
	}

	for k := 1; k < bits.Len(); k++ {
		symbols, err := Decode(bits.Prefix(k), tree)
		if boundaries[k] < 0 {
			var tse *TruncatedStreamError
			if !errors.As(err, &tse) {
				t.Errorf("prefix %d: expected *TruncatedStreamError, got %v", k, err)
				continue
			}
			if !errors.Is(err, ErrTruncatedStream) {
				t.Errorf("prefix %d: expected errors.Is(err, ErrTruncatedStream)", k)
			}
			if tse.Consumed != k || tse.Pending < 1 {
				t.Errorf("prefix %d: unexpected error details %+v", k, *tse)
			}
			if symbols != nil {
				t.Errorf("prefix %d: expected no output, got %v", k, symbols)
			}
			continue
		}
		if err != nil {
			t.Errorf("prefix %d: Decode failed: %v", k, err)
			continue
		}
		if !symbolsEqual(symbols, input[:boundaries[k]]) {
			t.Errorf("prefix %d: expected %v, got %v", k, input[:boundaries[k]], symbols)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(0x6875666600000008))

	for iteration := 0; iteration < 50; iteration++ {
		alphabet := make([]Symbol, 1+rng.Intn(40))
		for i := range alphabet {
			alphabet[i] = Symbol(rng.Intn(256))
		}
		input := randomSymbols(rng, alphabet, 1+rng.Intn(500))

		freqs := FrequenciesOf(input)
		tree, err := BuildTree(freqs)
		if err != nil {
			t.Fatalf("BuildTree failed: %v", err)
		}
		codes := GenerateCodes(tree)

		bits, err := Encode(input, codes)
		if err != nil {
			t.Fatalf("Encode failed: %v", err)
		}
		if uint64(bits.Len()) != codes.WeightedLength(freqs) {
			t.Errorf("expected %d bits, got %d", codes.WeightedLength(freqs), bits.Len())
		}

		output, err := Decode(bits, tree)
		if err != nil {
			t.Fatalf("Decode failed: %v", err)
		}
		if !symbolsEqual(input, output) {
			t.Fatalf("iteration %d: round trip mismatch", iteration)
		}
	}
}

func TestDecode_Concurrent(t *testing.T) {
	rng := rand.New(rand.NewSource(0x6875666600000009))
	alphabet := []Symbol{1, 2, 3, 5, 8, 13, 21, 34}
	input := randomSymbols(rng, alphabet, 2000)

	tree, err := BuildTree(FrequenciesOf(input))
	if err != nil {
		t.Fatalf("BuildTree failed: %v", err)
	}
	codes := GenerateCodes(tree)

	var wg sync.WaitGroup
	failures := make([]bool, 8)
	for i := range failures {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			bits, err := Encode(input, codes)
			if err != nil {
				failures[i] = true
				return
			}
			output, err := Decode(bits, tree)
			failures[i] = err != nil || !symbolsEqual(input, output)
		}(i)
	}
	wg.Wait()

	for i, failed := range failures {
		if failed {
			t.Errorf("goroutine %d: round trip failed", i)
		}
	}
}
