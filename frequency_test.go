package huffman

import (
	"math"
	"testing"
)

func TestFrequenciesOfBytes(t *testing.T) {
	ft := FrequenciesOfBytes([]byte("abracadabra"))

	expect := FrequencyTable{'a': 5, 'b': 2, 'r': 2, 'c': 1, 'd': 1}
	if len(ft) != len(expect) {
		t.Errorf("expected %d entries, got %d", len(expect), len(ft))
	}
	for symbol, freq := range expect {
		if ft[symbol] != freq {
			t.Errorf("symbol %c: expected %d, got %d", rune(symbol), freq, ft[symbol])
		}
	}
	if ft.Total() != 11 {
		t.Errorf("expected total 11, got %d", ft.Total())
	}

	same := FrequenciesOf(SymbolsOf([]byte("abracadabra")))
	if ft.key() != same.key() {
		t.Errorf("FrequenciesOf and FrequenciesOfBytes disagree:\n\texpect: %s\n\tactual: %s", ft.key(), same.key())
	}
}

func TestFrequencyTable_Symbols(t *testing.T) {
	ft := FrequencyTable{'z': 1, 'a': 3, 'm': 0, 'q': 2}
	expect := []Symbol{'a', 'q', 'z'}
	if actual := ft.Symbols(); !symbolsEqual(expect, actual) {
		t.Errorf("wrong output:\n\texpect: %v\n\tactual: %v", expect, actual)
	}
}

func TestBytesOf(t *testing.T) {
	if out, ok := BytesOf([]Symbol{'h', 'i'}); !ok || string(out) != "hi" {
		t.Errorf("expected \"hi\", got %q (%v)", out, ok)
	}
	if _, ok := BytesOf([]Symbol{'h', 300}); ok {
		t.Errorf("expected failure for symbol outside the byte range")
	}
}

func TestFrequencyTable_TotalSaturates(t *testing.T) {
	ft := FrequencyTable{'a': math.MaxUint64 - 3, 'b': 2, 'c': 2}
	if actual := ft.Total(); actual != math.MaxUint64 {
		t.Errorf("expected %d, got %d", uint64(math.MaxUint64), actual)
	}
}
