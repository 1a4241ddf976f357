package huffman

import (
	"math"
	mathbits "math/bits"
	"sort"
	"strconv"
	"strings"
)

// FrequencyTable maps each Symbol to its number of occurrences.
//
// Symbols with a frequency of 0 are treated as absent.
type FrequencyTable map[Symbol]uint64

// FrequenciesOf counts the occurrences of each Symbol in the input.
func FrequenciesOf(symbols []Symbol) FrequencyTable {
	ft := make(FrequencyTable)
	for _, symbol := range symbols {
		ft[symbol]++
	}
	return ft
}

// FrequenciesOfBytes counts the occurrences of each byte in the input.
func FrequenciesOfBytes(data []byte) FrequencyTable {
	var counts [256]uint64
	for _, b := range data {
		counts[b]++
	}
	ft := make(FrequencyTable)
	for b, count := range counts {
		if count != 0 {
			ft[Symbol(b)] = count
		}
	}
	return ft
}

// Symbols returns the Symbols with non-zero frequency, in ascending order.
func (ft FrequencyTable) Symbols() []Symbol {
	out := make(bySymbol, 0, len(ft))
	for symbol, freq := range ft {
		if freq != 0 {
			out = append(out, symbol)
		}
	}
	out.Sort()
	return out
}

// Total returns the sum of all frequencies.  If the sum does not fit in a
// uint64, Total returns math.MaxUint64.
func (ft FrequencyTable) Total() uint64 {
	sum, ok := ft.total()
	if !ok {
		return math.MaxUint64
	}
	return sum
}

func (ft FrequencyTable) total() (uint64, bool) {
	var sum uint64
	for _, freq := range ft {
		next, carry := mathbits.Add64(sum, freq, 0)
		if carry != 0 {
			return 0, false
		}
		sum = next
	}
	return sum, true
}

// key returns a string which is equal for two tables iff they hold the same
// non-zero entries.
func (ft FrequencyTable) key() string {
	var sb strings.Builder
	for _, symbol := range ft.Symbols() {
		sb.WriteString(strconv.FormatInt(int64(symbol), 10))
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatUint(ft[symbol], 10))
		sb.WriteByte(',')
	}
	return sb.String()
}

// type bySymbol {{{

type bySymbol []Symbol

func (list bySymbol) Sort() {
	sort.Sort(list)
}

func (list bySymbol) Len() int {
	return len(list)
}

func (list bySymbol) Swap(i, j int) {
	list[i], list[j] = list[j], list[i]
}

func (list bySymbol) Less(i, j int) bool {
	return list[i] < list[j]
}

var _ sort.Interface = bySymbol(nil)

// }}}
