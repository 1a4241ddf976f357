package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"

	"github.com/chronos-tachyon/huffman/v2"
)

const progName = "huffman"
const usageMessageRaw = `
Usage: huffman OPTIONS COMMAND

Commands:
  codes
	Build the Huffman code for the bytes of the input and write the code
	table and the encoded size in bits to standard output.

  freqs
	Write one line per distinct byte of the input: the byte, its
	frequency, and its code.

  roundtrip
	Encode the input, decode it again, and verify that the result is
	identical to the input.

Options:
  -i FILE, -input FILE
	Read FILE instead of standard input.
  -c, -canonical
	Use the canonical code with the same code lengths.
  -s BYTE, -symbol BYTE
	Restrict the output of freqs to the single byte BYTE.
  -j N, -workers N
	Encode in chunks using up to N goroutines.
  -d, -debug
	Enable debug logging.
`

const chunkSize = 64 << 10

var log = logging.MustGetLogger("huffman")

type nullWriter struct{}

func (n *nullWriter) Write(p []byte) (int, error) {
	return len(p), nil
}

var ourFlags *flag.FlagSet

func usageMessage() string {
	return strings.TrimLeft(usageMessageRaw, "\n")
}

func usageErrorf(detailFmt string, detailArgs ...interface{}) {
	detail := fmt.Sprintf(detailFmt, detailArgs...)
	fmt.Fprintf(os.Stderr, "%s: %s\n%s", progName, detail, usageMessage())
	os.Exit(64)
}

func exitError(err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", progName, err.Error())
	os.Exit(1)
}

var leveledLogBackend logging.Leveled

func startLogging() {
	backend := logging.NewLogBackend(os.Stderr, progName+": ", 0)
	formatSpec := "%{level:8s} %{module:-20s} | %{message}"
	formatter := logging.MustStringFormatter(formatSpec)
	formatted := logging.NewBackendFormatter(backend, formatter)
	leveled := logging.AddModuleLevel(formatted)
	leveled.SetLevel(logging.INFO, "")
	logging.SetBackend(leveled)
	leveledLogBackend = leveled
}

type options struct {
	inputPath string
	symbol    string
	canonical bool
	workers   int
}

type command func(w io.Writer, data []byte, opts options) error

func main() {
	startLogging()

	ourFlags = flag.NewFlagSet(progName, flag.ContinueOnError)
	ourFlags.Usage = func() {}
	ourFlags.SetOutput(&nullWriter{})

	var opts options
	var debugLogging bool
	ourFlags.StringVar(&opts.inputPath, "input", "", "")
	ourFlags.StringVar(&opts.inputPath, "i", "", "")
	ourFlags.BoolVar(&opts.canonical, "canonical", false, "")
	ourFlags.BoolVar(&opts.canonical, "c", false, "")
	ourFlags.StringVar(&opts.symbol, "symbol", "", "")
	ourFlags.StringVar(&opts.symbol, "s", "", "")
	ourFlags.IntVar(&opts.workers, "workers", 1, "")
	ourFlags.IntVar(&opts.workers, "j", 1, "")
	ourFlags.BoolVar(&debugLogging, "debug", false, "")
	ourFlags.BoolVar(&debugLogging, "d", false, "")

	argErr := ourFlags.Parse(os.Args[1:])
	if argErr == flag.ErrHelp {
		io.WriteString(os.Stdout, usageMessage())
		os.Exit(0)
	} else if argErr != nil {
		usageErrorf("%s", argErr.Error())
	}

	if debugLogging {
		leveledLogBackend.SetLevel(logging.DEBUG, "")
	}

	if ourFlags.NArg() != 1 {
		usageErrorf("expected exactly one COMMAND")
	}

	if len(opts.symbol) > 1 {
		usageErrorf("-symbol expects a single byte, got %q", opts.symbol)
	}

	var cmd command
	switch cmdArg := ourFlags.Arg(0); cmdArg {
	default:
		usageErrorf("bad command \"%s\"", cmdArg)
	case "codes":
		cmd = runCodes
	case "freqs":
		cmd = runFreqs
	case "roundtrip":
		cmd = runRoundTrip
	}

	data, err := readInput(opts.inputPath)
	if err != nil {
		exitError(err)
	}

	if err := cmd(os.Stdout, data, opts); err != nil {
		exitError(err)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// pipeline holds everything derived from the input's frequency table.
type pipeline struct {
	freqs huffman.FrequencyTable
	tree  *huffman.Tree
	codes huffman.CodeTable
}

func buildPipeline(data []byte, opts options) (*pipeline, error) {
	freqs := huffman.FrequenciesOfBytes(data)
	log.Debugf("input has %d bytes over %d distinct symbols", len(data), len(freqs))

	tree, err := huffman.BuildTree(freqs)
	if err != nil {
		return nil, err
	}
	log.Debugf("tree has %d leaves, %d internal nodes, height %d", tree.NumLeaves(), tree.NumInternal(), tree.Height())

	codes := huffman.GenerateCodes(tree)
	if opts.canonical {
		codes = codes.Canonical()
		tree, err = huffman.TreeFromCodes(codes)
		if err != nil {
			return nil, err
		}
	}
	log.Debugf("code table fingerprint %016x", codes.Fingerprint())

	return &pipeline{freqs: freqs, tree: tree, codes: codes}, nil
}

func runCodes(w io.Writer, data []byte, opts options) error {
	p, err := buildPipeline(data, opts)
	if err != nil {
		return err
	}

	if _, err := p.codes.Dump(w); err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "WeightedLength() = %d\n", p.codes.WeightedLength(p.freqs))
	return err
}

func runFreqs(w io.Writer, data []byte, opts options) error {
	p, err := buildPipeline(data, opts)
	if err != nil {
		return err
	}

	symbols := p.freqs.Symbols()
	if opts.symbol != "" {
		symbol := huffman.Symbol(opts.symbol[0])
		if _, found := p.codes.Lookup(symbol); !found {
			return fmt.Errorf("%w: %q does not occur in the input", huffman.ErrSymbolNotInAlphabet, rune(symbol))
		}
		symbols = []huffman.Symbol{symbol}
	}

	var buf bytes.Buffer
	for _, symbol := range symbols {
		code, _ := p.codes.Lookup(symbol)
		fmt.Fprintf(&buf, "%q\t%d\t%s\n", rune(symbol), p.freqs[symbol], code)
	}
	_, err = buf.WriteTo(w)
	return err
}

func runRoundTrip(_ io.Writer, data []byte, opts options) error {
	p, err := buildPipeline(data, opts)
	if err != nil {
		return err
	}

	symbols := huffman.SymbolsOf(data)

	var bits huffman.BitSequence
	if opts.workers > 1 {
		bits, err = huffman.EncodeChunked(symbols, p.codes, chunkSize, opts.workers)
	} else {
		bits, err = huffman.Encode(symbols, p.codes)
	}
	if err != nil {
		return err
	}

	var packed bytes.Buffer
	if _, err := bits.WriteTo(&packed); err != nil {
		return err
	}
	unpacked, err := huffman.ReadBitSequence(&packed, bits.Len())
	if err != nil {
		return err
	}

	decoded, err := huffman.Decode(unpacked, p.tree)
	if err != nil {
		return err
	}
	out, ok := huffman.BytesOf(decoded)
	if !ok || !bytes.Equal(out, data) {
		return errors.New("round trip mismatch")
	}

	log.Infof("original %d bits, encoded %d bits", len(data)*8, bits.Len())
	return nil
}
