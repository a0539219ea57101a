// Command unique decides, for a QBF/DQBF instance in QCIR, QDIMACS, DQCIR
// or DQDIMACS form, which quantified variables are uniquely determined by
// the others (Padoa's theorem), extracts Skolem/Herbrand definitions for
// them via Craig interpolation, and re-emits the instance with those
// definitions spliced in. Grounded on determined.cc in
// original_source/unique.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"github.com/fslivovsky/unique/emit"
	"github.com/fslivovsky/unique/extractor"
	"github.com/fslivovsky/unique/internal/graphviz"
	"github.com/fslivovsky/unique/internal/logger"
	"github.com/fslivovsky/unique/parser"
	"github.com/fslivovsky/unique/pipeline"
	"github.com/fslivovsky/unique/selector"

	_ "github.com/fslivovsky/unique/solver/bruteforce"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		conflictLimit = flag.IntP("conflict-limit", "c", 1000, "per-variable SAT conflict budget")
		outputFile    = flag.StringP("output-file", "o", "", "write to file (default: standard output)")
		strict        = flag.BoolP("strict", "s", false, "use only opposite-kind variables as \"shared\"")
		outputFormat  = flag.String("output-format", "QCIR", "QCIR | QDIMACS | DIMACS | Verilog")
		orderingFile  = flag.String("ordering-file", "", "whitespace-separated preferred variable order")
		solverName    = flag.String("solver", "bruteforce", "registered InterpolatingSolver backend")
		debugGraph    = flag.String("debug-graph", "", "write a PNG render of the parsed gate DAG to this path")
		help          = flag.BoolP("help", "h", false, "show help")
	)
	flag.Parse()

	if *help {
		fmt.Fprintf(os.Stderr, "Usage:\n  unique [options] <input file>\n\nOptions:\n")
		flag.PrintDefaults()
		return 0
	}

	log := logger.New(logger.Options{})

	if flag.NArg() != 1 {
		log.Error().Msg("exactly one <input file> argument required")
		return 1
	}
	inputFilename := flag.Arg(0)

	data, err := os.ReadFile(inputFilename)
	if err != nil {
		log.Error().Err(err).Str("file", inputFilename).Msg("invalid input file")
		return 1
	}

	format := parser.Sniff(data)
	if format == parser.Unknown {
		log.Error().Str("file", inputFilename).Msg("invalid input file")
		return 1
	}
	log.Info().Str("format", format.String()).Str("file", inputFilename).Msg("reading input file")

	res, err := parser.Parse(data, format)
	if err != nil {
		log.Error().Err(err).Str("file", inputFilename).Msg("invalid input file")
		return 1
	}
	if res.RedundantGatesRemoved > 0 {
		log.Info().Int("removed", res.RedundantGatesRemoved).Msg("removed redundant gates")
	}

	var ordering *selector.Ordering
	if *orderingFile != "" {
		log.Info().Str("file", *orderingFile).Msg("using ordering file")
		f, err := os.Open(*orderingFile)
		if err != nil {
			log.Error().Err(err).Str("file", *orderingFile).Msg("could not open ordering file")
			return 1
		}
		ordering, err = selector.ParseOrdering(f)
		f.Close()
		if err != nil {
			log.Error().Err(err).Str("file", *orderingFile).Msg("could not read ordering file")
			return 1
		}
	}

	if *debugGraph != "" {
		if err := graphviz.RenderToFile(res.Graph, *debugGraph); err != nil {
			log.Warn().Err(err).Msg("failed to render debug graph")
		}
	}

	factory, err := pipeline.NewFactory(*solverName)
	if err != nil {
		log.Error().Err(err).Msg("resolving solver backend")
		return 1
	}
	ext := extractor.New(factory, *conflictLimit, *strict, log)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGXCPU)
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case sig := <-sigCh:
			log.Info().Str("signal", sig.String()).Msg("received signal, trying to shut down gracefully")
			ext.Interrupt()
		case <-done:
		}
	}()

	pipeline.Run(res, format, ext, ordering, log)

	var out = os.Stdout
	if *outputFile != "" {
		log.Info().Str("file", *outputFile).Msg("writing to file")
		f, err := os.Create(*outputFile)
		if err != nil {
			log.Error().Err(err).Str("file", *outputFile).Msg("error opening file")
			return 0
		}
		defer f.Close()
		writeOutput(f, res, format, *outputFormat, log)
		return 0
	}
	writeOutput(out, res, format, *outputFormat, log)
	return 0
}

func writeOutput(w *os.File, res *parser.Result, format parser.Format, outputFormat string, log *logger.Logger) {
	g := res.Graph
	rawClauses := format == parser.QDIMACS || format == parser.DQDIMACS
	var err error
	switch outputFormat {
	case "QDIMACS":
		err = emit.QDIMACS(w, g, res.Deps, rawClauses)
	case "DIMACS":
		err = emit.DIMACS(w, g)
	case "QCIR":
		err = emit.QCIR(w, g, res.Deps)
	case "Verilog":
		err = emit.Verilog(w, g)
	default:
		log.Warn().Str("outputFormat", outputFormat).Msg("invalid output format, using default (QCIR)")
		err = emit.QCIR(w, g, res.Deps)
	}
	if err != nil {
		log.Error().Err(err).Msg("error writing output")
	}
}
