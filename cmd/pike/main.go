package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/op/go-logging"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lmarchetti/pike/internal/bitboard"
	"github.com/lmarchetti/pike/internal/config"
	"github.com/lmarchetti/pike/internal/evaluator"
	pikelogging "github.com/lmarchetti/pike/internal/logging"
	"github.com/lmarchetti/pike/internal/movegen"
	"github.com/lmarchetti/pike/internal/position"
	"github.com/lmarchetti/pike/internal/search"
	"github.com/lmarchetti/pike/internal/version"
)

// out formats human-readable diagnostic lines with locale-grouped
// thousands separators for node/NPS counts printed to stderr; the
// machine-readable JSON on stdout is unaffected.
var out = message.NewPrinter(language.English)

// logLevels maps the -loglvl flag's accepted names onto op/go-logging's levels.
var logLevels = map[string]logging.Level{
	"critical": logging.CRITICAL,
	"error":    logging.ERROR,
	"warning":  logging.WARNING,
	"notice":   logging.NOTICE,
	"info":     logging.INFO,
	"debug":    logging.DEBUG,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches the subcommand and returns the process exit code: 0 on
// success, 1 on misuse or a parse error (§6/§7).
func run(args []string) int {
	fs := flag.NewFlagSet("pike", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configFile := fs.String("config", "./config.toml", "path to configuration settings file")
	logLvl := fs.String("loglvl", "info", "standard log level\n(critical|error|warning|notice|info|debug)")
	bookPath := fs.String("bookpath", "./assets/books", "path to opening book files")
	bookFile := fs.String("bookfile", "", "opening book file name within -bookpath")
	if err := fs.Parse(args); err != nil {
		return 1
	}
	rest := fs.Args()

	if len(rest) == 0 {
		printHelp()
		return 1
	}

	cmd := rest[0]
	rest = rest[1:]

	switch cmd {
	case "help", "--help", "-h":
		printHelp()
		return 0
	case "version", "--version", "-v":
		fmt.Println(version.String())
		return 0
	}

	config.ConfFile = *configFile
	config.Setup()
	if *bookPath != "" {
		config.Settings.Search.BookPath = *bookPath
	}
	if *bookFile != "" {
		config.Settings.Search.BookFile = *bookFile
	}
	if lvl, found := logLevels[*logLvl]; found {
		config.LogLevel = int(lvl)
	}
	pikelogging.GetLog()

	switch cmd {
	case "moves":
		return cmdMoves(rest)
	case "eval":
		return cmdEval(rest)
	case "play":
		return cmdPlay(rest, false)
	case "fancy":
		return cmdPlay(rest, true)
	case "hash":
		return cmdHash(rest)
	case "scores":
		return cmdScores(rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", cmd)
		printHelp()
		return 1
	}
}

func printHelp() {
	fmt.Println(version.String())
	fmt.Println("usage: pike [flags] <command> [args]")
	fmt.Println()
	fmt.Println("commands:")
	fmt.Println("  help                          print this message")
	fmt.Println("  version                       print engine name and build tag")
	fmt.Println("  moves <FEN> <depth>           perft move count (and move list at depth 1)")
	fmt.Println("  eval <FEN>                    side-relative evaluation, in pawns")
	fmt.Println("  play <FEN> <millis> [history] best move and per-move scores")
	fmt.Println("  fancy <FEN> <millis> [history] same as play, with depth-2 delta re-weighting")
	fmt.Println("  hash <FEN>                    hex Zobrist key")
	fmt.Println("  scores <FEN>                  ordered move-ordering scores")
}

// parseFEN parses s and reports a parse error on the diagnostic stream, as
// required by §7: a bad FEN produces no position and exits 1.
func parseFEN(s string) (*position.Position, bool) {
	pos, err := position.FromFEN(s)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid FEN %q: %v\n", s, err)
		return nil, false
	}
	return pos, true
}

func cmdMoves(args []string) int {
	if len(args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: moves <FEN> <depth>")
		return 1
	}
	pos, ok := parseFEN(args[0])
	if !ok {
		return 1
	}
	depth, err := strconv.Atoi(args[1])
	if err != nil || depth < 1 {
		fmt.Fprintf(os.Stderr, "invalid depth %q\n", args[1])
		return 1
	}

	if depth == 1 {
		moves, n := movegen.LegalMoves(pos, make([]bitboard.Move, 0, movegen.MaxMoves), false)
		uci := make([]string, n)
		for i := 0; i < n; i++ {
			uci[i] = moves[i].UCI()
		}
		return printJSON(struct {
			Nodes int      `json:"nodes"`
			Moves []string `json:"moves"`
		}{Nodes: n, Moves: uci})
	}

	start := time.Now()
	nodes := movegen.PerftParallel(pos, depth)
	elapsed := time.Since(start)
	nps := uint64(0)
	if elapsed > 0 {
		nps = uint64(float64(nodes) / elapsed.Seconds())
	}
	out.Fprintf(os.Stderr, "perft depth %d: %d nodes, %d nps\n", depth, nodes, nps)
	return printJSON(struct {
		Depth int    `json:"depth"`
		Nodes uint64 `json:"nodes"`
		Time  string `json:"time"`
		Nps   uint64 `json:"nps"`
	}{Depth: depth, Nodes: nodes, Time: elapsed.String(), Nps: nps})
}

func cmdEval(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: eval <FEN>")
		return 1
	}
	pos, ok := parseFEN(args[0])
	if !ok {
		return 1
	}
	e := evaluator.Eval(pos)
	if pos.SideToMove == bitboard.Black {
		e = -e
	}
	fmt.Printf("%.2f\n", float64(e)/100)
	return 0
}

func cmdHash(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: hash <FEN>")
		return 1
	}
	pos, ok := parseFEN(args[0])
	if !ok {
		return 1
	}
	fmt.Printf("%016x\n", pos.ZHash)
	return 0
}

func cmdScores(args []string) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: scores <FEN>")
		return 1
	}
	pos, ok := parseFEN(args[0])
	if !ok {
		return 1
	}
	moves, n := movegen.LegalMoves(pos, make([]bitboard.Move, 0, movegen.MaxMoves), false)
	moves = moves[:n]
	search.ScoreRootMoves(pos, moves)

	scores := make(map[string]int, n)
	for _, m := range moves {
		scores[m.UCI()] = m.Score
	}
	return printJSON(scores)
}

func cmdPlay(args []string, fancy bool) int {
	if len(args) != 2 && len(args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <FEN> <millis> [history]\n", map[bool]string{true: "fancy", false: "play"}[fancy])
		return 1
	}
	pos, ok := parseFEN(args[0])
	if !ok {
		return 1
	}
	millis, err := strconv.Atoi(args[1])
	if err != nil || millis < 0 {
		fmt.Fprintf(os.Stderr, "invalid millis %q\n", args[1])
		return 1
	}
	if len(args) == 3 && args[2] != "" {
		for _, fen := range strings.Split(args[2], ",") {
			hp, ok := parseFEN(fen)
			if !ok {
				return 1
			}
			pos.PushHistoricalHash(hp.ZHash)
		}
	}

	eng := search.New()
	if config.Settings.Search.UseBook {
		bookFile := config.Settings.Search.BookPath + "/" + config.Settings.Search.BookFile
		_ = eng.Book.Load(bookFile)
	}

	start := time.Now()
	result := eng.Play(pos, millis, fancy)
	elapsed := time.Since(start)

	pawnScores := make(map[string]float64, len(result.ScoresCentipawns))
	for uci, cp := range result.ScoresCentipawns {
		pawnScores[uci] = float64(cp) / 100
	}

	e := evaluator.Eval(pos)
	if pos.SideToMove == bitboard.Black {
		e = -e
	}

	return printJSON(struct {
		Scores map[string]float64 `json:"scores"`
		Millis int                 `json:"millis"`
		Depth  int                 `json:"depth"`
		Time   string              `json:"time"`
		Eval   float64             `json:"eval"`
		Move   string              `json:"move"`
	}{
		Scores: pawnScores,
		Millis: millis,
		Depth:  result.Depth,
		Time:   elapsed.String(),
		Eval:   float64(e) / 100,
		Move:   result.BestMove.UCI(),
	})
}

func printJSON(v interface{}) int {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
