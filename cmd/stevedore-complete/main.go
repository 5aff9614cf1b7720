package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/stevedore-sh/stevedore-complete/internal/complete"
	"github.com/stevedore-sh/stevedore-complete/internal/config"
	"github.com/stevedore-sh/stevedore-complete/internal/core"
	"github.com/stevedore-sh/stevedore-complete/internal/daemon"
	"github.com/stevedore-sh/stevedore-complete/internal/history"
	"github.com/stevedore-sh/stevedore-complete/internal/vocab"
)

var BUILD_VERSION = "dev"

var cword = flag.Int("cword", -1, "index of the word being completed (default: the last word)")
var rawLine = flag.String("line", "", "complete a raw, unsplit command line")
var point = flag.Int("point", -1, "cursor byte offset into -line (default: end of line)")

var helpFlag = flag.Bool("h", false, "display help information")
var versionFlag = flag.Bool("ver", false, "display build version")

const helpText = `stevedore-complete - shell completion resolver for the stevedore CLI

USAGE:
  stevedore-complete [options] -- WORD...
  stevedore-complete -line "stevedore run --name " [-point N]

The shell's completion function passes the tokenized command line (and the
index of the word under the cursor); candidates are printed one per line.
A final ":nospace" line asks the shell to suppress the trailing space.

OPTIONS:
`

func main() {
	flag.Parse()

	if *versionFlag {
		fmt.Println(BUILD_VERSION)
		return
	}

	if *helpFlag {
		fmt.Print(helpText)
		flag.PrintDefaults()
		return
	}

	// Completion must never fail loudly: any setup problem degrades to an
	// empty candidate list.
	cfg := loadConfig()

	logger, err := initializeLogger(cfg)
	if err != nil {
		return
	}
	defer logger.Sync()

	line, err := buildLine()
	if err != nil {
		logger.Debug("no completable line", zap.Error(err))
		return
	}

	engine := initializeEngine(cfg, logger)

	start := time.Now()
	result := engine.Complete(context.Background(), line)
	recordRequest(cfg, logger, line, result, time.Since(start))

	emit(result)
}

func loadConfig() *config.Config {
	result, err := config.LoadFromFile(core.ConfigFile())
	if err != nil || result == nil {
		return config.DefaultConfig()
	}
	return result.Config
}

func buildLine() (*complete.Line, error) {
	if *rawLine != "" {
		return complete.ParseLine(*rawLine, *point)
	}

	words := flag.Args()
	index := *cword
	if index < 0 {
		index = len(words) - 1
	}
	if index < 0 {
		return nil, fmt.Errorf("no words to complete")
	}
	return complete.NewLine(words, index)
}

func initializeEngine(cfg *config.Config, logger *zap.Logger) *complete.Engine {
	vocabulary, err := vocab.Load(core.VocabFile())
	if err != nil {
		logger.Warn("failed to load vocabularies", zap.Error(err))
	}

	factory := func(host string) (daemon.Client, error) {
		return daemon.NewHTTPClient(host, logger)
	}

	var client daemon.Client
	if c, err := daemon.NewHTTPClient(cfg.Host, logger); err == nil {
		client = c
	} else {
		logger.Debug("daemon client unavailable", zap.Error(err))
	}

	return complete.NewEngine(complete.Options{
		Logger:        logger,
		Client:        client,
		ClientFactory: factory,
		Vocabulary:    vocabulary,
		FuzzyFallback: cfg.FuzzyFallback,
	})
}

func recordRequest(cfg *config.Config, logger *zap.Logger, line *complete.Line, result complete.Result, elapsed time.Duration) {
	if !cfg.History {
		return
	}

	manager, err := history.NewManager(core.HistoryFile())
	if err != nil {
		logger.Debug("history unavailable", zap.Error(err))
		return
	}

	subcommand := ""
	if line.CmdIndex > 0 && line.CmdIndex < len(line.Words) {
		subcommand = line.Words[line.CmdIndex]
	}
	if err := manager.Record(strings.Join(line.Words, " "), subcommand, len(result.Candidates), elapsed); err != nil {
		logger.Debug("failed to record request", zap.Error(err))
	}
}

// emit prints the candidate list. When stdout is a terminal this is a human
// inspecting the resolver, so descriptions are shown; the shell integration
// path gets bare values plus the :nospace directive.
func emit(result complete.Result) {
	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	for _, c := range result.Candidates {
		if interactive && c.Description != "" {
			fmt.Printf("%s\t%s\n", c.Value, c.Description)
		} else {
			fmt.Println(c.Value)
		}
	}

	if result.NoSpace && !interactive {
		fmt.Println(":nospace")
	}
}

func initializeLogger(cfg *config.Config) (*zap.Logger, error) {
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel(cfg.LogLevel)
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}

	// Logs go only to the file: stdout is reserved for candidates.

	return loggerConfig.Build()
}

func logLevel(level string) zap.AtomicLevel {
	parsed, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return parsed
}
