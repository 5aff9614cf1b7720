// Package complete implements the completion-resolution engine for the
// stevedore CLI. Given the tokenized command line and cursor position it
// determines which subcommand is being invoked, which flag or positional
// slot the cursor occupies, and produces the candidate set, drawing on the
// static vocabularies and live daemon state.
package complete

import (
	"context"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/stevedore-sh/stevedore-complete/internal/complete/completers"
	"github.com/stevedore-sh/stevedore-complete/internal/daemon"
	"github.com/stevedore-sh/stevedore-complete/internal/vocab"
)

// Candidate is re-exported for callers of the engine.
type Candidate = completers.Candidate

// Result is the outcome of one completion request. NoSpace is the
// side-channel flag telling the host to suppress the auto-appended trailing
// space, set when any surviving candidate is a partial token.
type Result struct {
	Candidates []Candidate
	NoSpace    bool
}

// ClientFactory builds a daemon client for a host override found on the
// command line being completed.
type ClientFactory func(host string) (daemon.Client, error)

// Options configures an Engine.
type Options struct {
	Logger *zap.Logger

	// Client is the default daemon client. May be nil, in which case dynamic
	// candidates degrade to empty sets.
	Client daemon.Client

	// ClientFactory, when set, is used to build a client for a --host value
	// found on the completed line.
	ClientFactory ClientFactory

	Vocabulary *vocab.Vocabulary

	// FuzzyFallback enables fuzzy ranking when prefix filtering eliminates
	// every candidate.
	FuzzyFallback bool
}

// Engine resolves completion requests. Construct one per process and reuse
// it; per-request state lives in the request type.
type Engine struct {
	logger        *zap.Logger
	client        daemon.Client
	clientFactory ClientFactory
	static        *completers.StaticCompleter
	global        *FlagSet
	hostFlag      *Flag
	commands      map[string]*command
	commandNames  []string
	fuzzyFallback bool
}

// NewEngine creates an Engine. The dispatch table is built once here and
// carried explicitly; there are no package-level registries.
func NewEngine(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	v := opts.Vocabulary
	if v == nil {
		loaded, err := vocab.Load("")
		if err != nil {
			logger.Warn("failed to load embedded vocabularies", zap.Error(err))
			loaded = vocab.New()
		}
		v = loaded
	}

	e := &Engine{
		logger:        logger,
		client:        opts.Client,
		clientFactory: opts.ClientFactory,
		static:        completers.NewStaticCompleter(v),
		fuzzyFallback: opts.FuzzyFallback,
	}

	e.hostFlag = valueFlag("--host", "-H", completeHostSchemes)
	e.global = NewFlagSet(
		e.hostFlag,
		valueFlag("--config", "", nil),
		valueFlag("--log-level", "-l", completeLogLevels),
		valueFlag("--tlscacert", "", nil),
		valueFlag("--tlscert", "", nil),
		valueFlag("--tlskey", "", nil),
		boolFlag("--debug", "-D"),
		boolFlag("--tls", ""),
		boolFlag("--tlsverify", ""),
		boolFlag("--version", "-v"),
		boolFlag("--help", ""),
	)

	e.commands = buildCommands()
	e.commandNames = lo.Keys(e.commands)
	sort.Strings(e.commandNames)

	return e
}

// Complete resolves one completion request. Every failure mode degrades to an
// empty result; this function never returns an error.
func (e *Engine) Complete(ctx context.Context, line *Line) Result {
	if line == nil || line.Cword == 0 {
		return Result{}
	}

	// Separate global options from the subcommand token.
	cmdIndex := -1
	i := 1
	for i < line.Cword {
		next, free := step(line.Words, i, e.global)
		if free {
			cmdIndex = i
			break
		}
		i = next
	}

	if cmdIndex < 0 {
		return e.completeTopLevel(ctx, line)
	}

	name := line.Words[cmdIndex]
	cmd, ok := e.commands[name]
	if !ok {
		e.logger.Debug("unknown subcommand", zap.String("subcommand", name))
		return Result{}
	}
	line.CmdIndex = cmdIndex

	r := e.newRequest(line)
	candidates := cmd.complete(ctx, r)
	return e.finish(line, r, candidates)
}

// completeTopLevel handles a cursor that sits before any subcommand: still
// typing global flags, a global flag value, or the subcommand name itself.
func (e *Engine) completeTopLevel(ctx context.Context, line *Line) Result {
	r := e.newRequest(line)

	if f, ok := valueFlagBefore(line, 1, e.global); ok {
		if f.Complete == nil {
			return Result{}
		}
		return e.finish(line, r, f.Complete(ctx, r, line.Current()))
	}

	if f, val, ok := e.global.splitToken(line.Current()); ok && f.TakesValue {
		r.setPrefix(val)
		if f.Complete == nil {
			return Result{}
		}
		return e.finish(line, r, f.Complete(ctx, r, val))
	}

	candidates := completers.FromStrings(e.global.Spellings())
	candidates = append(candidates, completers.FromStrings(e.commandNames)...)
	return e.finish(line, r, candidates)
}

// newRequest assembles per-request state, honoring a --host override typed
// earlier on the same line.
func (e *Engine) newRequest(line *Line) *request {
	client := e.client

	limit := line.CmdIndex
	if limit <= 0 {
		limit = line.Cword
	}
	if host, ok := flagValue(line.Words, 1, limit, e.hostFlag); ok && e.clientFactory != nil {
		if override, err := e.clientFactory(host); err == nil {
			client = override
		} else {
			e.logger.Debug("ignoring invalid host override",
				zap.String("host", host), zap.Error(err))
		}
	}

	return &request{
		line:       line,
		logger:     e.logger,
		containers: completers.NewContainerCompleter(client, e.logger),
		images:     completers.NewImageCompleter(client, e.logger),
		static:     e.static,
		commands:   e.commandNames,
	}
}

// finish applies prefix filtering, deduplication, the optional fuzzy
// fallback, and derives the NoSpace side channel.
func (e *Engine) finish(line *Line, r *request, candidates []Candidate) Result {
	prefix := line.Current()
	if r.prefixSet {
		prefix = r.prefix
	}
	if prefix == "=" {
		prefix = ""
	}

	candidates = lo.UniqBy(candidates, func(c Candidate) string { return c.Value })

	matched := lo.Filter(candidates, func(c Candidate, _ int) bool {
		return strings.HasPrefix(c.Value, prefix)
	})

	if len(matched) == 0 && prefix != "" && e.fuzzyFallback {
		values := lo.Map(candidates, func(c Candidate, _ int) string { return c.Value })
		for _, m := range fuzzy.Find(prefix, values) {
			matched = append(matched, candidates[m.Index])
		}
	}

	result := Result{Candidates: matched}
	for _, c := range matched {
		if c.NoSpace {
			result.NoSpace = true
			break
		}
	}
	return result
}

// request is the state threaded through one completion request. It carries
// the line, the per-request candidate sources, and the effective prefix when
// it differs from the current token (joined "--flag=value" forms).
type request struct {
	line       *Line
	logger     *zap.Logger
	containers *completers.ContainerCompleter
	images     *completers.ImageCompleter
	static     *completers.StaticCompleter
	commands   []string

	prefix    string
	prefixSet bool
}

func (r *request) setPrefix(p string) {
	r.prefix = p
	r.prefixSet = true
}

// flagValue returns the value bound to the flag earlier on this subcommand's
// portion of the line.
func (r *request) flagValue(f *Flag) (string, bool) {
	return flagValue(r.line.Words, r.line.CmdIndex+1, r.line.Cword, f)
}

// hasFlag reports whether the flag was typed before the cursor on this
// subcommand's portion of the line.
func (r *request) hasFlag(f *Flag) bool {
	return hasFlag(r.line.Words, r.line.CmdIndex+1, r.line.Cword, f)
}

// valueFlagBefore determines whether the cursor sits in the value position of
// a value-consuming flag, collapsing the "=" artifact tokenizations.
func valueFlagBefore(line *Line, start int, fs *FlagSet) (*Flag, bool) {
	prev := line.Previous()
	if line.Cword-1 < start || prev == "" {
		return nil, false
	}

	if prev == "=" && line.Cword-2 >= start {
		if f, ok := fs.Lookup(line.Words[line.Cword-2]); ok && f.TakesValue {
			return f, true
		}
		return nil, false
	}

	if f, ok := fs.Lookup(prev); ok && f.TakesValue {
		return f, true
	}

	// "--flag=" followed by the cursor in a fresh token.
	if f, val, ok := fs.splitToken(prev); ok && f.TakesValue && val == "" {
		return f, true
	}

	return nil, false
}

func completeHostSchemes(_ context.Context, _ *request, _ string) []Candidate {
	return []Candidate{
		{Value: "tcp://", NoSpace: true},
		{Value: "unix://", NoSpace: true},
	}
}

func completeLogLevels(_ context.Context, _ *request, _ string) []Candidate {
	return completers.FromStrings([]string{"debug", "info", "warn", "error", "fatal"})
}
