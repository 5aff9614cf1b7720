package complete

import (
	"context"
	"strings"

	"github.com/stevedore-sh/stevedore-complete/internal/complete/completers"
)

// positionalFunc resolves the candidates for one positional slot.
type positionalFunc func(ctx context.Context, r *request) []Candidate

// command declares how one subcommand completes: its flag descriptors (both
// boolean and value-consuming, the latter with their own sub-resolvers) and
// its positional slots. When repeatLast is set the final slot applies to all
// further positions, for subcommands that accept a list of entities.
type command struct {
	flags       *FlagSet
	positionals []positionalFunc
	repeatLast  bool
}

// complete resolves the candidate set for a cursor inside this subcommand.
func (c *command) complete(ctx context.Context, r *request) []Candidate {
	line := r.line
	cur := line.Current()
	if cur == "=" {
		// The naive tokenizer emits "=" as its own token; the value is empty
		// so far.
		cur = ""
	}

	// Cursor in the value position of a value-consuming flag.
	if f, ok := valueFlagBefore(line, line.CmdIndex+1, c.flags); ok {
		if f.Complete == nil {
			return nil
		}
		return f.Complete(ctx, r, cur)
	}

	// Joined "--flag=prefix" on the token being completed.
	if f, val, ok := c.flags.splitToken(cur); ok && f.TakesValue {
		r.setPrefix(val)
		if f.Complete == nil {
			return nil
		}
		return f.Complete(ctx, r, val)
	}

	if strings.HasPrefix(cur, "-") {
		return completers.FromStrings(c.flags.Spellings())
	}

	slot, ok := freeArgSlot(line.Words, line.CmdIndex+1, line.Cword, c.flags)
	if !ok {
		return nil
	}

	pos := c.positionalAt(slot)
	if pos == nil {
		return nil
	}
	return pos(ctx, r)
}

func (c *command) positionalAt(slot int) positionalFunc {
	if slot < len(c.positionals) {
		return c.positionals[slot]
	}
	if c.repeatLast && len(c.positionals) > 0 {
		return c.positionals[len(c.positionals)-1]
	}
	return nil
}

// Positional resolvers shared across the table.

func containersWith(pred completers.StatePredicate) positionalFunc {
	return func(ctx context.Context, r *request) []Candidate {
		return r.containers.Complete(ctx, pred)
	}
}

func imageReferences(ctx context.Context, r *request) []Candidate {
	return r.images.References(ctx)
}

func imageTagTargets(ctx context.Context, r *request) []Candidate {
	return r.images.TagTargets(ctx)
}

func imageRepositories(ctx context.Context, r *request) []Candidate {
	return r.images.Repositories(ctx)
}

func subcommandNames(_ context.Context, r *request) []Candidate {
	return completers.FromStrings(r.commands)
}

func noCompletion(context.Context, *request) []Candidate {
	return nil
}

// Value sub-resolvers shared across the table.

func completeSignals(_ context.Context, r *request, _ string) []Candidate {
	return r.static.Signals()
}

func completeCapabilities(_ context.Context, r *request, _ string) []Candidate {
	return r.static.Capabilities()
}

func completeLogDrivers(_ context.Context, r *request, _ string) []Candidate {
	return r.static.LogDrivers()
}

func completeRunningContainers(ctx context.Context, r *request, _ string) []Candidate {
	return r.containers.Complete(ctx, completers.Running)
}

func completeAllContainers(ctx context.Context, r *request, _ string) []Candidate {
	return r.containers.Complete(ctx, completers.AnyState)
}

func completeRepoTags(ctx context.Context, r *request, _ string) []Candidate {
	return r.images.TagTargets(ctx)
}

func completeAttachStreams(context.Context, *request, string) []Candidate {
	return completers.FromStrings([]string{"stdin", "stdout", "stderr"})
}

func completeRestartPolicies(context.Context, *request, string) []Candidate {
	return []Candidate{
		{Value: "no"},
		{Value: "always"},
		{Value: "on-failure:", NoSpace: true},
	}
}

func completeNetModes(ctx context.Context, r *request, cur string) []Candidate {
	if strings.HasPrefix(cur, "container:") {
		var candidates []Candidate
		for _, c := range r.containers.Complete(ctx, completers.Running) {
			candidates = append(candidates, Candidate{Value: "container:" + c.Value})
		}
		return candidates
	}
	return []Candidate{
		{Value: "bridge"},
		{Value: "host"},
		{Value: "none"},
		{Value: "container:", NoSpace: true},
	}
}

func completeSecurityOpts(context.Context, *request, string) []Candidate {
	return []Candidate{
		{Value: "apparmor:", NoSpace: true},
		{Value: "label:", NoSpace: true},
	}
}

func completeImageFilters(context.Context, *request, string) []Candidate {
	return []Candidate{
		{Value: "dangling=true"},
		{Value: "label=", NoSpace: true},
	}
}

func completePsFilters(_ context.Context, _ *request, cur string) []Candidate {
	if strings.HasPrefix(cur, "status=") {
		var candidates []Candidate
		for _, s := range []string{"created", "restarting", "running", "paused", "exited"} {
			candidates = append(candidates, Candidate{Value: "status=" + s})
		}
		return candidates
	}
	return []Candidate{
		{Value: "exited=", NoSpace: true},
		{Value: "status=", NoSpace: true},
	}
}

// buildCommands constructs the dispatch table. Called once per engine; the
// table is immutable afterwards.
func buildCommands() map[string]*command {
	// run and create share their flag surface; the log-opt resolver narrows
	// its keys by the driver chosen earlier on the same line.
	logDriver := valueFlag("--log-driver", "", completeLogDrivers)
	logOpt := valueFlag("--log-opt", "", func(ctx context.Context, r *request, cur string) []Candidate {
		if key, _, ok := strings.Cut(cur, "="); ok {
			if key == "syslog-facility" {
				var candidates []Candidate
				for _, f := range r.static.SyslogFacilities() {
					candidates = append(candidates, Candidate{Value: "syslog-facility=" + f.Value})
				}
				return candidates
			}
			return nil
		}
		driver, _ := r.flagValue(logDriver)
		return r.static.LogOptions(driver)
	})

	runFlags := NewFlagSet(
		valueFlag("--attach", "-a", completeAttachStreams),
		valueFlag("--cap-add", "", completeCapabilities),
		valueFlag("--cap-drop", "", completeCapabilities),
		valueFlag("--cidfile", "", nil),
		valueFlag("--device", "", nil),
		valueFlag("--dns", "", nil),
		valueFlag("--entrypoint", "", nil),
		valueFlag("--env", "-e", nil),
		valueFlag("--env-file", "", nil),
		valueFlag("--expose", "", nil),
		valueFlag("--hostname", "-h", nil),
		valueFlag("--label", "", nil),
		valueFlag("--label-file", "", nil),
		valueFlag("--link", "", completeRunningContainers),
		logDriver,
		logOpt,
		valueFlag("--memory", "-m", nil),
		valueFlag("--memory-swap", "", nil),
		valueFlag("--name", "", nil),
		valueFlag("--net", "", completeNetModes),
		valueFlag("--pid", "", func(context.Context, *request, string) []Candidate {
			return completers.FromStrings([]string{"host"})
		}),
		valueFlag("--publish", "-p", nil),
		valueFlag("--restart", "", completeRestartPolicies),
		valueFlag("--security-opt", "", completeSecurityOpts),
		valueFlag("--stop-signal", "", completeSignals),
		valueFlag("--ulimit", "", nil),
		valueFlag("--user", "-u", nil),
		valueFlag("--volume", "-v", nil),
		valueFlag("--volumes-from", "", completeAllContainers),
		valueFlag("--workdir", "-w", nil),
		boolFlag("--detach", "-d"),
		boolFlag("--interactive", "-i"),
		boolFlag("--oom-kill-disable", ""),
		boolFlag("--privileged", ""),
		boolFlag("--publish-all", "-P"),
		boolFlag("--read-only", ""),
		boolFlag("--sig-proxy", ""),
		boolFlag("--tty", "-t"),
		boolFlag("--help", ""),
	)

	forceFlag := boolFlag("--force", "-f")

	commands := map[string]*command{
		"attach": {
			flags: NewFlagSet(
				boolFlag("--no-stdin", ""),
				boolFlag("--sig-proxy", ""),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{containersWith(completers.Running)},
		},
		"build": {
			flags: NewFlagSet(
				valueFlag("--tag", "-t", completeRepoTags),
				valueFlag("--file", "-f", nil),
				valueFlag("--build-arg", "", nil),
				boolFlag("--force-rm", ""),
				boolFlag("--no-cache", ""),
				boolFlag("--pull", ""),
				boolFlag("--quiet", "-q"),
				boolFlag("--rm", ""),
				boolFlag("--help", ""),
			),
			// Build context is a local path; path completion belongs to the
			// host shell.
			positionals: []positionalFunc{noCompletion},
		},
		"commit": {
			flags: NewFlagSet(
				valueFlag("--author", "-a", nil),
				valueFlag("--change", "-c", nil),
				valueFlag("--message", "-m", nil),
				boolFlag("--pause", "-p"),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{
				containersWith(completers.AnyState),
				imageTagTargets,
			},
		},
		"cp": {
			flags: NewFlagSet(boolFlag("--help", "")),
			positionals: []positionalFunc{
				func(ctx context.Context, r *request) []Candidate {
					var candidates []Candidate
					for _, c := range r.containers.Complete(ctx, completers.AnyState) {
						candidates = append(candidates, Candidate{
							Value:       c.Value + ":",
							Description: c.Description,
							NoSpace:     true,
						})
					}
					return candidates
				},
				noCompletion,
			},
		},
		"create": {
			flags:       runFlags,
			positionals: []positionalFunc{imageReferences},
		},
		"events": {
			flags: NewFlagSet(
				valueFlag("--filter", "-f", nil),
				valueFlag("--since", "", nil),
				valueFlag("--until", "", nil),
				boolFlag("--help", ""),
			),
		},
		"exec": {
			flags: NewFlagSet(
				boolFlag("--detach", "-d"),
				boolFlag("--interactive", "-i"),
				boolFlag("--tty", "-t"),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{containersWith(completers.Running), noCompletion},
			repeatLast:  true,
		},
		"export": {
			flags: NewFlagSet(
				valueFlag("--output", "-o", nil),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{containersWith(completers.AnyState)},
		},
		"help": {
			flags:       NewFlagSet(),
			positionals: []positionalFunc{subcommandNames},
		},
		"history": {
			flags: NewFlagSet(
				boolFlag("--no-trunc", ""),
				boolFlag("--quiet", "-q"),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{imageReferences},
		},
		"images": {
			flags: NewFlagSet(
				valueFlag("--filter", "-f", completeImageFilters),
				boolFlag("--all", "-a"),
				boolFlag("--digests", ""),
				boolFlag("--no-trunc", ""),
				boolFlag("--quiet", "-q"),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{imageRepositories},
		},
		"import": {
			flags: NewFlagSet(
				valueFlag("--change", "-c", nil),
				valueFlag("--message", "-m", nil),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{noCompletion, imageTagTargets},
		},
		"info": {
			flags: NewFlagSet(boolFlag("--help", "")),
		},
		"inspect": {
			flags: NewFlagSet(
				valueFlag("--format", "-f", nil),
				boolFlag("--size", "-s"),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{
				func(ctx context.Context, r *request) []Candidate {
					candidates := r.containers.Complete(ctx, completers.AnyState)
					return append(candidates, r.images.References(ctx)...)
				},
			},
			repeatLast: true,
		},
		"kill": {
			flags: NewFlagSet(
				valueFlag("--signal", "-s", completeSignals),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{containersWith(completers.Running)},
			repeatLast:  true,
		},
		"load": {
			flags: NewFlagSet(
				valueFlag("--input", "-i", nil),
				boolFlag("--help", ""),
			),
		},
		"login": {
			flags: NewFlagSet(
				valueFlag("--email", "-e", nil),
				valueFlag("--password", "-p", nil),
				valueFlag("--username", "-u", nil),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{noCompletion},
		},
		"logout": {
			flags:       NewFlagSet(boolFlag("--help", "")),
			positionals: []positionalFunc{noCompletion},
		},
		"logs": {
			flags: NewFlagSet(
				valueFlag("--since", "", nil),
				valueFlag("--tail", "", nil),
				boolFlag("--follow", "-f"),
				boolFlag("--timestamps", "-t"),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{containersWith(completers.AnyState)},
		},
		"pause": {
			flags:       NewFlagSet(boolFlag("--help", "")),
			positionals: []positionalFunc{containersWith(completers.Pauseable)},
			repeatLast:  true,
		},
		"port": {
			flags:       NewFlagSet(boolFlag("--help", "")),
			positionals: []positionalFunc{containersWith(completers.Running)},
		},
		"ps": {
			flags: NewFlagSet(
				valueFlag("--before", "", completeAllContainers),
				valueFlag("--filter", "-f", completePsFilters),
				valueFlag("--last", "-n", nil),
				valueFlag("--since", "", completeAllContainers),
				boolFlag("--all", "-a"),
				boolFlag("--latest", "-l"),
				boolFlag("--no-trunc", ""),
				boolFlag("--quiet", "-q"),
				boolFlag("--size", "-s"),
				boolFlag("--help", ""),
			),
		},
		"pull": {
			flags: NewFlagSet(
				boolFlag("--all-tags", "-a"),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{imageTagTargets},
		},
		"push": {
			flags:       NewFlagSet(boolFlag("--help", "")),
			positionals: []positionalFunc{imageTagTargets},
		},
		"rename": {
			flags: NewFlagSet(boolFlag("--help", "")),
			positionals: []positionalFunc{
				containersWith(completers.AnyState),
				// The destination is a new name; nothing to suggest.
				noCompletion,
			},
		},
		"restart": {
			flags: NewFlagSet(
				valueFlag("--time", "-t", nil),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{containersWith(completers.AnyState)},
			repeatLast:  true,
		},
		"rm": {
			flags: NewFlagSet(
				forceFlag,
				boolFlag("--link", "-l"),
				boolFlag("--volumes", "-v"),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{
				func(ctx context.Context, r *request) []Candidate {
					// --force bypasses the stopped-only filter.
					if r.hasFlag(forceFlag) {
						return r.containers.Complete(ctx, completers.AnyState)
					}
					return r.containers.Complete(ctx, completers.Stopped)
				},
			},
			repeatLast: true,
		},
		"rmi": {
			flags: NewFlagSet(
				boolFlag("--force", "-f"),
				boolFlag("--no-prune", ""),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{imageReferences},
			repeatLast:  true,
		},
		"run": {
			flags:       runFlags,
			positionals: []positionalFunc{imageReferences},
		},
		"save": {
			flags: NewFlagSet(
				valueFlag("--output", "-o", nil),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{imageReferences},
			repeatLast:  true,
		},
		"search": {
			flags: NewFlagSet(
				valueFlag("--stars", "-s", nil),
				boolFlag("--automated", ""),
				boolFlag("--no-trunc", ""),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{noCompletion},
		},
		"start": {
			flags: NewFlagSet(
				boolFlag("--attach", "-a"),
				boolFlag("--interactive", "-i"),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{containersWith(completers.Stopped)},
			repeatLast:  true,
		},
		"stats": {
			flags: NewFlagSet(
				boolFlag("--no-stream", ""),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{containersWith(completers.Running)},
			repeatLast:  true,
		},
		"stop": {
			flags: NewFlagSet(
				valueFlag("--time", "-t", nil),
				boolFlag("--help", ""),
			),
			positionals: []positionalFunc{containersWith(completers.Running)},
			repeatLast:  true,
		},
		"tag": {
			flags: NewFlagSet(
				boolFlag("--force", "-f"),
				boolFlag("--help", ""),
			),
			// Both slots resolve against repository[:tag]; the second names
			// the tag being created.
			positionals: []positionalFunc{imageTagTargets, imageTagTargets},
		},
		"top": {
			flags:       NewFlagSet(boolFlag("--help", "")),
			positionals: []positionalFunc{containersWith(completers.Running), noCompletion},
			repeatLast:  true,
		},
		"unpause": {
			flags:       NewFlagSet(boolFlag("--help", "")),
			positionals: []positionalFunc{containersWith(completers.Unpauseable)},
			repeatLast:  true,
		},
		"version": {
			flags: NewFlagSet(boolFlag("--help", "")),
		},
		"wait": {
			flags:       NewFlagSet(boolFlag("--help", "")),
			positionals: []positionalFunc{containersWith(completers.Running)},
			repeatLast:  true,
		},
	}

	return commands
}
