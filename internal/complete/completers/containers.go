// Package completers provides the candidate sources the completion engine
// draws from: live container and image records from the daemon, and the
// static vocabularies.
package completers

import (
	"context"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/stevedore-sh/stevedore-complete/internal/daemon"
)

// StatePredicate filters containers by their lifecycle state.
type StatePredicate func(daemon.ContainerInfo) bool

var (
	// AnyState accepts every container.
	AnyState StatePredicate = func(daemon.ContainerInfo) bool { return true }

	// Running accepts containers that are currently running.
	Running StatePredicate = func(c daemon.ContainerInfo) bool { return c.Running }

	// Stopped accepts containers that are not running.
	Stopped StatePredicate = func(c daemon.ContainerInfo) bool { return !c.Running }

	// Pauseable accepts running containers that are not already paused.
	Pauseable StatePredicate = func(c daemon.ContainerInfo) bool { return c.Running && !c.Paused }

	// Unpauseable accepts paused containers.
	Unpauseable StatePredicate = func(c daemon.ContainerInfo) bool { return c.Paused }
)

// ContainerCompleter resolves container candidates from the daemon.
type ContainerCompleter struct {
	client daemon.Client
	logger *zap.Logger
}

// NewContainerCompleter creates a new ContainerCompleter.
func NewContainerCompleter(client daemon.Client, logger *zap.Logger) *ContainerCompleter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ContainerCompleter{
		client: client,
		logger: logger,
	}
}

// Complete returns the deduplicated union of display names and raw ids for
// all containers satisfying the predicate. A daemon failure degrades to an
// empty candidate set; completion never surfaces errors.
func (c *ContainerCompleter) Complete(ctx context.Context, pred StatePredicate) []Candidate {
	if c.client == nil {
		return nil
	}

	ids, err := c.client.ListContainerIDs(ctx, true)
	if err != nil {
		c.logger.Debug("listing containers failed", zap.Error(err))
		return nil
	}

	infos, err := c.client.InspectContainers(ctx, ids)
	if err != nil {
		c.logger.Debug("inspecting containers failed", zap.Error(err))
		return nil
	}

	var candidates []Candidate
	seen := make(map[string]bool)
	for _, info := range infos {
		if !pred(info) {
			continue
		}

		state := describeState(info)
		for _, value := range []string{DisplayName(info.Name), info.ID} {
			if value == "" || seen[value] {
				continue
			}
			seen[value] = true
			candidates = append(candidates, Candidate{Value: value, Description: state})
		}
	}
	return candidates
}

// Names returns only the display names of containers satisfying the predicate.
func (c *ContainerCompleter) Names(ctx context.Context, pred StatePredicate) []string {
	return lo.FilterMap(c.Complete(ctx, pred), func(cand Candidate, _ int) (string, bool) {
		return cand.Value, !looksLikeID(cand.Value)
	})
}

// DisplayName strips exactly one leading path separator from a record name.
// The daemon prefixes every container name with "/".
func DisplayName(name string) string {
	return strings.TrimPrefix(name, "/")
}

func describeState(c daemon.ContainerInfo) string {
	switch {
	case c.Paused:
		return "paused"
	case c.Running:
		return "running"
	default:
		return "exited"
	}
}

// looksLikeID reports whether a candidate value is a raw hex identifier
// rather than a user-assigned name.
func looksLikeID(value string) bool {
	if len(value) < 12 {
		return false
	}
	for _, r := range value {
		if !strings.ContainsRune("0123456789abcdef", r) {
			return false
		}
	}
	return true
}
