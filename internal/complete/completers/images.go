package completers

import (
	"context"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/stevedore-sh/stevedore-complete/internal/daemon"
)

// ImageCompleter resolves image candidates from the daemon. Three candidate
// shapes exist: bare repository, repository:tag, and raw id. Callers pick the
// subset their argument slot accepts.
type ImageCompleter struct {
	client daemon.Client
	logger *zap.Logger
}

// NewImageCompleter creates a new ImageCompleter.
func NewImageCompleter(client daemon.Client, logger *zap.Logger) *ImageCompleter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImageCompleter{
		client: client,
		logger: logger,
	}
}

// Repositories returns bare repository candidates. The untagged sentinel is
// never offered as a repository.
func (c *ImageCompleter) Repositories(ctx context.Context) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)
	for _, row := range c.rows(ctx) {
		if row.Repository == daemon.NoneRepository || seen[row.Repository] {
			continue
		}
		seen[row.Repository] = true
		candidates = append(candidates, Candidate{Value: row.Repository})
	}
	return candidates
}

// RepoTags returns repository:tag candidates, excluding untagged images.
func (c *ImageCompleter) RepoTags(ctx context.Context) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)
	for _, row := range c.rows(ctx) {
		if row.Repository == daemon.NoneRepository || row.Tag == daemon.NoneRepository || row.Tag == "" {
			continue
		}
		value := row.Repository + ":" + row.Tag
		if seen[value] {
			continue
		}
		seen[value] = true
		candidates = append(candidates, Candidate{Value: value, Description: describeImage(row)})
	}
	return candidates
}

// IDs returns raw identifier candidates. Untagged images appear here even
// though they are excluded from the repository shapes.
func (c *ImageCompleter) IDs(ctx context.Context) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)
	for _, row := range c.rows(ctx) {
		if row.ID == "" || seen[row.ID] {
			continue
		}
		seen[row.ID] = true
		candidates = append(candidates, Candidate{Value: row.ID, Description: describeImage(row)})
	}
	return candidates
}

// References returns the union of all three candidate shapes, for argument
// slots that accept any way of naming an image.
func (c *ImageCompleter) References(ctx context.Context) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)
	for _, set := range [][]Candidate{c.Repositories(ctx), c.RepoTags(ctx), c.IDs(ctx)} {
		for _, cand := range set {
			if seen[cand.Value] {
				continue
			}
			seen[cand.Value] = true
			candidates = append(candidates, cand)
		}
	}
	return candidates
}

// TagTargets returns repository and repository:tag candidates, the shapes a
// tag-setting argument accepts.
func (c *ImageCompleter) TagTargets(ctx context.Context) []Candidate {
	var candidates []Candidate
	seen := make(map[string]bool)
	for _, set := range [][]Candidate{c.Repositories(ctx), c.RepoTags(ctx)} {
		for _, cand := range set {
			if seen[cand.Value] {
				continue
			}
			seen[cand.Value] = true
			candidates = append(candidates, cand)
		}
	}
	return candidates
}

func (c *ImageCompleter) rows(ctx context.Context) []daemon.ImageRow {
	if c.client == nil {
		return nil
	}
	rows, err := c.client.ListImages(ctx, false)
	if err != nil {
		c.logger.Debug("listing images failed", zap.Error(err))
		return nil
	}
	return rows
}

func describeImage(row daemon.ImageRow) string {
	if row.Created.IsZero() && row.Size == 0 {
		return ""
	}
	return humanize.Time(row.Created) + ", " + humanize.Bytes(uint64(row.Size))
}
