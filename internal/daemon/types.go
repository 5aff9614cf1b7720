package daemon

import (
	"context"
	"time"
)

// NoneRepository is the sentinel the daemon reports for images that have no
// repository (dangling layers). It must never be offered as a repository
// candidate, but such images remain addressable by id.
const NoneRepository = "<none>"

// ContainerInfo is the projection of a container record used for completion.
type ContainerInfo struct {
	ID      string
	Name    string
	Running bool
	Paused  bool
}

// ImageRow is one (repository, tag, id) row from the daemon's image listing.
// Untagged images carry NoneRepository in Repository and Tag.
type ImageRow struct {
	Repository string
	Tag        string
	ID         string
	Created    time.Time
	Size       int64
}

// Client is the daemon query interface the completion engine consumes.
// InspectContainers returns records in the same order as the input ids so
// callers can zip ids with their projections without re-sorting.
type Client interface {
	ListContainerIDs(ctx context.Context, all bool) ([]string, error)
	InspectContainers(ctx context.Context, ids []string) ([]ContainerInfo, error)
	ListImages(ctx context.Context, all bool) ([]ImageRow, error)
}
