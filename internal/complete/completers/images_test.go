package completers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/stevedore-sh/stevedore-complete/internal/daemon"
)

func imageFixture() *fakeClient {
	return &fakeClient{images: []daemon.ImageRow{
		{Repository: "web", Tag: "1.0", ID: "sha111"},
		{Repository: "web", Tag: "latest", ID: "sha111"},
		{Repository: "db", Tag: "9.4", ID: "sha222"},
		{Repository: daemon.NoneRepository, Tag: daemon.NoneRepository, ID: "sha333"},
	}}
}

func TestRepositoriesExcludeSentinel(t *testing.T) {
	c := NewImageCompleter(imageFixture(), nil)

	got := c.Repositories(context.Background())
	assert.ElementsMatch(t, []string{"web", "db"}, candidateValues(got))
}

func TestRepoTagsExcludeUntagged(t *testing.T) {
	c := NewImageCompleter(imageFixture(), nil)

	got := c.RepoTags(context.Background())
	assert.ElementsMatch(t, []string{"web:1.0", "web:latest", "db:9.4"}, candidateValues(got))
}

func TestIDsIncludeUntaggedImages(t *testing.T) {
	c := NewImageCompleter(imageFixture(), nil)

	got := c.IDs(context.Background())
	assert.ElementsMatch(t, []string{"sha111", "sha222", "sha333"}, candidateValues(got))
}

func TestReferencesUnionAllShapes(t *testing.T) {
	c := NewImageCompleter(imageFixture(), nil)

	got := c.References(context.Background())
	assert.ElementsMatch(t,
		[]string{"web", "db", "web:1.0", "web:latest", "db:9.4", "sha111", "sha222", "sha333"},
		candidateValues(got))
}

func TestTagTargetsOmitIDs(t *testing.T) {
	c := NewImageCompleter(imageFixture(), nil)

	got := c.TagTargets(context.Background())
	assert.ElementsMatch(t,
		[]string{"web", "db", "web:1.0", "web:latest", "db:9.4"},
		candidateValues(got))
}

func TestImageDescriptions(t *testing.T) {
	client := &fakeClient{images: []daemon.ImageRow{
		{Repository: "web", Tag: "1.0", ID: "sha111", Created: time.Now().Add(-48 * time.Hour), Size: 120_000_000},
	}}
	c := NewImageCompleter(client, nil)

	got := c.RepoTags(context.Background())
	if assert.Len(t, got, 1) {
		assert.Contains(t, got[0].Description, "days ago")
		assert.Contains(t, got[0].Description, "MB")
	}
}

func TestImageDaemonErrorYieldsEmpty(t *testing.T) {
	c := NewImageCompleter(&fakeClient{err: assert.AnError}, nil)
	assert.Empty(t, c.References(context.Background()))
}
