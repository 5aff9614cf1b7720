// Package daemon provides a read-only client for the stevedore control-plane
// API. The completion engine uses it to list containers and images; it never
// mutates daemon state.
package daemon

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-cleanhttp"
	"go.uber.org/zap"
)

// DefaultHost is the daemon address used when neither the config file, the
// environment, nor a --host flag on the completed line overrides it.
const DefaultHost = "unix:///var/run/stevedore.sock"

// HTTPClient talks to the daemon over its HTTP API, reachable through a unix
// socket or a TCP address.
type HTTPClient struct {
	base   string
	client *http.Client
	logger *zap.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a client for the given host string. Supported forms
// are "unix:///path/to.sock" and "tcp://host:port".
func NewHTTPClient(host string, logger *zap.Logger) (*HTTPClient, error) {
	if host == "" {
		host = DefaultHost
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid daemon host %q: %w", host, err)
	}

	client := cleanhttp.DefaultClient()
	client.Timeout = 10 * time.Second

	var base string
	switch u.Scheme {
	case "unix":
		socketPath := u.Path
		transport := cleanhttp.DefaultTransport()
		transport.DialContext = func(ctx context.Context, _, _ string) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, "unix", socketPath)
		}
		client.Transport = transport
		// The hostname is a placeholder; the transport always dials the socket.
		base = "http://stevedore"
	case "tcp", "http":
		base = "http://" + u.Host
	default:
		return nil, fmt.Errorf("unsupported daemon host scheme %q", u.Scheme)
	}

	return &HTTPClient{
		base:   base,
		client: client,
		logger: logger,
	}, nil
}

// containerSummary is the wire shape of one entry in /containers/json.
type containerSummary struct {
	ID string `json:"Id"`
}

// containerDetail is the wire shape of /containers/{id}/json.
type containerDetail struct {
	ID    string `json:"Id"`
	Name  string `json:"Name"`
	State struct {
		Running bool `json:"Running"`
		Paused  bool `json:"Paused"`
	} `json:"State"`
}

// imageSummary is the wire shape of one entry in /images/json.
type imageSummary struct {
	ID       string   `json:"Id"`
	RepoTags []string `json:"RepoTags"`
	Created  int64    `json:"Created"`
	Size     int64    `json:"Size"`
}

// ListContainerIDs returns the identifiers of containers known to the daemon.
// With all=false only running containers are listed.
func (c *HTTPClient) ListContainerIDs(ctx context.Context, all bool) ([]string, error) {
	path := "/containers/json"
	if all {
		path += "?all=1"
	}

	var summaries []containerSummary
	if err := c.get(ctx, path, &summaries); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(summaries))
	for _, s := range summaries {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

// InspectContainers fetches the completion projection for each id. Results
// are returned in the same order as ids.
func (c *HTTPClient) InspectContainers(ctx context.Context, ids []string) ([]ContainerInfo, error) {
	infos := make([]ContainerInfo, 0, len(ids))
	for _, id := range ids {
		var detail containerDetail
		if err := c.get(ctx, "/containers/"+url.PathEscape(id)+"/json", &detail); err != nil {
			return nil, err
		}
		infos = append(infos, ContainerInfo{
			ID:      detail.ID,
			Name:    detail.Name,
			Running: detail.State.Running,
			Paused:  detail.State.Paused,
		})
	}
	return infos, nil
}

// ListImages returns one row per (repository, tag) pair. Untagged images
// produce a single row carrying the NoneRepository sentinel.
func (c *HTTPClient) ListImages(ctx context.Context, all bool) ([]ImageRow, error) {
	path := "/images/json"
	if all {
		path += "?all=1"
	}

	var summaries []imageSummary
	if err := c.get(ctx, path, &summaries); err != nil {
		return nil, err
	}

	rows := make([]ImageRow, 0, len(summaries))
	for _, s := range summaries {
		created := time.Unix(s.Created, 0)
		repoTags := s.RepoTags
		if len(repoTags) == 0 {
			repoTags = []string{NoneRepository + ":" + NoneRepository}
		}
		for _, rt := range repoTags {
			repo, tag := splitRepoTag(rt)
			rows = append(rows, ImageRow{
				Repository: repo,
				Tag:        tag,
				ID:         s.ID,
				Created:    created,
				Size:       s.Size,
			})
		}
	}
	return rows, nil
}

func (c *HTTPClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Debug("daemon request failed", zap.String("path", path), zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("daemon returned non-OK status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("daemon returned status %d for %s", resp.StatusCode, path)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// splitRepoTag splits "repo:tag" on the last colon so registry addresses with
// ports ("host:5000/repo:tag") keep their repository intact.
func splitRepoTag(repoTag string) (string, string) {
	i := strings.LastIndex(repoTag, ":")
	if i < 0 {
		return repoTag, ""
	}
	// A colon inside the final path segment separates the tag; a colon before
	// a slash belongs to a registry port.
	if strings.Contains(repoTag[i:], "/") {
		return repoTag, ""
	}
	return repoTag[:i], repoTag[i+1:]
}
