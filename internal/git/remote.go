package git

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// Remote is a repository location split into the parts changelog links
// are built from.
type Remote struct {
	// Host includes the scheme, e.g. "https://github.com".
	Host       string
	Owner      string
	Repository string
}

// Remote returns the parsed first URL of the named remote.
func (r *Reader) Remote(name string) (*Remote, error) {
	remote, err := r.repo.Remote(name)
	if err != nil {
		return nil, fmt.Errorf("looking up remote %q: %w", name, err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return nil, fmt.Errorf("remote %q has no URL", name)
	}
	return ParseRemoteURL(urls[0])
}

// ParseRemoteURL parses https, ssh and scp-like remote URLs. SSH remotes
// map to an https host since that is where their web pages live.
func ParseRemoteURL(raw string) (*Remote, error) {
	ep, err := transport.NewEndpoint(raw)
	if err != nil {
		return nil, fmt.Errorf("parsing remote URL %q: %w", raw, err)
	}
	if ep.Protocol == "file" || ep.Host == "" {
		return nil, fmt.Errorf("remote URL %q is not a hosted repository", raw)
	}

	path := strings.TrimSuffix(strings.Trim(ep.Path, "/"), ".git")
	idx := strings.LastIndex(path, "/")
	if idx <= 0 || idx == len(path)-1 {
		return nil, fmt.Errorf("remote URL %q has no owner/repository path", raw)
	}

	scheme := "https"
	host := ep.Host
	if ep.Protocol == "http" || ep.Protocol == "https" {
		scheme = ep.Protocol
		if ep.Port != 0 && !isDefaultPort(ep.Protocol, ep.Port) {
			host += ":" + strconv.Itoa(ep.Port)
		}
	}

	return &Remote{
		Host:       scheme + "://" + host,
		Owner:      path[:idx],
		Repository: path[idx+1:],
	}, nil
}

func isDefaultPort(protocol string, port int) bool {
	return (protocol == "https" && port == 443) || (protocol == "http" && port == 80)
}
