package git

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5/plumbing"
)

// Tag is a release tag whose name parses as a semantic version.
type Tag struct {
	Name    string
	Version *semver.Version
	// Hash is the commit the tag points to, peeled for annotated tags.
	Hash string
}

// Tags returns the semver tags carrying prefix, highest version first.
// Tags that do not parse as versions are skipped.
func (r *Reader) Tags(prefix string) ([]Tag, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	defer iter.Close()

	var tags []Tag
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if !strings.HasPrefix(name, prefix) {
			return nil
		}
		v, err := semver.NewVersion(strings.TrimPrefix(name, prefix))
		if err != nil {
			logDebug("[git] skipping non-semver tag %s", name)
			return nil
		}
		tags = append(tags, Tag{Name: name, Version: v, Hash: r.peel(ref).String()})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	sort.SliceStable(tags, func(i, j int) bool {
		return tags[i].Version.GreaterThan(tags[j].Version)
	})
	return tags, nil
}

// LatestTag returns the highest semver tag carrying prefix, or nil when the
// repository has none.
func (r *Reader) LatestTag(prefix string) (*Tag, error) {
	tags, err := r.Tags(prefix)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		logDebug("[git] LatestTag: no tags with prefix %q", prefix)
		return nil, nil
	}
	logDebug("[git] LatestTag: %s", tags[0].Name)
	return &tags[0], nil
}

// peel resolves annotated tags to the commit they point at.
func (r *Reader) peel(ref *plumbing.Reference) plumbing.Hash {
	obj, err := r.repo.TagObject(ref.Hash())
	if err != nil {
		return ref.Hash()
	}
	c, err := obj.Commit()
	if err != nil {
		return ref.Hash()
	}
	return c.Hash
}
