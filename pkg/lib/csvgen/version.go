//go:generate go run github.com/maxbrunsfeld/counterfeiter/v6 . VersionSource
package csvgen

import (
	"context"
	"fmt"

	"github.com/blang/semver/v4"
)

// ShortHashLength is the exact length of the hash component of a Version.
const ShortHashLength = 7

// VersionSource reports the state of the version control checkout the CSV is built from.
type VersionSource interface {
	// CommitCount returns the number of commits reachable from the current head.
	CommitCount(ctx context.Context) (int, error)
	// CommitHash returns the current commit hash. ComputeVersion keeps its first ShortHashLength characters.
	CommitHash(ctx context.Context) (string, error)
}

// Version is rendered as <base>.<commits>-<hash>, e.g. 0.1.189-3f73a59.
type Version struct {
	Base    string
	Commits int
	Hash    string
}

func (v Version) String() string {
	return fmt.Sprintf("%s.%d-%s", v.Base, v.Commits, v.Hash)
}

// Semver parses the rendered version. OLM requires spec.version to be valid semver.
func (v Version) Semver() (semver.Version, error) {
	return semver.Parse(v.String())
}

// ComputeVersion queries source for the commit count and hash and combines them with base.
func ComputeVersion(ctx context.Context, source VersionSource, base string) (Version, error) {
	count, err := source.CommitCount(ctx)
	if err != nil {
		return Version{}, fmt.Errorf("error getting commit count: %w", err)
	}
	if count < 0 {
		return Version{}, fmt.Errorf("invalid commit count %d", count)
	}

	hash, err := source.CommitHash(ctx)
	if err != nil {
		return Version{}, fmt.Errorf("error getting commit hash: %w", err)
	}
	if len(hash) < ShortHashLength {
		return Version{}, fmt.Errorf("commit hash %q is shorter than %d characters", hash, ShortHashLength)
	}
	hash = hash[:ShortHashLength]
	if !isHex(hash) {
		return Version{}, fmt.Errorf("commit hash %q is not hexadecimal", hash)
	}

	return Version{Base: base, Commits: count, Hash: hash}, nil
}

func isHex(s string) bool {
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
