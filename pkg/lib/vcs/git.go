package vcs

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

const defaultGitTool = "git"

// GitSource answers version queries by shelling out to the git cli.
type GitSource struct {
	logger *logrus.Entry
	config *GitConfig
}

type GitConfig struct {
	// Dir is the working directory git runs in. Empty means the process cwd.
	Dir string
	// Tool is the git executable, looked up on PATH when not absolute.
	Tool string
}

type GitOption func(config *GitConfig)

func WithDir(dir string) GitOption {
	return func(config *GitConfig) {
		config.Dir = dir
	}
}

func WithTool(tool string) GitOption {
	return func(config *GitConfig) {
		config.Tool = tool
	}
}

func (c *GitConfig) apply(options []GitOption) {
	for _, option := range options {
		option(c)
	}
}

// NewGitSource returns a GitSource that queries the repository containing the
// configured directory.
func NewGitSource(logger *logrus.Entry, opts ...GitOption) *GitSource {
	config := GitConfig{Tool: defaultGitTool}
	config.apply(opts)
	return &GitSource{
		logger: logger,
		config: &config,
	}
}

// CommitCount returns the number of commits reachable from HEAD.
func (g *GitSource) CommitCount(ctx context.Context) (int, error) {
	out, err := g.run(ctx, "rev-list", "HEAD", "--count")
	if err != nil {
		return 0, err
	}
	return parseCommitCount(out)
}

// CommitHash returns the full HEAD commit hash.
func (g *GitSource) CommitHash(ctx context.Context) (string, error) {
	out, err := g.run(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return parseCommitHash(out)
}

func (g *GitSource) run(ctx context.Context, args ...string) (string, error) {
	command := exec.CommandContext(ctx, g.config.Tool, args...)
	command.Dir = g.config.Dir

	g.logger.Debugf("running %s", command.String())

	out, err := command.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return "", fmt.Errorf("error running %s %s: %s: %w", g.config.Tool, strings.Join(args, " "), strings.TrimSpace(string(exitErr.Stderr)), err)
		}
		return "", fmt.Errorf("error running %s %s: %w", g.config.Tool, strings.Join(args, " "), err)
	}

	return string(out), nil
}

func parseCommitCount(out string) (int, error) {
	count, err := strconv.Atoi(strings.TrimSpace(out))
	if err != nil {
		return 0, fmt.Errorf("unexpected commit count %q: %w", strings.TrimSpace(out), err)
	}
	if count < 0 {
		return 0, fmt.Errorf("unexpected commit count %d", count)
	}
	return count, nil
}

func parseCommitHash(out string) (string, error) {
	hash := strings.TrimSpace(out)
	if hash == "" {
		return "", errors.New("empty commit hash")
	}
	return hash, nil
}
