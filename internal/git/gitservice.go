package git

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"subgrip/internal/domain"
)

// ShortIDLength is the number of hex digits shown for an abbreviated commit
const ShortIDLength = 7

// ErrNotARepository is returned when the target directory is not inside a git work tree
var ErrNotARepository = errors.New("not a git repository")

// runFunc executes git with args in dir and returns stdout
type runFunc func(ctx context.Context, dir string, args ...string) ([]byte, error)

// SubmoduleService lists the submodules of one repository
type SubmoduleService struct {
	repoPath string
	timeout  time.Duration
	run      runFunc
}

// NewSubmoduleService creates a submodule lister for the repository at repoPath
func NewSubmoduleService(repoPath string) *SubmoduleService {
	return &SubmoduleService{
		repoPath: repoPath,
		timeout:  10 * time.Second,
		run:      runGit,
	}
}

// RepoPath returns the repository the service reads from
func (s *SubmoduleService) RepoPath() string {
	return s.repoPath
}

// ListSubmodules returns the submodules in the order git reports them
func (s *SubmoduleService) ListSubmodules(ctx context.Context) ([]domain.Submodule, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	top, err := s.run(ctx, s.repoPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNotARepository, s.repoPath)
	}
	root := strings.TrimSpace(string(top))

	urls := map[string]string{}
	var configured []string
	if _, err := os.Stat(filepath.Join(root, ".gitmodules")); err == nil {
		out, err := s.run(ctx, root, "config", "--file", ".gitmodules", "--get-regexp", `^submodule\..*\.(path|url)$`)
		if err != nil && !isExitCode(err, 1) {
			return nil, fmt.Errorf("failed to read .gitmodules: %w", err)
		}
		configured, urls = parseGitmodules(out)
	}

	out, err := s.run(ctx, root, "submodule", "status")
	if err != nil {
		return nil, fmt.Errorf("git submodule status failed: %w", err)
	}

	submodules := parseSubmoduleStatus(out)
	seen := make(map[string]bool, len(submodules))
	for i := range submodules {
		submodules[i].URL = urls[submodules[i].Path]
		seen[submodules[i].Path] = true
	}

	// configured in .gitmodules but not recorded in the index
	for _, path := range configured {
		if seen[path] {
			continue
		}
		submodules = append(submodules, domain.Submodule{
			Path:   path,
			URL:    urls[path],
			Status: domain.StatusUnknown,
		})
	}

	log.Printf("Listed %d submodules in %s", len(submodules), root)
	return submodules, nil
}

// parseGitmodules reads `git config --get-regexp` output of .gitmodules.
// It returns paths in file order and a path -> url map.
func parseGitmodules(out []byte) ([]string, map[string]string) {
	names := map[string]string{} // submodule name -> path
	nameURLs := map[string]string{}
	var order []string

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		key, value, ok := strings.Cut(line, " ")
		if !ok {
			continue
		}
		key = strings.TrimPrefix(key, "submodule.")
		dot := strings.LastIndex(key, ".")
		if dot < 0 {
			continue
		}
		name, field := key[:dot], key[dot+1:]
		switch field {
		case "path":
			if _, exists := names[name]; !exists {
				order = append(order, name)
			}
			names[name] = value
		case "url":
			nameURLs[name] = value
		}
	}

	paths := make([]string, 0, len(order))
	urls := make(map[string]string, len(order))
	for _, name := range order {
		path := names[name]
		paths = append(paths, path)
		urls[path] = nameURLs[name]
	}
	return paths, urls
}

// parseSubmoduleStatus parses `git submodule status` lines of the form
// "<state><sha> <path>[ (<describe>)]"
func parseSubmoduleStatus(out []byte) []domain.Submodule {
	var submodules []domain.Submodule

	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()
		if len(line) < 2 {
			continue
		}

		status := domain.ParseSubmoduleStatus(line[0])
		sha, rest, ok := strings.Cut(line[1:], " ")
		if !ok {
			continue
		}

		path := rest
		if strings.HasSuffix(path, ")") {
			if i := strings.LastIndex(path, " ("); i >= 0 {
				path = path[:i]
			}
		}

		submodules = append(submodules, domain.Submodule{
			Path:    path,
			ShortID: shortID(sha),
			FullID:  sha,
			Status:  status,
		})
	}

	return submodules
}

func shortID(sha string) string {
	if len(sha) <= ShortIDLength {
		return sha
	}
	return sha[:ShortIDLength]
}

func isExitCode(err error, code int) bool {
	var exitErr *exec.ExitError
	return errors.As(err, &exitErr) && exitErr.ExitCode() == code
}

// runGit runs a git command the same way for every call site
func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return output, fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return output, nil
}
