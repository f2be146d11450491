//go:build e2e && unix

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// RepoOption is a function that configures repository creation
type RepoOption func(*repoOptions)

type repoOptions struct {
	submodules []submoduleFixture
}

type submoduleFixture struct {
	path     string
	modified bool
	deinit   bool
}

// WithSubmodule registers a submodule at path, backed by a fresh repository in the workspace
func WithSubmodule(path string) RepoOption {
	return func(opts *repoOptions) {
		opts.submodules = append(opts.submodules, submoduleFixture{path: path})
	}
}

// WithModifiedSubmodule registers a submodule whose checkout is moved past the recorded commit
func WithModifiedSubmodule(path string) RepoOption {
	return func(opts *repoOptions) {
		opts.submodules = append(opts.submodules, submoduleFixture{path: path, modified: true})
	}
}

// WithUninitializedSubmodule registers a submodule and deinitializes its checkout
func WithUninitializedSubmodule(path string) RepoOption {
	return func(opts *repoOptions) {
		opts.submodules = append(opts.submodules, submoduleFixture{path: path, deinit: true})
	}
}

// CreateTestWorkspace creates a temporary directory for test repositories
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}

// CreateTestRepo creates a Git repository in the workspace
func (tf *TUITestFramework) CreateTestRepo(name string, options ...RepoOption) (string, error) {
	if tf.workspace == "" {
		return "", fmt.Errorf("workspace not created")
	}

	repoPath := filepath.Join(tf.workspace, name)
	if err := os.MkdirAll(repoPath, 0755); err != nil {
		return "", err
	}

	if err := tf.runGitCommand(repoPath, "init"); err != nil {
		return "", err
	}
	if err := tf.runGitCommand(repoPath, "checkout", "-b", "main"); err != nil {
		return "", err
	}

	opts := &repoOptions{}
	for _, opt := range options {
		opt(opts)
	}

	// submodules need a commit to hang off
	readmeContent := fmt.Sprintf("# %s\n\nTest repository for subgrip testing.", name)
	if err := os.WriteFile(filepath.Join(repoPath, "README.md"), []byte(readmeContent), 0644); err != nil {
		return "", err
	}
	if err := tf.runGitCommand(repoPath, "add", "."); err != nil {
		return "", err
	}
	if err := tf.runGitCommand(repoPath, "commit", "-m", "Initial commit"); err != nil {
		return "", err
	}

	for _, sub := range opts.submodules {
		if err := tf.addSubmodule(repoPath, sub); err != nil {
			return "", err
		}
	}

	return repoPath, nil
}

func (tf *TUITestFramework) addSubmodule(repoPath string, sub submoduleFixture) error {
	source, err := tf.CreateTestRepo(filepath.Base(sub.path) + "-source")
	if err != nil {
		return err
	}

	if err := tf.runGitCommand(repoPath, "-c", "protocol.file.allow=always", "submodule", "add", source, sub.path); err != nil {
		return err
	}
	if err := tf.runGitCommand(repoPath, "commit", "-m", "Add submodule "+sub.path); err != nil {
		return err
	}

	checkout := filepath.Join(repoPath, sub.path)
	switch {
	case sub.modified:
		if err := os.WriteFile(filepath.Join(checkout, "CHANGES.md"), []byte("moved ahead\n"), 0644); err != nil {
			return err
		}
		if err := tf.runGitCommand(checkout, "add", "."); err != nil {
			return err
		}
		return tf.runGitCommand(checkout, "commit", "-m", "Move ahead")
	case sub.deinit:
		return tf.runGitCommand(repoPath, "submodule", "deinit", "-f", sub.path)
	}
	return nil
}

func (tf *TUITestFramework) runGitCommand(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	if dir != "" {
		cmd.Dir = dir
	}
	// Set deterministic git environment
	cmd.Env = append(os.Environ(),
		"GIT_AUTHOR_NAME=Subgrip Test",
		"GIT_AUTHOR_EMAIL=test@subgrip.test",
		"GIT_COMMITTER_NAME=Subgrip Test",
		"GIT_COMMITTER_EMAIL=test@subgrip.test",
		"GIT_CONFIG_GLOBAL=/dev/null", // ignore user ~/.gitconfig
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %v failed: %v; out=%s", args, err, out)
	}
	return nil
}
