package adapters

import (
	"errors"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/go-git/go-git/v5"

	"ros-cargo-build/internal/ports"
	"ros-cargo-build/internal/types"
)

// GitRevisionAdapter reports the commit a package source tree is checked
// out at. Directories outside a repository are not an error.
type GitRevisionAdapter struct{}

func NewGitRevisionAdapter() GitRevisionAdapter {
	return GitRevisionAdapter{}
}

func (a GitRevisionAdapter) Revision(dir string) (types.SourceRevision, bool, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return types.SourceRevision{}, false, nil
	}
	if err != nil {
		return types.SourceRevision{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to open source repository").
			WithCause(err)
	}
	head, err := repo.Head()
	if err != nil {
		// Fresh repository without commits.
		return types.SourceRevision{}, false, nil
	}
	revision := types.SourceRevision{Commit: head.Hash().String()}
	if head.Name().IsBranch() {
		revision.Branch = head.Name().Short()
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return revision, true, nil
	}
	status, err := worktree.Status()
	if err != nil {
		return types.SourceRevision{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read worktree status").
			WithCause(err)
	}
	revision.Dirty = !status.IsClean()
	return revision, true, nil
}

var _ ports.SourceRevisionPort = GitRevisionAdapter{}
