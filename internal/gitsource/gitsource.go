// Package gitsource keeps a local checkout of a git-hosted schedule
// workbook repository up to date.
package gitsource

import (
	"context"
	"fmt"
	"os"

	git "github.com/go-git/go-git/v5"
	"github.com/rs/zerolog"
)

// Sync clones the repository at url into localPath if no checkout exists
// there yet, or pulls the latest changes if one does. The workbook is read
// from the checkout afterwards, so a failed pull leaves the previous
// schedule in place.
func Sync(ctx context.Context, url, localPath string, log zerolog.Logger) error {
	_, err := os.Stat(localPath)
	switch {
	case os.IsNotExist(err):
		log.Info().Str("url", url).Str("path", localPath).Msg("cloning schedule repository")
		_, err := git.PlainCloneContext(ctx, localPath, false, &git.CloneOptions{
			URL:   url,
			Depth: 1,
		})
		if err != nil {
			return fmt.Errorf("failed to clone schedule repo %s: %w", url, err)
		}
		log.Info().Msg("clone successful")

	case err == nil:
		log.Info().Str("path", localPath).Msg("pulling schedule repository")
		repo, err := git.PlainOpen(localPath)
		if err != nil {
			return fmt.Errorf("failed to open schedule checkout at %s: %w", localPath, err)
		}

		worktree, err := repo.Worktree()
		if err != nil {
			return fmt.Errorf("failed to get worktree at %s: %w", localPath, err)
		}

		err = worktree.PullContext(ctx, &git.PullOptions{RemoteName: "origin"})
		if err != nil && err != git.NoErrAlreadyUpToDate {
			return fmt.Errorf("failed to pull schedule repo at %s: %w", localPath, err)
		}
		log.Info().Msg("pull successful (or already up to date)")

	default:
		return fmt.Errorf("error checking schedule checkout %s: %w", localPath, err)
	}

	return nil
}
