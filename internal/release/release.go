// Package release tags the repository for a PLHub release.
package release

import (
	"fmt"
	"time"

	git "github.com/go-git/go-git/v5"
	gitcfg "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// Options controls tag creation.
type Options struct {
	RepoPath string // repository root; default "."
	Tag      string // e.g. "v0.6.0"
	Message  string // annotation message; defaults to the tag name
	Push     bool   // push the tag to origin after creating it
}

// Tag creates an annotated tag at HEAD and optionally pushes it.
func Tag(opts Options) error {
	if opts.Tag == "" {
		return fmt.Errorf("tag name is required")
	}
	path := opts.RepoPath
	if path == "" {
		path = "."
	}
	msg := opts.Message
	if msg == "" {
		msg = opts.Tag
	}

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return fmt.Errorf("opening repository at %s: %w", path, err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("resolving HEAD: %w", err)
	}

	tagger := &object.Signature{
		Name:  "plhub",
		Email: "plhub@pohlang.dev",
		When:  time.Now(),
	}
	if cfg, err := repo.ConfigScoped(gitcfg.GlobalScope); err == nil && cfg.User.Name != "" {
		tagger.Name = cfg.User.Name
		tagger.Email = cfg.User.Email
	}

	if _, err := repo.CreateTag(opts.Tag, head.Hash(), &git.CreateTagOptions{
		Tagger:  tagger,
		Message: msg,
	}); err != nil {
		return fmt.Errorf("creating tag %s: %w", opts.Tag, err)
	}

	if !opts.Push {
		return nil
	}

	refspec := gitcfg.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", opts.Tag, opts.Tag))
	err = repo.Push(&git.PushOptions{RemoteName: "origin", RefSpecs: []gitcfg.RefSpec{refspec}})
	if err != nil && err != git.NoErrAlreadyUpToDate {
		return fmt.Errorf("pushing tag %s: %w", opts.Tag, err)
	}
	return nil
}
