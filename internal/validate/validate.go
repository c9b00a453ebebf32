package validate

import (
	"context"
	"fmt"
	"strings"

	"github.com/pvginkel/gitblit-mcp/internal/gitblit"
)

// Validator gates tool calls on repository existence. Unknown names fail
// the whole call with a NOT_FOUND error that embeds correction
// suggestions, so the caller can act without inspecting logs.
type Validator struct {
	cache *RepoCache
}

// NewValidator creates a Validator backed by the given cache.
func NewValidator(cache *RepoCache) *Validator {
	return &Validator{cache: cache}
}

// ValidateRepository checks that a single repository exists.
func (v *Validator) ValidateRepository(ctx context.Context, repo string) error {
	return v.ValidateRepositories(ctx, []string{repo})
}

// ValidateRepositories checks that every named repository exists. An empty
// input passes trivially. Any unknown name fails the entire batch with a
// *gitblit.APIError of code NOT_FOUND whose message lists each unknown
// name, in input order, with its suggestions. Cache refresh errors
// propagate unchanged.
func (v *Validator) ValidateRepositories(ctx context.Context, repos []string) error {
	if len(repos) == 0 {
		return nil
	}

	allRepoNames, err := v.cache.RepoNames(ctx)
	if err != nil {
		return err
	}

	validSet := make(map[string]struct{}, len(allRepoNames))
	for _, name := range allRepoNames {
		validSet[name] = struct{}{}
	}

	var invalidRepos []string
	for _, repo := range repos {
		if _, ok := validSet[repo]; !ok {
			invalidRepos = append(invalidRepos, repo)
		}
	}

	if len(invalidRepos) == 0 {
		return nil
	}

	parts := make([]string, 0, len(invalidRepos))
	for _, repo := range invalidRepos {
		suggestions := FindSimilar(repo, allRepoNames, DefaultMaxSuggestions, DefaultMaxRelativeDistance)
		if len(suggestions) > 0 {
			parts = append(parts, fmt.Sprintf("Repository '%s' not found. Did you mean: %s?", repo, joinSuggestions(suggestions)))
		} else {
			parts = append(parts, fmt.Sprintf("Repository '%s' not found.", repo))
		}
	}

	return &gitblit.APIError{Code: gitblit.CodeNotFound, Message: strings.Join(parts, " ")}
}

// joinSuggestions renders quoted suggestions as "'a', 'b' or 'c'".
func joinSuggestions(suggestions []string) string {
	quoted := make([]string, len(suggestions))
	for i, s := range suggestions {
		quoted[i] = "'" + s + "'"
	}
	if len(quoted) == 1 {
		return quoted[0]
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
