package validate

import (
	"sort"
	"strings"
)

// Defaults for FindSimilar.
const (
	// DefaultMaxSuggestions caps how many corrections are offered.
	DefaultMaxSuggestions = 3

	// DefaultMaxRelativeDistance is the hard cutoff on relative edit
	// distance. 0.6 filters out clearly unrelated repositories.
	DefaultMaxRelativeDistance = 0.6
)

// levenshteinDistance calculates the edit distance between two strings
// (insertions, deletions and substitutions each cost 1). Uses two rows of
// dynamic programming for O(min(m,n)) space. Case-sensitive.
func levenshteinDistance(s1, s2 string) int {
	// Make s1 the shorter string to minimize space usage.
	if len(s1) > len(s2) {
		s1, s2 = s2, s1
	}

	m, n := len(s1), len(s2)

	prevRow := make([]int, m+1)
	currRow := make([]int, m+1)
	for i := 0; i <= m; i++ {
		prevRow[i] = i
	}

	for j := 1; j <= n; j++ {
		currRow[0] = j
		for i := 1; i <= m; i++ {
			if s1[i-1] == s2[j-1] {
				currRow[i] = prevRow[i-1]
			} else {
				currRow[i] = 1 + min(prevRow[i-1], min(prevRow[i], currRow[i-1]))
			}
		}
		prevRow, currRow = currRow, prevRow
	}

	return prevRow[m]
}

// normalizeRepoName extracts the repository name without namespace and
// .git suffix, lowercased for comparison:
//
//	"pvginkel/ElectronicsInventory.git" -> "electronicsinventory"
//	"netide/netide-demo.git"           -> "netide-demo"
//	"TQL.git"                          -> "tql"
func normalizeRepoName(fullPath string) string {
	name := fullPath
	if idx := strings.LastIndex(name, "/"); idx >= 0 {
		name = name[idx+1:]
	}
	name = strings.TrimSuffix(name, ".git")
	return strings.ToLower(name)
}

// FindSimilar ranks the repositories most similar to an invalid name using
// Levenshtein distance. Only the name portion is compared (namespace and
// .git suffix stripped): namespace prefixes would otherwise swamp the
// signal carried by the project name, and callers virtually always guess
// the project name wrong, not the namespace.
//
// Candidates whose relative distance (edit distance over the longer
// normalized length) exceeds maxRelativeDistance are discarded. Returns at
// most maxSuggestions full repository names, best match first; ties keep
// the enumeration order of allRepos.
func FindSimilar(invalidRepo string, allRepos []string, maxSuggestions int, maxRelativeDistance float64) []string {
	if len(allRepos) == 0 {
		return nil
	}

	invalidName := normalizeRepoName(invalidRepo)

	type candidate struct {
		relDist float64
		repo    string
	}
	var candidates []candidate
	for _, repo := range allRepos {
		repoName := normalizeRepoName(repo)
		dist := levenshteinDistance(invalidName, repoName)

		// Relative distance: the proportion of the longer name that differs.
		maxLen := max(len(invalidName), len(repoName))
		relDist := 0.0
		if maxLen > 0 {
			relDist = float64(dist) / float64(maxLen)
		}

		if relDist <= maxRelativeDistance {
			candidates = append(candidates, candidate{relDist: relDist, repo: repo})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].relDist < candidates[j].relDist
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	suggestions := make([]string, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, c.repo)
	}
	return suggestions
}
