package gitblit

import "fmt"

// Error codes returned by the Search API Plugin, mapped from HTTP status.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeAccessDenied   = "ACCESS_DENIED"
	CodeInternalError  = "INTERNAL_ERROR"
)

// APIError is a failure reported by the Gitblit backend, or a validation
// failure expressed in the same taxonomy so callers can match on Code
// uniformly.
type APIError struct {
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Repository describes a single repository known to the Gitblit instance.
type Repository struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LastChange  string `json:"lastChange,omitempty"`
	HasCommits  bool   `json:"hasCommits"`
}

// ListReposResponse is the response from the /repos endpoint.
type ListReposResponse struct {
	Repositories []Repository `json:"repositories"`
	TotalCount   int          `json:"totalCount"`
	LimitHit     bool         `json:"limitHit"`
}

// FileInfo describes a file or directory entry. Directory paths end with '/'.
type FileInfo struct {
	Path        string `json:"path"`
	IsDirectory bool   `json:"isDirectory"`
}

// ListFilesResponse is the response from the /files endpoint.
type ListFilesResponse struct {
	Files      []FileInfo `json:"files"`
	TotalCount int        `json:"totalCount"`
	LimitHit   bool       `json:"limitHit"`
}

// ReadFileResponse is the response from the /file endpoint. Content has
// line numbers prefixed, e.g. "1: package main".
type ReadFileResponse struct {
	Content string `json:"content"`
}

// SearchChunk is a matching code snippet with surrounding context.
type SearchChunk struct {
	StartLine int    `json:"startLine"`
	EndLine   int    `json:"endLine"`
	Content   string `json:"content"`
}

// FileSearchResult is one file's matches from a content search.
type FileSearchResult struct {
	Repository string        `json:"repository"`
	Path       string        `json:"path"`
	Branch     string        `json:"branch,omitempty"`
	CommitID   string        `json:"commitId,omitempty"`
	Chunks     []SearchChunk `json:"chunks"`
}

// FileSearchResponse is the response from the /search/files endpoint.
type FileSearchResponse struct {
	Query      string             `json:"query,omitempty"`
	TotalCount int                `json:"totalCount"`
	LimitHit   bool               `json:"limitHit"`
	Results    []FileSearchResult `json:"results"`
}

// CommitSearchResult is one matching commit from a history search.
type CommitSearchResult struct {
	Repository string `json:"repository"`
	Commit     string `json:"commit"`
	Author     string `json:"author"`
	Committer  string `json:"committer,omitempty"`
	Date       string `json:"date"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Branch     string `json:"branch,omitempty"`
}

// CommitSearchResponse is the response from the /search/commits endpoint.
type CommitSearchResponse struct {
	Query      string               `json:"query,omitempty"`
	TotalCount int                  `json:"totalCount"`
	LimitHit   bool                 `json:"limitHit"`
	Commits    []CommitSearchResult `json:"commits"`
}

// FindFilesResult is one repository's matching files from a glob search.
type FindFilesResult struct {
	Repository string   `json:"repository"`
	Revision   string   `json:"revision,omitempty"`
	Files      []string `json:"files"`
}

// FindFilesResponse is the response from the /find/files endpoint.
type FindFilesResponse struct {
	Pattern    string            `json:"pattern"`
	TotalCount int               `json:"totalCount"`
	LimitHit   bool              `json:"limitHit"`
	Results    []FindFilesResult `json:"results"`
}

// FileSearchParams are the parameters for SearchFiles.
type FileSearchParams struct {
	Query        string
	Repos        []string
	PathPattern  string
	Branch       string
	Limit        int
	Offset       int
	ContextLines int
}

// CommitSearchParams are the parameters for SearchCommits.
type CommitSearchParams struct {
	Query   string
	Repos   []string
	Authors []string
	Branch  string
	Limit   int
	Offset  int
}

// FindFilesParams are the parameters for FindFiles.
type FindFilesParams struct {
	PathPattern string
	Repos       []string
	Revision    string
	Limit       int
	Offset      int
}
