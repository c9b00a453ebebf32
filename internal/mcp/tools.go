package mcp

import "github.com/mark3labs/mcp-go/mcp"

// Tool descriptions are kept concise to minimize token usage while still
// documenting backend behavior the model cannot discover on its own.

const listReposDescription = `Lists repositories in the Gitblit instance.

Behavior:
- Query uses case-insensitive substring matching on repository names
- If query is omitted, returns all accessible repositories
- Results are sorted alphabetically by name
- Supports offset-based pagination via 'offset' parameter
- Returns 'totalCount' (total matches) and 'limitHit' (whether more results exist)`

const listFilesDescription = `Lists files and directories at a path within a repository.

Behavior:
- If path is omitted, lists the repository root
- If revision is omitted, uses HEAD of the default branch
- Directories are listed first, then files
- Directory paths end with '/'
- Supports offset-based pagination via 'offset' parameter
- Returns 'totalCount' (total files) and 'limitHit' (whether more results exist)`

const readFileDescription = `Reads file content from a repository. Returns content with line numbers prefixed (e.g., "1: line\n2: line").

Behavior:
- If revision is omitted, reads from HEAD of the default branch
- If startLine/endLine are omitted, reads the entire file
- Line numbers are 1-indexed
- Maximum file size is 128KB; larger files return an error`

const fileSearchDescription = `Searches file contents across repositories using Gitblit's Lucene index. Returns matching code snippets with context.

Behavior:
- Supports Lucene syntax: exact phrases ("foo"), wildcards (foo*), AND/OR operators
- If repos is omitted, searches all accessible repositories
- If branch is omitted, searches only each repository's default branch (avoids duplicate results)
- If pathPattern is omitted, searches all file types
- If limit is omitted, defaults to 25 (max: 100)
- If contextLines is omitted, defaults to 10 (max: 200)
- Supports offset-based pagination via 'offset' parameter
- Returns 'totalCount' (total matches) and 'limitHit' (whether more results exist)`

const commitSearchDescription = `Searches commit history across repositories using Gitblit's Lucene index.

Behavior:
- Supports Lucene syntax: exact phrases ("foo"), wildcards (foo*), AND/OR operators
- repos parameter is required; must specify at least one repository
- If authors is specified, multiple authors use OR logic
- If branch is omitted, searches only each repository's default branch (avoids duplicate results)
- If limit is omitted, defaults to 25 (max: 100)
- Supports offset-based pagination via 'offset' parameter
- Returns 'totalCount' (total matches) and 'limitHit' (whether more results exist)`

const findFilesDescription = `Finds files matching a glob pattern across repositories using Git tree walking.
Use this to discover files by path/name without searching file contents.

Behavior:
- Uses Git tree walking (not Lucene index) for efficient path matching
- If repos is omitted, searches all accessible repositories
- If revision is omitted, uses HEAD of each repository's default branch
- If limit is omitted, defaults to 50 (max: 200)
- Supports offset-based pagination via 'offset' parameter
- Returns 'totalCount' (total matches) and 'limitHit' (whether more results exist)
- Results are grouped by repository
- Glob patterns: * matches any chars except /, ** matches any path segments, ? matches single char`

// listReposTool defines the list_repos MCP tool.
var listReposTool = mcp.NewTool("list_repos",
	mcp.WithDescription(listReposDescription),
	mcp.WithString("query",
		mcp.Description("Filter repositories by name (case-insensitive substring match). Omit to return all repositories."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum repositories to return. Default: 50, max: 100."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Results to skip for pagination. Default: 0."),
	),
)

// listFilesTool defines the list_files MCP tool.
var listFilesTool = mcp.NewTool("list_files",
	mcp.WithDescription(listFilesDescription),
	mcp.WithString("repo",
		mcp.Required(),
		mcp.Description("Repository name with .git suffix (e.g., 'team/project.git')."),
	),
	mcp.WithString("path",
		mcp.Description("Directory path relative to root, no leading slash. Omit or use empty string for root."),
	),
	mcp.WithString("revision",
		mcp.Description("Branch, tag, or commit SHA. Omit to use HEAD of default branch."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum files to return. Default: 100, max: 1000."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Results to skip for pagination. Default: 0."),
	),
)

// readFileTool defines the read_file MCP tool.
var readFileTool = mcp.NewTool("read_file",
	mcp.WithDescription(readFileDescription),
	mcp.WithString("repo",
		mcp.Required(),
		mcp.Description("Repository name with .git suffix (e.g., 'team/project.git')."),
	),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("File path relative to root, no leading slash (e.g., 'src/Main.java')."),
	),
	mcp.WithString("revision",
		mcp.Description("Branch, tag, or commit SHA. Omit to use HEAD of default branch."),
	),
	mcp.WithNumber("startLine",
		mcp.Description("1-based starting line. Omit to start from line 1."),
	),
	mcp.WithNumber("endLine",
		mcp.Description("1-based ending line (inclusive). Omit to read to end of file."),
	),
)

// fileSearchTool defines the file_search MCP tool.
var fileSearchTool = mcp.NewTool("file_search",
	mcp.WithDescription(fileSearchDescription),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Lucene query for file contents. Supports phrases (\"foo\"), wildcards (foo*), AND/OR."),
	),
	mcp.WithArray("repos",
		mcp.WithStringItems(),
		mcp.Description("Repository names to search. Omit to search all accessible repositories."),
	),
	mcp.WithString("pathPattern",
		mcp.Description("Glob pattern for file paths (e.g., '*.java', 'src/**/*.py'). Omit to search all files."),
	),
	mcp.WithString("branch",
		mcp.Description("Branch to search (e.g., 'refs/heads/main'). Omit to search default branch only."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum results. Default: 25, max: 100."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Results to skip for pagination. Default: 0."),
	),
	mcp.WithNumber("contextLines",
		mcp.Description("Context lines around matches. Default: 10, max: 200."),
	),
)

// commitSearchTool defines the commit_search MCP tool.
var commitSearchTool = mcp.NewTool("commit_search",
	mcp.WithDescription(commitSearchDescription),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Lucene query for commit messages. Supports phrases (\"fix\"), wildcards (feat*), AND/OR."),
	),
	mcp.WithArray("repos",
		mcp.Required(),
		mcp.WithStringItems(),
		mcp.Description("Repository names to search. Required, at least one."),
	),
	mcp.WithArray("authors",
		mcp.WithStringItems(),
		mcp.Description("Filter by author names. Multiple authors use OR logic. Omit to include all authors."),
	),
	mcp.WithString("branch",
		mcp.Description("Branch to search (e.g., 'refs/heads/main'). Omit to search default branch only."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum results. Default: 25, max: 100."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Results to skip for pagination. Default: 0."),
	),
)

// findFilesTool defines the find_files MCP tool.
var findFilesTool = mcp.NewTool("find_files",
	mcp.WithDescription(findFilesDescription),
	mcp.WithString("pathPattern",
		mcp.Required(),
		mcp.Description("Glob pattern to match file paths (e.g., '*.java', '**/Dockerfile', 'src/**/test_*.py')."),
	),
	mcp.WithArray("repos",
		mcp.WithStringItems(),
		mcp.Description("Repository names to search. Omit to search all accessible repositories."),
	),
	mcp.WithString("revision",
		mcp.Description("Branch, tag, or commit SHA. Omit to use HEAD of default branch."),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum files to return. Default: 50, max: 200."),
	),
	mcp.WithNumber("offset",
		mcp.Description("Results to skip for pagination. Default: 0."),
	),
)
