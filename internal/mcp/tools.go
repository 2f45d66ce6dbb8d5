package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listProjectsTool defines the list_projects MCP tool.
var listProjectsTool = mcp.NewTool("list_projects",
	mcp.WithDescription("List the research projects available to the logged-in account."),
)

// listFilesTool defines the list_files MCP tool.
var listFilesTool = mcp.NewTool("list_files",
	mcp.WithDescription("List the downloaded files of a project, grouped by source (PubMed, Google Scholar, CSV, Images, Included, Excluded)."),
	mcp.WithString("project",
		mcp.Required(),
		mcp.Description("Project name"),
	),
	mcp.WithString("source",
		mcp.Description("Only one source group"),
		mcp.Enum("PubMed", "Google Scholar", "CSV", "Images", "Included", "Excluded"),
	),
)

// searchArticlesTool defines the search_articles MCP tool.
var searchArticlesTool = mcp.NewTool("search_articles",
	mcp.WithDescription("Retrieve articles into a project from PubMed, Google Scholar, or both. Each search downloads at most 20 PDFs."),
	mcp.WithString("project",
		mcp.Required(),
		mcp.Description("Project name"),
	),
	mcp.WithString("source",
		mcp.Required(),
		mcp.Description("Where to search"),
		mcp.Enum("pubmed", "scholar", "both"),
	),
	mcp.WithString("terms",
		mcp.Required(),
		mcp.Description("Search terms, comma separated (up to three)"),
	),
	mcp.WithString("operators",
		mcp.Description("Operators joining the terms, comma separated (AND/OR)"),
	),
	mcp.WithNumber("max_pdfs",
		mcp.Description("How many PDFs to retrieve (default 10, capped at 20)"),
	),
)

// commonWordsTool defines the extract_common_words MCP tool.
var commonWordsTool = mcp.NewTool("extract_common_words",
	mcp.WithDescription("Run a word-frequency analysis over one downloaded PDF and return the most common words."),
	mcp.WithString("project",
		mcp.Required(),
		mcp.Description("Project name"),
	),
	mcp.WithString("pdf_path",
		mcp.Required(),
		mcp.Description("Storage path of the PDF, as returned by list_files"),
	),
)
