package pdf

import (
	"github.com/dockroute/ordersheet/internal/extract"
)

// FileInfo represents information about a report PDF file
type FileInfo struct {
	Path         string `json:"path"`
	Name         string `json:"name"`
	Size         int64  `json:"size"`
	ModifiedTime string `json:"modified_time"`
}

// Request Types

// ParseFileRequest represents a request to extract orders from a report file
type ParseFileRequest struct {
	Path string `json:"path"`
}

// ParseDirectoryRequest represents a request to extract orders from every
// report file in a directory
type ParseDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// ValidateFileRequest represents a request to validate a report file
type ValidateFileRequest struct {
	Path string `json:"path"`
}

// SearchDirectoryRequest represents a request to search for report files in a directory
type SearchDirectoryRequest struct {
	Directory string `json:"directory"`
	Query     string `json:"query"`
}

// Response Types

// ParseFileResult represents the orders extracted from one report file
type ParseFileResult struct {
	Path   string          `json:"path"`
	Pages  int             `json:"pages"`
	Orders []extract.Order `json:"orders"`
}

// ParseDirectoryResult represents the orders extracted from a directory of
// report files. Files that could not be opened are listed in Failures; they
// never abort the batch.
type ParseDirectoryResult struct {
	Directory string          `json:"directory"`
	Files     int             `json:"files"`
	Orders    []extract.Order `json:"orders"`
	Failures  []string        `json:"failures,omitempty"`
}

// ValidateFileResult represents the result of a report file validation
type ValidateFileResult struct {
	Valid   bool   `json:"valid"`
	Path    string `json:"path"`
	Message string `json:"message,omitempty"`
}

// SearchDirectoryResult represents the result of a report file search
type SearchDirectoryResult struct {
	Files       []FileInfo `json:"files"`
	TotalCount  int        `json:"total_count"`
	Directory   string     `json:"directory"`
	SearchQuery string     `json:"search_query,omitempty"`
}
