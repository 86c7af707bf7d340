package pdf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Search handles report file discovery for directory batch runs
type Search struct {
	maxFileSize int64
	validator   *Validator
}

// NewSearch creates a new report search handler with the specified constraints
func NewSearch(maxFileSize int64) *Search {
	return &Search{
		maxFileSize: maxFileSize,
		validator:   NewValidator(maxFileSize),
	}
}

// SearchDirectory searches for report PDF files in the specified directory
func (s *Search) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	if req.Directory == "" {
		return nil, fmt.Errorf("directory cannot be empty")
	}

	if _, err := os.Stat(req.Directory); os.IsNotExist(err) {
		return nil, fmt.Errorf("directory does not exist: %s", req.Directory)
	}

	absDirectory, err := filepath.Abs(req.Directory)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory path: %w", err)
	}

	var files []FileInfo
	query := strings.ToLower(strings.TrimSpace(req.Query))

	err = filepath.Walk(absDirectory, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			// Continue walking even if a specific entry errors
			return nil //nolint:nilerr // Intentionally continue on file errors
		}

		if info.IsDir() {
			return nil
		}

		// Quick validation without opening the file
		if err := s.validator.ValidateFileInfo(path, info); err != nil {
			return nil //nolint:nilerr // Skip invalid files, keep walking
		}

		if query != "" && !strings.Contains(strings.ToLower(info.Name()), query) {
			return nil
		}

		files = append(files, FileInfo{
			Path:         path,
			Name:         info.Name(),
			Size:         info.Size(),
			ModifiedTime: info.ModTime().Format("2006-01-02 15:04:05"),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking directory: %w", err)
	}

	return &SearchDirectoryResult{
		Files:       files,
		TotalCount:  len(files),
		Directory:   absDirectory,
		SearchQuery: req.Query,
	}, nil
}

// FindReportsInDirectory finds all report files in a directory without query filtering
func (s *Search) FindReportsInDirectory(directory string) ([]FileInfo, error) {
	result, err := s.SearchDirectory(SearchDirectoryRequest{Directory: directory})
	if err != nil {
		return nil, err
	}
	return result.Files, nil
}

// CountReportsInDirectory counts the number of report files in a directory
func (s *Search) CountReportsInDirectory(directory string) (int, error) {
	files, err := s.FindReportsInDirectory(directory)
	if err != nil {
		return 0, err
	}
	return len(files), nil
}
