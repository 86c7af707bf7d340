package pdf

import (
	"fmt"
	"log"

	"github.com/dockroute/ordersheet/internal/extract"
)

// Service handles report file operations by orchestrating the document
// layer and the extraction core
type Service struct {
	maxFileSize int64
	reader      *Reader
	validator   *Validator
	search      *Search
	parser      *extract.Parser
}

// NewService creates a new report service with all components
func NewService(maxFileSize int64, opts extract.Options) *Service {
	return &Service{
		maxFileSize: maxFileSize,
		reader:      NewReader(maxFileSize),
		validator:   NewValidator(maxFileSize),
		search:      NewSearch(maxFileSize),
		parser:      extract.NewParser(opts),
	}
}

// ParseFile extracts all orders from one report file. Failing to open the
// document is the only fatal condition; pages that cannot be parsed
// contribute zero orders.
func (s *Service) ParseFile(req ParseFileRequest) (*ParseFileResult, error) {
	validation, err := s.validator.ValidateFile(ValidateFileRequest{Path: req.Path})
	if err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if !validation.Valid {
		return nil, fmt.Errorf("cannot open report: %s", validation.Message)
	}

	pages, err := s.reader.ReadPages(req.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	orders := s.parser.ParseDocument(pages)

	return &ParseFileResult{
		Path:   req.Path,
		Pages:  len(pages),
		Orders: orders,
	}, nil
}

// ParseDirectory extracts orders from every report file in a directory.
// Files that cannot be opened are recorded and skipped; the batch always
// covers every readable file.
func (s *Service) ParseDirectory(req ParseDirectoryRequest) (*ParseDirectoryResult, error) {
	search, err := s.search.SearchDirectory(SearchDirectoryRequest{
		Directory: req.Directory,
		Query:     req.Query,
	})
	if err != nil {
		return nil, err
	}

	result := &ParseDirectoryResult{
		Directory: search.Directory,
		Files:     search.TotalCount,
	}
	for _, file := range search.Files {
		fileResult, err := s.ParseFile(ParseFileRequest{Path: file.Path})
		if err != nil {
			log.Printf("pdf: skipping %s: %v", file.Path, err)
			result.Failures = append(result.Failures, file.Path)
			continue
		}
		result.Orders = append(result.Orders, fileResult.Orders...)
	}

	return result, nil
}

// ValidateFile performs validation on a report file
func (s *Service) ValidateFile(req ValidateFileRequest) (*ValidateFileResult, error) {
	return s.validator.ValidateFile(req)
}

// SearchDirectory searches for report files in a directory
func (s *Service) SearchDirectory(req SearchDirectoryRequest) (*SearchDirectoryResult, error) {
	return s.search.SearchDirectory(req)
}

// GetMaxFileSize returns the maximum file size limit
func (s *Service) GetMaxFileSize() int64 {
	return s.maxFileSize
}
