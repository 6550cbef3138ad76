// Where: internal/usecase/sortsettings/sortsettings.go
// What: Sort-and-rewrite workflow for proxy settings files.
// Why: Encapsulate the read/parse/sort/write sequence without CLI concerns.
package sortsettings

import (
	"errors"
	"fmt"
	"strings"

	"github.com/poruru/mimesort/internal/domain/settings"
	"github.com/poruru/mimesort/internal/infra/fileops"
	"go.uber.org/zap"
)

var errPathRequired = errors.New("settings path is required")

// Request captures the inputs of one sort run.
type Request struct {
	Path   string
	Indent int
	// Atomic writes through a temp file and rename instead of truncating in place.
	Atomic bool
	// DryRun renders the sorted document without writing it.
	DryRun bool
	// Check only reports whether the table is sorted.
	Check bool
}

// Result describes what a run observed and did.
type Result struct {
	Path          string
	Entries       int
	AlreadySorted bool
	Written       bool
	// Indent and Atomic echo the request for reporting.
	Indent        int
	Atomic        bool
	Output        []byte
}

// Service runs sort requests against the filesystem.
type Service struct {
	Logger    *zap.Logger
	ReadFile  func(string) ([]byte, error)
	WriteFile func(string, []byte) error
	// WriteFileAtomic is used when Request.Atomic is set.
	WriteFileAtomic func(string, []byte) error
}

// NewService returns a Service backed by fileops.
func NewService(logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		Logger:          logger,
		ReadFile:        fileops.ReadFile,
		WriteFile:       fileops.WriteFileInPlace,
		WriteFileAtomic: fileops.WriteFileAtomic,
	}
}

// Load reads and parses the settings document at path.
func (s *Service) Load(path string) (*settings.Document, error) {
	data, err := s.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %w", settings.ErrAccess, path, err)
	}
	doc, err := settings.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	s.Logger.Debug("Read settings file",
		zap.String("path", path),
		zap.Int("bytes", len(data)),
		zap.Strings("members", doc.Keys()),
	)
	return doc, nil
}

// Run loads the settings file, sorts extMimeTypes, and writes the result back.
// The document is fully parsed and validated before any write, so format and
// shape failures leave the file untouched.
func (s *Service) Run(req Request) (Result, error) {
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return Result{}, errPathRequired
	}
	log := s.Logger.With(zap.String("path", path))

	doc, err := s.Load(path)
	if err != nil {
		return Result{}, err
	}
	table, err := doc.MimeTypes()
	if err != nil {
		return Result{}, fmt.Errorf("parse %s: %w", path, err)
	}

	res := Result{
		Path:          path,
		Entries:       len(table),
		AlreadySorted: table.IsSorted(),
		Indent:        req.Indent,
		Atomic:        req.Atomic,
	}
	log.Debug("Loaded MIME table",
		zap.Int("entries", res.Entries),
		zap.Bool("sorted", res.AlreadySorted),
	)
	if req.Check {
		return res, nil
	}

	if err := doc.SetMimeTypes(table.Sorted()); err != nil {
		return Result{}, fmt.Errorf("rebuild MIME table: %w", err)
	}
	out, err := doc.Encode(req.Indent)
	if err != nil {
		return Result{}, fmt.Errorf("encode %s: %w", path, err)
	}
	res.Output = out
	if req.DryRun {
		return res, nil
	}

	write := s.WriteFile
	if req.Atomic {
		write = s.WriteFileAtomic
	}
	if err := write(path, out); err != nil {
		return Result{}, fmt.Errorf("%w: write %s: %w", settings.ErrAccess, path, err)
	}
	res.Written = true
	log.Info("Sorted MIME table",
		zap.Int("entries", res.Entries),
		zap.Bool("atomic", req.Atomic),
	)
	return res, nil
}
