// Package scan discovers candidate XML files from a set of input paths:
// plain .xml files, directories walked recursively, and ZIP archives whose
// XML members are extracted into a per-run scratch directory.
package scan

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rezonia/fattura-processor/internal/logger"
)

// Scratch is an isolated, uniquely-named temporary directory holding XML
// members extracted from ZIP archives. Callers must defer Cleanup so the
// directory is removed on every exit path.
type Scratch struct {
	dir string
}

// NewScratch creates the per-run scratch directory.
func NewScratch() (*Scratch, error) {
	dir, err := os.MkdirTemp("", "fattura-run-*")
	if err != nil {
		return nil, fmt.Errorf("create scratch directory: %w", err)
	}
	return &Scratch{dir: dir}, nil
}

// Dir returns the scratch directory path.
func (s *Scratch) Dir() string {
	return s.dir
}

// Cleanup removes the scratch directory and everything in it.
func (s *Scratch) Cleanup() error {
	return os.RemoveAll(s.dir)
}

// Discover expands the input paths into a finalized list of XML file paths.
// Unsupported inputs are skipped with a warning, never an error; discovery
// is a sequential pre-pass that completes before any processing starts.
func Discover(paths []string, scratch *Scratch) []string {
	log := logger.WithComponent("scan")
	var files []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			// Missing inputs stay in the list so the driver reports them
			// as file_not_found instead of silently dropping them.
			files = append(files, path)
			continue
		}

		switch {
		case info.IsDir():
			files = append(files, fromDir(path)...)
		case isZip(path):
			extracted, err := extractZip(path, scratch)
			if err != nil {
				log.Warn().Str("file", path).Err(err).Msg("skipping unreadable ZIP archive")
				continue
			}
			files = append(files, extracted...)
		case isXML(path):
			files = append(files, path)
		default:
			log.Warn().Str("file", path).Msg("ignoring unsupported file")
		}
	}

	return files
}

func isXML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xml")
}

// isZip sniffs the archive by content, not extension, since FatturaPA
// bundles are frequently misnamed.
func isZip(path string) bool {
	r, err := zip.OpenReader(path)
	if err != nil {
		return false
	}
	r.Close()
	return true
}

func fromDir(dir string) []string {
	log := logger.WithComponent("scan")
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isXML(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		log.Warn().Str("dir", dir).Err(err).Msg("directory walk failed")
	}
	return files
}

// extractZip copies every XML member into its own subdirectory of the
// scratch area and returns the extracted paths in archive order.
func extractZip(path string, scratch *Scratch) ([]string, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer reader.Close()

	dest, err := os.MkdirTemp(scratch.Dir(), "archive-*")
	if err != nil {
		return nil, fmt.Errorf("create extraction directory: %w", err)
	}

	var files []string
	for i, member := range reader.File {
		if member.FileInfo().IsDir() || !isXML(member.Name) {
			continue
		}
		target := filepath.Join(dest, filepath.Base(member.Name))
		if _, err := os.Stat(target); err == nil {
			// Same base name in different archive folders.
			target = filepath.Join(dest, fmt.Sprintf("%d-%s", i, filepath.Base(member.Name)))
		}
		if err := copyMember(member, target); err != nil {
			return nil, fmt.Errorf("extract %s: %w", member.Name, err)
		}
		files = append(files, target)
	}
	return files, nil
}

func copyMember(member *zip.File, target string) error {
	src, err := member.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}
