package beancount

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/shunichi-ikebuchi/sales-journal/pkg/pathutil"
)

const fileExt = ".beancount"

// entryLine matches the first line of a dated directive such as `2025-01-20 * "..."`.
var entryLine = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\s`)

// Repository stores formatted entries in one ledger file per month.
type Repository interface {
	// AppendEntry appends a formatted entry to the file for yearMonth (YYYY-MM),
	// creating the file with a header first when needed.
	AppendEntry(yearMonth, entry string) error

	// HasMonth reports whether the file for yearMonth exists.
	HasMonth(yearMonth string) bool

	// ReadMonth returns the file content for yearMonth, or "" if there is none.
	ReadMonth(yearMonth string) (string, error)

	// Months lists the year-months with a ledger file in year, sorted.
	Months(year string) ([]string, error)
}

// FileSystemRepository keeps ledger files under the resolver's ledger directory.
type FileSystemRepository struct {
	paths *pathutil.PathResolver
	now   func() time.Time
}

// NewFileSystemRepository creates a new FileSystemRepository.
func NewFileSystemRepository(paths *pathutil.PathResolver) *FileSystemRepository {
	return &FileSystemRepository{
		paths: paths,
		now:   time.Now,
	}
}

// AppendEntry implements Repository.
func (r *FileSystemRepository) AppendEntry(yearMonth, entry string) error {
	path, err := r.create(yearMonth)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s for appending: %w", path, err)
	}
	defer f.Close()

	block := strings.TrimRight(entry, "\n") + "\n\n"
	if _, err := f.WriteString(block); err != nil {
		return fmt.Errorf("failed to write to %s: %w", path, err)
	}
	return nil
}

// HasMonth implements Repository.
func (r *FileSystemRepository) HasMonth(yearMonth string) bool {
	path, err := r.paths.GetMonthFilePath(yearMonth)
	return err == nil && r.paths.FileExists(path)
}

// ReadMonth implements Repository.
func (r *FileSystemRepository) ReadMonth(yearMonth string) (string, error) {
	path, err := r.paths.GetMonthFilePath(yearMonth)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Months implements Repository.
func (r *FileSystemRepository) Months(year string) ([]string, error) {
	entries, err := os.ReadDir(r.paths.GetYearDir(year))
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list ledger files for %s: %w", year, err)
	}

	months := []string{}
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) == fileExt {
			months = append(months, strings.TrimSuffix(e.Name(), fileExt))
		}
	}
	sort.Strings(months)
	return months, nil
}

// create makes sure the month file exists with its header and returns its path.
func (r *FileSystemRepository) create(yearMonth string) (string, error) {
	path, err := r.paths.GetMonthFilePath(yearMonth)
	if err != nil {
		return "", err
	}
	if r.paths.FileExists(path) {
		return path, nil
	}

	if err := r.paths.EnsureParentDir(path); err != nil {
		return "", err
	}

	header := fmt.Sprintf("; Sales ledger for %s\n; Generated at %s\n\n", yearMonth, r.now().Format(time.RFC3339))
	if err := os.WriteFile(path, []byte(header), 0644); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	return path, nil
}

// CountEntries counts the dated directives in ledger content.
func CountEntries(content string) int {
	n := 0
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		if entryLine.MatchString(sc.Text()) {
			n++
		}
	}
	return n
}
