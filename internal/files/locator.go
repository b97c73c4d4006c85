package files

import (
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	apperrors "hmireport/internal/errors"
)

// DatedFolderLayout is the DDMMYY folder naming used by operator-log exports
const DatedFolderLayout = "020106"

// Matcher selects candidate files under a search directory.
type Matcher interface {
	// Candidates returns every file that qualifies. The locator picks the
	// latest one.
	Candidates(d *Discovery, dir string) ([]FileInfo, error)
	// Pattern describes the search for error messages.
	Pattern() string
}

// SubstringMatcher accepts files whose name contains Token, ignoring case.
type SubstringMatcher struct {
	Token      string
	Extensions []string
	// Exclude drops names containing any of these tokens, ignoring case.
	Exclude []string
}

// Pattern implements Matcher
func (m SubstringMatcher) Pattern() string {
	if len(m.Extensions) == 0 {
		return "*" + m.Token + "*"
	}
	return "*" + m.Token + "*{" + strings.Join(m.Extensions, ",") + "}"
}

// Candidates implements Matcher
func (m SubstringMatcher) Candidates(d *Discovery, dir string) ([]FileInfo, error) {
	files, err := d.FindFiles(dir, m.Extensions...)
	if err != nil {
		return nil, err
	}

	token := strings.ToLower(m.Token)
	var matched []FileInfo
	for _, f := range files {
		name := strings.ToLower(f.Name)
		if strings.HasPrefix(name, "~$") || !strings.Contains(name, token) {
			continue
		}
		if containsAny(name, m.Exclude) {
			continue
		}
		matched = append(matched, f)
	}
	return matched, nil
}

// DatedFolderMatcher searches the most recent DDMMYY subdirectory with the
// inner matcher. Folder names that are not valid dates are ignored.
type DatedFolderMatcher struct {
	Inner SubstringMatcher
}

// Pattern implements Matcher
func (m DatedFolderMatcher) Pattern() string {
	return "DDMMYY/" + m.Inner.Pattern()
}

// Candidates implements Matcher
func (m DatedFolderMatcher) Candidates(d *Discovery, dir string) ([]FileInfo, error) {
	folder, ok, err := LatestDatedFolder(d, dir)
	if err != nil || !ok {
		return nil, err
	}
	return m.Inner.Candidates(d, folder.Path)
}

// LatestDatedFolder returns the subdirectory of dir whose DDMMYY name is
// the greatest date.
func LatestDatedFolder(d *Discovery, dir string) (FileInfo, bool, error) {
	dirs, err := d.ListDirectories(dir)
	if err != nil {
		return FileInfo{}, false, err
	}

	type dated struct {
		info FileInfo
		date time.Time
	}
	var folders []dated
	for _, sub := range dirs {
		if len(sub.Name) != len(DatedFolderLayout) {
			continue
		}
		date, err := time.Parse(DatedFolderLayout, sub.Name)
		if err != nil {
			continue
		}
		folders = append(folders, dated{info: sub, date: date})
	}
	if len(folders) == 0 {
		return FileInfo{}, false, nil
	}

	sort.SliceStable(folders, func(i, j int) bool {
		return folders[i].date.After(folders[j].date)
	})
	return folders[0].info, true, nil
}

// Locator resolves the input file of a report run.
type Locator struct {
	discovery *Discovery
	logger    *slog.Logger
}

// NewLocator creates a locator over the given discovery
func NewLocator(discovery *Discovery, logger *slog.Logger) *Locator {
	if discovery == nil {
		discovery = NewDiscovery("")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{discovery: discovery, logger: logger}
}

// Locate returns the input file. A non-empty override is used as is and
// only checked for existence. Otherwise the latest candidate of m under dir
// is chosen. Failing to find anything is a NotFound error.
func (l *Locator) Locate(dir string, m Matcher, override string) (FileInfo, error) {
	if override != "" {
		info, err := os.Stat(override)
		if err != nil || info.IsDir() {
			nf := apperrors.NewNotFoundError(override, dir)
			if err != nil {
				nf.Cause = err
			}
			return FileInfo{}, nf
		}
		l.logger.Info("Using explicit input file", slog.String("path", override))
		return FileInfo{
			Path:    override,
			Name:    info.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}, nil
	}

	candidates, err := m.Candidates(l.discovery, dir)
	if err != nil {
		nf := apperrors.NewNotFoundError(m.Pattern(), dir)
		nf.Cause = err
		return FileInfo{}, nf
	}

	latest, ok := GetLatestFile(candidates)
	if !ok {
		return FileInfo{}, apperrors.NewNotFoundError(m.Pattern(), dir)
	}

	l.logger.Info("Located input file",
		slog.String("path", latest.Path),
		slog.String("pattern", m.Pattern()),
		slog.Int("candidates", len(candidates)),
		slog.Time("modified", latest.ModTime))

	return latest, nil
}

func containsAny(name string, tokens []string) bool {
	for _, t := range tokens {
		if t != "" && strings.Contains(name, strings.ToLower(t)) {
			return true
		}
	}
	return false
}
