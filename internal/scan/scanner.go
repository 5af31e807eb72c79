package scan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/gofrs/flock"
	"golang.org/x/text/unicode/norm"

	"beetsedit/internal/logging"
	"beetsedit/internal/rewrite"
)

// ErrLocked is returned when another scan holds the run lock.
var ErrLocked = errors.New("another beets-edit run is in progress")

// Editor performs the two beets edits for one matching entry.
type Editor interface {
	EditTracks(ctx context.Context, query string) error
	EditAlbum(ctx context.Context, query string) error
}

// Options configures a Scanner.
type Options struct {
	// KeepGoing continues with the next entry after a failure.
	KeepGoing bool
	// LockPath, when set, is flock'ed for the duration of the scan.
	LockPath string
}

// Summary reports what a scan did.
type Summary struct {
	Entries int
	Matched []string
	Edited  []string
	Failed  []string
}

// Scanner drives edits for matching directory entries.
type Scanner struct {
	matcher *rewrite.Matcher
	editor  Editor
	opts    Options
	logger  *slog.Logger
}

// New constructs a Scanner.
func New(matcher *rewrite.Matcher, editor Editor, opts Options, logger *slog.Logger) (*Scanner, error) {
	if editor == nil {
		return nil, errors.New("scan requires an editor")
	}
	return &Scanner{
		matcher: matcher,
		editor:  editor,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "scan"),
	}, nil
}

// Run scans dir.
func (s *Scanner) Run(ctx context.Context, dir string) (summary Summary, err error) {
	if s.opts.LockPath != "" {
		lock := flock.New(s.opts.LockPath)
		ok, lockErr := lock.TryLock()
		if lockErr != nil {
			return Summary{}, fmt.Errorf("acquire lock %s: %w", s.opts.LockPath, lockErr)
		}
		if !ok {
			return Summary{}, fmt.Errorf("%w (lock %s)", ErrLocked, s.opts.LockPath)
		}
		defer func() {
			if unlockErr := lock.Unlock(); unlockErr != nil {
				s.logger.Warn("failed to release run lock", logging.String("lock", s.opts.LockPath), logging.Error(unlockErr))
			}
		}()
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Summary{}, fmt.Errorf("read directory %s: %w", dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	summary.Entries = len(entries)
	s.logger.Info("scanning directory", logging.String("dir", dir), logging.Int("entries", len(entries)))

	var failures []error
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		name := entry.Name()
		if name == "" {
			return summary, fmt.Errorf("directory entry in %s has no name", dir)
		}
		s.logger.Log(ctx, logging.LevelTrace, "checking entry", logging.String("name", name))

		match, ok := s.find(name)
		if !ok {
			continue
		}
		summary.Matched = append(summary.Matched, name)
		s.logger.Info("entry matched",
			logging.String("name", name),
			logging.String("expression", match.Expression),
			logging.String("match", match.Kind()),
		)

		if err := s.handle(ctx, name); err != nil {
			summary.Failed = append(summary.Failed, name)
			if !s.opts.KeepGoing {
				return summary, err
			}
			s.logger.Error("entry failed; continuing", logging.String("name", name), logging.Error(err))
			failures = append(failures, err)
			continue
		}
		summary.Edited = append(summary.Edited, name)
	}

	s.logger.Info("scan finished",
		logging.Int("matched", len(summary.Matched)),
		logging.Int("edited", len(summary.Edited)),
		logging.Int("failed", len(summary.Failed)),
	)
	return summary, errors.Join(failures...)
}

// find matches the on-disk name first, then its NFC form, so rules written
// in either normalization form apply.
func (s *Scanner) find(name string) (rewrite.Match, bool) {
	if match, ok := s.matcher.Find(name); ok {
		return match, true
	}
	if normalized := norm.NFC.String(name); normalized != name {
		return s.matcher.Find(normalized)
	}
	return rewrite.Match{}, false
}

// handle runs the track edit, then the album edit, for one entry. The beets
// query gets a trailing slash so it matches the directory path.
func (s *Scanner) handle(ctx context.Context, name string) error {
	query := name + "/"
	if err := s.editor.EditTracks(ctx, query); err != nil {
		return fmt.Errorf("edit tracks for %q: %w", name, err)
	}
	if err := s.editor.EditAlbum(ctx, query); err != nil {
		return fmt.Errorf("edit album for %q: %w", name, err)
	}
	return nil
}
