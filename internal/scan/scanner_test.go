package scan_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gofrs/flock"

	"beetsedit/internal/logging"
	"beetsedit/internal/rewrite"
	"beetsedit/internal/scan"
)

type recordingEditor struct {
	calls    []string
	failOn   map[string]error
	canceler context.CancelFunc
}

func (r *recordingEditor) EditTracks(ctx context.Context, query string) error {
	r.calls = append(r.calls, "tracks:"+query)
	return r.failOn["tracks:"+query]
}

func (r *recordingEditor) EditAlbum(ctx context.Context, query string) error {
	r.calls = append(r.calls, "album:"+query)
	if r.canceler != nil {
		r.canceler()
	}
	return r.failOn["album:"+query]
}

func makeEntries(t *testing.T, dirs ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, name := range dirs {
		if err := os.Mkdir(filepath.Join(root, name), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", name, err)
		}
	}
	return root
}

func newScanner(t *testing.T, rules []rewrite.Rule, editor scan.Editor, opts scan.Options) *scan.Scanner {
	t.Helper()
	m, err := rewrite.Compile(rules)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	s, err := scan.New(m, editor, opts, logging.NewNop())
	if err != nil {
		t.Fatalf("scan.New: %v", err)
	}
	return s
}

func TestRunEditsMatchingEntriesInOrder(t *testing.T) {
	root := makeEntries(t, "Zed", "Various Artists", "Other", "DJ Foo")
	editor := &recordingEditor{}
	s := newScanner(t, []rewrite.Rule{
		{Expressions: []string{"Various Artists", "^DJ "}},
	}, editor, scan.Options{})

	summary, err := s.Run(context.Background(), root)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := []string{"tracks:DJ Foo/", "album:DJ Foo/", "tracks:Various Artists/", "album:Various Artists/"}
	if !reflect.DeepEqual(editor.calls, want) {
		t.Fatalf("calls = %q, want %q", editor.calls, want)
	}
	if summary.Entries != 4 || len(summary.Matched) != 2 || len(summary.Edited) != 2 || len(summary.Failed) != 0 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunEditsEachEntryOnceWhenSeveralExpressionsMatch(t *testing.T) {
	root := makeEntries(t, "Various Artists")
	editor := &recordingEditor{}
	s := newScanner(t, []rewrite.Rule{
		{Expressions: []string{"Various Artists", "Various", "Artists"}},
		{Expressions: []string{"Various"}},
	}, editor, scan.Options{})

	if _, err := s.Run(context.Background(), root); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(editor.calls) != 2 {
		t.Fatalf("expected a single track+album edit, got %q", editor.calls)
	}
}

func TestRunNormalizesNamesBeforeMatching(t *testing.T) {
	decomposed := "Bjo\u0308rk"
	root := makeEntries(t, decomposed)
	editor := &recordingEditor{}
	s := newScanner(t, []rewrite.Rule{{Expressions: []string{"^Bj\u00f6rk$"}}}, editor, scan.Options{})

	if _, err := s.Run(context.Background(), root); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(editor.calls) != 2 {
		t.Fatalf("expected NFC-normalized match, calls=%q", editor.calls)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	if want := "tracks:" + entries[0].Name() + "/"; editor.calls[0] != want {
		t.Fatalf("query should use the on-disk name: got %q want %q", editor.calls[0], want)
	}
}

func TestRunMatchesDecomposedNameLiterally(t *testing.T) {
	decomposed := "Bjo\u0308rk (Live)"
	root := makeEntries(t, decomposed)
	entries, err := os.ReadDir(root)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	onDisk := entries[0].Name()
	editor := &recordingEditor{}
	s := newScanner(t, []rewrite.Rule{{Expressions: []string{onDisk}}}, editor, scan.Options{})

	if _, err := s.Run(context.Background(), root); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := []string{"tracks:" + onDisk + "/", "album:" + onDisk + "/"}
	if !reflect.DeepEqual(editor.calls, want) {
		t.Fatalf("calls = %q, want %q", editor.calls, want)
	}
}

func TestRunAbortsOnFirstFailure(t *testing.T) {
	root := makeEntries(t, "A1", "A2")
	boom := errors.New("boom")
	editor := &recordingEditor{failOn: map[string]error{"tracks:A1/": boom}}
	s := newScanner(t, []rewrite.Rule{{Expressions: []string{"^A"}}}, editor, scan.Options{})

	summary, err := s.Run(context.Background(), root)
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if !strings.Contains(err.Error(), `edit tracks for "A1"`) {
		t.Fatalf("error should name the phase and entry: %v", err)
	}
	if !reflect.DeepEqual(editor.calls, []string{"tracks:A1/"}) {
		t.Fatalf("album edit and later entries must not run: %q", editor.calls)
	}
	if !reflect.DeepEqual(summary.Failed, []string{"A1"}) {
		t.Fatalf("unexpected failed list: %v", summary.Failed)
	}
}

func TestRunKeepGoingCollectsFailures(t *testing.T) {
	root := makeEntries(t, "A1", "A2", "A3")
	errA1 := errors.New("a1")
	errA3 := errors.New("a3")
	editor := &recordingEditor{failOn: map[string]error{"album:A1/": errA1, "tracks:A3/": errA3}}
	s := newScanner(t, []rewrite.Rule{{Expressions: []string{"^A"}}}, editor, scan.Options{KeepGoing: true})

	summary, err := s.Run(context.Background(), root)
	if !errors.Is(err, errA1) || !errors.Is(err, errA3) {
		t.Fatalf("expected joined failures, got %v", err)
	}
	if !reflect.DeepEqual(summary.Edited, []string{"A2"}) || !reflect.DeepEqual(summary.Failed, []string{"A1", "A3"}) {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

func TestRunStopsWhenContextCanceled(t *testing.T) {
	root := makeEntries(t, "A1", "A2")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	editor := &recordingEditor{canceler: cancel}
	s := newScanner(t, []rewrite.Rule{{Expressions: []string{"^A"}}}, editor, scan.Options{})

	_, err := s.Run(ctx, root)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(editor.calls) != 2 {
		t.Fatalf("second entry must not start after cancel: %q", editor.calls)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	s := newScanner(t, nil, &recordingEditor{}, scan.Options{})
	if _, err := s.Run(context.Background(), filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestRunRespectsLock(t *testing.T) {
	root := makeEntries(t, "A1")
	lockPath := filepath.Join(t.TempDir(), "beets-edit.lock")
	held := flock.New(lockPath)
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("pre-acquire lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	editor := &recordingEditor{}
	s := newScanner(t, []rewrite.Rule{{Expressions: []string{"^A"}}}, editor, scan.Options{LockPath: lockPath})
	if _, err := s.Run(context.Background(), root); !errors.Is(err, scan.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if len(editor.calls) != 0 {
		t.Fatalf("no edits may run without the lock: %q", editor.calls)
	}

	if err := held.Unlock(); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if _, err := s.Run(context.Background(), root); err != nil {
		t.Fatalf("Run after unlock: %v", err)
	}
}

func TestNewRequiresEditor(t *testing.T) {
	if _, err := scan.New(rewrite.MustCompile(nil), nil, scan.Options{}, nil); err == nil {
		t.Fatal("expected error without editor")
	}
}
