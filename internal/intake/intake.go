package intake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"resume-screener/internal/shared/util"
)

// ErrSkipped marks a file rejected by the extension allow-list. Callers skip
// these silently; the submission continues with the remaining files.
var ErrSkipped = errors.New("file type not allowed")

// Intake accepts uploaded resume files into request-scoped batch directories.
type Intake struct {
	baseDir string
	allowed map[string]struct{}

	mu   sync.Mutex
	live map[string]struct{}
}

// New creates an Intake rooted at baseDir accepting the given extensions
// (lower-case, without the leading dot).
func New(baseDir string, extensions []string) *Intake {
	allowed := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &Intake{
		baseDir: baseDir,
		allowed: allowed,
		live:    make(map[string]struct{}),
	}
}

// Begin purges leftovers from crashed or finished submissions and opens a
// fresh batch directory for this request, named by a new id. Batches still
// in flight are left alone, so concurrent submissions work on disjoint
// directories.
func (i *Intake) Begin(ctx context.Context) (*Batch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := os.MkdirAll(i.baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	if err := i.sweep(); err != nil {
		return nil, fmt.Errorf("purge previous uploads: %w", err)
	}

	id := uuid.NewString()
	dir := filepath.Join(i.baseDir, id)
	if err := os.Mkdir(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create batch dir: %w", err)
	}

	i.mu.Lock()
	i.live[id] = struct{}{}
	i.mu.Unlock()

	return &Batch{intake: i, id: id, dir: dir}, nil
}

// sweep removes batch directories no longer tracked as live (leftovers from
// a previous process) and stray regular files under the base directory.
// Non-recursive: the base dir only ever contains batch dirs and,
// historically, bare uploads.
func (i *Intake) sweep() error {
	entries, err := os.ReadDir(i.baseDir)
	if err != nil {
		return err
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, entry := range entries {
		path := filepath.Join(i.baseDir, entry.Name())
		if entry.IsDir() {
			if _, ok := i.live[entry.Name()]; ok {
				continue
			}
			if err := os.RemoveAll(path); err != nil {
				return err
			}
			continue
		}
		if entry.Type().IsRegular() {
			if err := os.Remove(path); err != nil {
				return err
			}
		}
	}
	return nil
}

// Batch is the working directory for one submission.
type Batch struct {
	intake   *Intake
	id       string
	dir      string
	accepted []string
}

// ID returns the batch identifier.
func (b *Batch) ID() string { return b.id }

// Dir returns the batch directory path.
func (b *Batch) Dir() string { return b.dir }

// Accepted returns the stored names of files accepted so far.
func (b *Batch) Accepted() []string { return b.accepted }

// Add stores one uploaded file into the batch directory. Files whose
// extension is not in the allow-list are rejected with ErrSkipped.
func (b *Batch) Add(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fh.Filename), "."))
	if _, ok := b.intake.allowed[ext]; !ok || ext == "" {
		return "", ErrSkipped
	}

	name, err := util.SanitizeFileName(fh.Filename)
	if err != nil {
		return "", fmt.Errorf("sanitize file name: %w", err)
	}

	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.OpenFile(filepath.Join(b.dir, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return "", fmt.Errorf("create stored file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write stored file: %w", err)
	}

	b.accepted = append(b.accepted, name)
	return name, nil
}

// Close deletes the batch directory. Safe to call more than once; the HTTP
// handler defers it so the directory is cleaned up on every exit path.
func (b *Batch) Close() error {
	b.intake.mu.Lock()
	delete(b.intake.live, b.id)
	b.intake.mu.Unlock()
	return os.RemoveAll(b.dir)
}
