package imena

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"

	"github.com/nauchpop/imena/pkg/imena/ingest"
	"github.com/nauchpop/imena/pkg/imena/internalerr"
	"github.com/nauchpop/imena/pkg/imena/store"
)

// Key layout in the document store.
const (
	UploadPrefix    = "upload/"
	ProcessedPrefix = "processed/"
	NERPrefix       = "ner_"
	resultExt       = "txt"
)

// AllowedExtensions lists the file extensions Upload accepts.
var AllowedExtensions = []string{"txt"}

// Service is the document-level facade: it stores uploads, runs the
// extraction pipeline over them and keeps the rendered results.
type Service struct {
	store    store.Store
	pipeline *ingest.Pipeline
	workers  int

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

// Options configures a Service instance
type Options struct {
	Store    store.Store
	Pipeline *ingest.Pipeline
	Workers  int
}

// New creates a Service with the given dependencies
func New(opts Options) *Service {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &Service{
		store:    opts.Store,
		pipeline: opts.Pipeline,
		workers:  workers,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// Close cleanly shuts down the Service
func (s *Service) Close() error {
	return s.store.Close()
}

// Extract runs the pipeline over a single text.
func (s *Service) Extract(ctx context.Context, text string) ingest.Result {
	return s.pipeline.Extract(ctx, text)
}

// Markup returns text with extracted names wrapped in markers.
func (s *Service) Markup(ctx context.Context, text string) string {
	return s.pipeline.Markup(ctx, text)
}

// UploadInfo describes a stored upload.
type UploadInfo struct {
	FileID   string
	FileSize int
}

// Upload stores data under a sanitized form of filename.
func (s *Service) Upload(ctx context.Context, filename string, data []byte) (UploadInfo, error) {
	name := SanitizeFilename(filename)
	if name == "" {
		return UploadInfo{}, fmt.Errorf("%w: unusable filename %q", internalerr.ErrInvalidInput, filename)
	}
	if !allowedFile(name) {
		return UploadInfo{}, fmt.Errorf("%w: extension of %q not allowed", internalerr.ErrInvalidInput, filename)
	}

	key := UploadPrefix + name
	if err := s.store.Put(ctx, key, data); err != nil {
		return UploadInfo{}, fmt.Errorf("upload %s: %w", key, err)
	}
	return UploadInfo{FileID: key, FileSize: len(data)}, nil
}

// Processed is the outcome of running one upload through the pipeline.
type Processed struct {
	FileID       string
	ProcessedKey string
	Result       ingest.Result
}

// Process extracts names from the given uploads. With no ids every upload
// is processed. Ids that were never uploaded, and files that could not be
// read or whose result could not be stored, are logged and skipped. Results
// are returned in the order of the resolved ids.
func (s *Service) Process(ctx context.Context, fileIDs []string) ([]Processed, error) {
	ids, err := s.resolve(ctx, fileIDs)
	if err != nil {
		return nil, err
	}

	out := make([]Processed, len(ids))
	errs := make([]error, len(ids))

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < min(s.workers, len(ids)); w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				out[i], errs[i] = s.processOne(ctx, ids[i])
			}
		}()
	}

feed:
	for i := range ids {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	done := make([]Processed, 0, len(ids))
	for i, p := range out {
		if errs[i] != nil {
			log.Printf("imena: skipping %q: %v", ids[i], errs[i])
			continue
		}
		done = append(done, p)
	}
	return done, nil
}

// List returns stored keys under prefix.
func (s *Service) List(ctx context.Context, prefix string) ([]string, error) {
	return s.store.List(ctx, prefix)
}

// Get returns a stored document.
func (s *Service) Get(ctx context.Context, key string) ([]byte, error) {
	return s.store.Get(ctx, key)
}

func (s *Service) resolve(ctx context.Context, fileIDs []string) ([]string, error) {
	keys, err := s.store.List(ctx, UploadPrefix)
	if err != nil {
		return nil, fmt.Errorf("list uploads: %w", err)
	}
	uploaded := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		uploaded[strings.TrimPrefix(k, UploadPrefix)] = struct{}{}
	}

	if len(fileIDs) == 0 {
		ids := make([]string, 0, len(keys))
		for _, k := range keys {
			ids = append(ids, strings.TrimPrefix(k, UploadPrefix))
		}
		return ids, nil
	}

	ids := make([]string, 0, len(fileIDs))
	for _, id := range fileIDs {
		id = strings.TrimPrefix(id, UploadPrefix)
		if _, ok := uploaded[id]; !ok {
			log.Printf("imena: skipping %q: not uploaded", id)
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (s *Service) processOne(ctx context.Context, id string) (Processed, error) {
	data, err := s.store.Get(ctx, UploadPrefix+id)
	if err != nil {
		return Processed{}, fmt.Errorf("read %s: %w", id, err)
	}

	res := s.pipeline.Extract(ctx, string(data))
	key := ProcessedPrefix + NERPrefix + s.newID() + "." + resultExt
	if err := s.store.Put(ctx, key, []byte(res.String())); err != nil {
		return Processed{}, fmt.Errorf("store result for %s: %w", id, err)
	}
	return Processed{FileID: id, ProcessedKey: key, Result: res}, nil
}

func (s *Service) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}

var (
	unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	spaceRun            = regexp.MustCompile(`\s+`)
)

// SanitizeFilename reduces a client-supplied name to a safe ASCII base name.
// Directory parts are dropped, whitespace becomes underscores, other
// characters outside [A-Za-z0-9_.-] are removed along with leading and
// trailing dots and underscores. The result may be empty.
func SanitizeFilename(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)
	name = spaceRun.ReplaceAllString(strings.TrimSpace(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	return strings.Trim(name, "._")
}

func allowedFile(name string) bool {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return false
	}
	ext := strings.ToLower(name[dot+1:])
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
