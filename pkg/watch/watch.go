// Package watch polls a drop folder for incoming datasets and submits a
// processing job for each one once its content has settled.
package watch

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/image2radiomics/i2r/pkg/scheduler"
	"github.com/image2radiomics/i2r/pkg/stability"
	"github.com/image2radiomics/i2r/pkg/state"
)

const (
	dirMode     = 0o755
	copyWorkers = 4
)

// Options configures one watcher instance.
type Options struct {
	Input          string        // drop folder to watch
	Workdir        string        // where pool folders are created
	Interval       time.Duration // time between scans
	CreationDelay  time.Duration // minimum age of a dataset before it is considered
	StabilityDelay time.Duration // how long the content signature must stay unchanged
	Remove         bool          // delete the source dataset after submission
	JobScript      string        // job script handed to the scheduler
	Submitter      *scheduler.Submitter
}

// Watcher scans the drop folder on a ticker and submits stable datasets.
type Watcher struct {
	opts  Options
	store *state.Store
	index *stability.Index
	now   func() time.Time
}

// New creates a watcher backed by the given processed-dataset store.
func New(opts Options, store *state.Store) *Watcher {
	return &Watcher{
		opts:  opts,
		store: store,
		index: stability.New(),
		now:   time.Now,
	}
}

// Run polls until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	log.Printf("[Watch] Watching %s every %s", w.opts.Input, w.opts.Interval)

	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	for {
		if err := w.Scan(ctx); err != nil {
			log.Printf("[Watch] Scan error: %v", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Scan runs one pass over the drop folder: observe candidates, then submit
// the ones whose content has been stable long enough.
func (w *Watcher) Scan(ctx context.Context) error {
	entries, err := os.ReadDir(w.opts.Input)
	if err != nil {
		return fmt.Errorf("reading drop folder: %w", err)
	}

	now := w.now()
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		path := filepath.Join(w.opts.Input, entry.Name())

		info, err := entry.Info()
		if err != nil {
			continue
		}
		if now.Sub(info.ModTime()) < w.opts.CreationDelay {
			continue
		}

		sig, err := Signature(path)
		if err != nil {
			log.Printf("[Watch] Error hashing %s: %v", entry.Name(), err)
			continue
		}
		if w.store.Seen(entry.Name(), sig) {
			continue
		}
		w.index.Observe(entry.Name(), sig, now)
	}

	for _, item := range w.index.StableSince(now.Add(-w.opts.StabilityDelay)) {
		if err := w.submit(ctx, item); err != nil {
			log.Printf("[Watch] Error submitting %s: %v", item.Key, err)
			continue
		}
		w.index.Remove(item.Key)
	}
	return nil
}

func (w *Watcher) submit(ctx context.Context, item stability.Item) error {
	src := filepath.Join(w.opts.Input, item.Key)

	// Re-hash right before submission; a late write restarts the clock.
	sig, err := Signature(src)
	if err != nil {
		return err
	}
	if sig != item.Signature {
		w.index.Observe(item.Key, sig, w.now())
		return fmt.Errorf("content changed during stability window")
	}

	pool := filepath.Join(w.opts.Workdir, w.now().Format("pool_2006_01_02_15_04_05"))
	dest := filepath.Join(pool, item.Key)
	if err := copyTree(ctx, src, dest); err != nil {
		return fmt.Errorf("copying dataset: %w", err)
	}

	out, err := w.opts.Submitter.Submit(ctx, w.opts.JobScript, pool)
	if err != nil {
		return err
	}
	if len(out) > 0 {
		log.Printf("[Watch] %s", string(out))
	}
	log.Printf("[Watch] Submitted %s (pool %s)", item.Key, pool)

	if err := w.store.Put(item.Key, state.Record{Signature: sig, Pool: pool}); err != nil {
		return err
	}

	if w.opts.Remove {
		if err := os.RemoveAll(src); err != nil {
			log.Printf("[Watch] Error removing source %s: %v", src, err)
		}
	}
	return nil
}

// Signature hashes the structure of a dataset folder: every file's relative
// path, size and modification time. Content bytes are deliberately not read,
// datasets can be tens of gigabytes.
func Signature(root string) (uint64, error) {
	h := xxhash.New()
	err := filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		fmt.Fprintf(h, "%s|%d|%d\n", rel, info.Size(), info.ModTime().UnixNano())
		return nil
	})
	if err != nil {
		return 0, err
	}
	return h.Sum64(), nil
}

// copyTree copies a dataset folder, fanning file copies out over a small
// worker group.
func copyTree(ctx context.Context, src, dest string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(copyWorkers)

	err := filepath.Walk(src, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dest, rel)
		if info.IsDir() {
			return os.MkdirAll(target, dirMode)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return copyFile(path, target, info.Mode())
		})
		return nil
	})
	if err != nil {
		return err
	}
	return g.Wait()
}

func copyFile(src, dest string, mode os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dest, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
