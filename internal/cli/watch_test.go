package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/structviz/pkg/errors"
)

func TestWatchFileCallsOnChange(t *testing.T) {
	path := writeFile(t, "tree.toml", "# v1\n")
	c, _, _ := testCLI()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- c.watchFile(ctx, path, 20*time.Millisecond, func() error {
			select {
			case changed <- struct{}{}:
			default:
			}
			return nil
		})
	}()

	// The watcher is registered asynchronously, so keep writing until a
	// change is reported.
	tick := time.NewTicker(100 * time.Millisecond)
	defer tick.Stop()
	for seen := false; !seen; {
		select {
		case <-changed:
			seen = true
		case <-tick.C:
			if err := os.WriteFile(path, []byte("# v2\n"), 0o644); err != nil {
				t.Fatal(err)
			}
		case <-ctx.Done():
			t.Fatal("no change reported before timeout")
		}
	}

	cancel()
	if err := <-done; err != context.Canceled {
		t.Errorf("watchFile() = %v, want context.Canceled", err)
	}
}

func TestWatchFileIgnoresSiblings(t *testing.T) {
	path := writeFile(t, "tree.toml", "# v1\n")
	other := filepath.Join(filepath.Dir(path), "other.toml")
	c, _, _ := testCLI()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	calls := 0
	done := make(chan error, 1)
	go func() {
		done <- c.watchFile(ctx, path, 10*time.Millisecond, func() error {
			calls++
			return nil
		})
	}()

	for i := 0; i < 3; i++ {
		time.Sleep(50 * time.Millisecond)
		if err := os.WriteFile(other, []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	<-done
	if calls != 0 {
		t.Errorf("onChange called %d times for a sibling file", calls)
	}
}

func TestWatchFileMissingDir(t *testing.T) {
	c, _, _ := testCLI()
	path := filepath.Join(t.TempDir(), "missing", "tree.toml")
	err := c.watchFile(context.Background(), path, time.Millisecond, func() error { return nil })
	if !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("watchFile() = %v, want INVALID_PATH", err)
	}
}

func TestRenderWatchRequiresInput(t *testing.T) {
	c, _, _ := testCLI()
	err := execute(t, c, "render", "--watch", "-o", filepath.Join(t.TempDir(), "x.png"))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("render --watch error = %v, want INVALID_INPUT", err)
	}
}
