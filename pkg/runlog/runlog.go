// Package runlog owns the per-invocation log directory: a log file
// receiving a copy of everything the harness prints, raw sample dumps,
// and a "last" symlink pointing at the newest run.
package runlog

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const rootDirName = ".shbench"

// RunLog is the open per-invocation log directory. The zero value is
// not usable; call Open.
type RunLog struct {
	root string
	dir  string
	file *os.File
}

// Open creates a fresh run directory under $HOME/.shbench named by
// timestamp plus a short unique suffix, opens log.txt inside it and
// repoints the "last" symlink.
func Open() (*RunLog, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolving home directory: %w", err)
	}
	root := filepath.Join(home, rootDirName)
	name := fmt.Sprintf("%s-%s", time.Now().Format("20060102-150405"), uuid.New().String()[:8])
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating run log directory: %w", err)
	}

	f, err := os.Create(filepath.Join(dir, "log.txt"))
	if err != nil {
		return nil, fmt.Errorf("creating run log file: %w", err)
	}

	// Symlinking is best effort; some filesystems refuse it.
	link := filepath.Join(root, "last")
	os.Remove(link)
	_ = os.Symlink(dir, link)

	return &RunLog{root: root, dir: dir, file: f}, nil
}

// Dir returns the run directory path.
func (l *RunLog) Dir() string {
	return l.dir
}

// Last returns the path of the "last" symlink, or "" when it could not
// be created.
func (l *RunLog) Last() string {
	link := filepath.Join(l.root, "last")
	if _, err := os.Lstat(link); err != nil {
		return ""
	}
	return link
}

// Write appends to log.txt, satisfying io.Writer so the logger and the
// reporter can tee into the run log.
func (l *RunLog) Write(p []byte) (int, error) {
	return l.file.Write(p)
}

// WriteRaw appends one line per variant of raw sample renderings for
// the named quantity to raw.txt, so a run leaves its measurements
// behind in machine-greppable form.
func (l *RunLog) WriteRaw(quantity string, names []string, rows [][]string) error {
	f, err := os.OpenFile(filepath.Join(l.dir, "raw.txt"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening raw dump: %w", err)
	}
	defer f.Close()
	for i, row := range rows {
		if _, err := fmt.Fprintf(f, "%s %s:", names[i], quantity); err != nil {
			return err
		}
		for _, v := range row {
			if _, err := fmt.Fprintf(f, " %s", v); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(f); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes and closes log.txt.
func (l *RunLog) Close() error {
	return l.file.Close()
}
