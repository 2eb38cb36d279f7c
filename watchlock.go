package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
)

const (
	lockFilePermissions = 0o644
	lockDirPermissions  = 0o755
)

// watchLock is the exclusive flock held by the watcher recording into a
// store. The lock file holds the watcher's PID and the directory it watches,
// one per line.
type watchLock struct {
	path string
	f    *os.File
}

// watchInfo is the content of a lock file.
type watchInfo struct {
	PID int
	Dir string
}

// watchLockPath is the lock file of the watcher recording into storePath.
func watchLockPath(storePath string) string {
	return storePath + ".watch.lock"
}

// acquireWatchLock takes the lock for storePath on behalf of a watcher of
// dir. It fails without blocking when another watcher holds it.
func acquireWatchLock(storePath, dir string) (*watchLock, error) {
	if storePath == "" {
		return nil, errors.New("no store path configured")
	}

	path := watchLockPath(storePath)

	if err := os.MkdirAll(filepath.Dir(path), lockDirPermissions); err != nil {
		return nil, fmt.Errorf("creating lock directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, lockFilePermissions)
	if err != nil {
		return nil, fmt.Errorf("opening lock file: %w", err)
	}

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX|syscall.LOCK_NB); err != nil {
		f.Close()

		if info, readErr := readWatchLock(storePath); readErr == nil {
			return nil, fmt.Errorf("store is already recorded by watcher PID %d (watching %s)", info.PID, info.Dir)
		}

		return nil, fmt.Errorf("store is already recorded by another watcher (could not lock %s)", path)
	}

	l := &watchLock{path: path, f: f}

	if err := l.write(watchInfo{PID: os.Getpid(), Dir: dir}); err != nil {
		l.Release()
		return nil, err
	}

	return l, nil
}

func (l *watchLock) write(info watchInfo) error {
	if err := l.f.Truncate(0); err != nil {
		return fmt.Errorf("truncating lock file: %w", err)
	}

	if _, err := fmt.Fprintf(l.f, "%d\n%s\n", info.PID, info.Dir); err != nil {
		return fmt.Errorf("writing lock file: %w", err)
	}

	// Readers look at the file while the lock is held.
	if err := l.f.Sync(); err != nil {
		return fmt.Errorf("syncing lock file: %w", err)
	}

	return nil
}

// Release removes the lock file and drops the lock.
func (l *watchLock) Release() {
	os.Remove(l.path)
	l.f.Close()
}

// readWatchLock parses the lock file for storePath.
func readWatchLock(storePath string) (watchInfo, error) {
	path := watchLockPath(storePath)

	data, err := os.ReadFile(path)
	if err != nil {
		return watchInfo{}, fmt.Errorf("reading lock file: %w", err)
	}

	pidLine, dir, _ := strings.Cut(strings.TrimRight(string(data), "\n"), "\n")

	pid, err := strconv.Atoi(strings.TrimSpace(pidLine))
	if err != nil || pid <= 0 {
		return watchInfo{}, fmt.Errorf("invalid PID in %s: %q", path, pidLine)
	}

	return watchInfo{PID: pid, Dir: dir}, nil
}

// signalWatcher sends sig to the watcher recording into storePath. A lock
// file left behind by a dead process is removed.
func signalWatcher(storePath string, sig syscall.Signal) (watchInfo, error) {
	info, err := readWatchLock(storePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return watchInfo{}, errors.New("no watcher is recording into this store")
		}

		return watchInfo{}, err
	}

	proc, err := os.FindProcess(info.PID)
	if err != nil {
		return watchInfo{}, fmt.Errorf("finding process %d: %w", info.PID, err)
	}

	if err := proc.Signal(syscall.Signal(0)); err != nil {
		os.Remove(watchLockPath(storePath))

		return watchInfo{}, fmt.Errorf("watcher PID %d is gone (removed stale lock file)", info.PID)
	}

	if err := proc.Signal(sig); err != nil {
		return watchInfo{}, fmt.Errorf("sending %s to watcher PID %d: %w", sig, info.PID, err)
	}

	return info, nil
}
