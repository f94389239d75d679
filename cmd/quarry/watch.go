package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// debounceInterval coalesces the burst of events editors fire per save.
const debounceInterval = 300 * time.Millisecond

// watchAndRecheck calls recheck whenever a watched rule source changes,
// until interrupted. Directories are watched recursively; directories
// created while watching are picked up.
func watchAndRecheck(paths []string, recheck func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = fw.Close() }()

	for _, path := range paths {
		if err := watchRecursive(fw, path); err != nil {
			return err
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	debounce := time.NewTimer(debounceInterval)
	if !debounce.Stop() {
		<-debounce.C
	}

	log.Info().Strs("paths", paths).Msg("Watching rule sources")

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watchRecursive(fw, event.Name)
				}
			}
			debounce.Reset(debounceInterval)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("Watcher error")
		case <-debounce.C:
			recheck()
		case <-interrupt:
			return nil
		}
	}
}

// watchRecursive registers path with the watcher. Files are watched via
// their parent directory, since fsnotify drops file watches on rename.
func watchRecursive(fw *fsnotify.Watcher, path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fw.Add(filepath.Dir(path))
	}

	return filepath.Walk(path, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip inaccessible paths
		}
		if info.IsDir() {
			return fw.Add(p)
		}
		return nil
	})
}
