// Package watch reports changes to source files under a directory tree.
package watch

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Event describes a changed source file.
type Event struct {
	Path string
}

// Watcher delivers an Event whenever a file with one of the configured
// extensions is written or created under a watched directory.
type Watcher struct {
	w    *fsnotify.Watcher
	exts []string
	evC  chan Event
	erC  chan error
}

// New creates a Watcher filtering for the given file extensions, such as
// ".radi". An empty list matches every file.
func New(extensions []string) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	fw := &Watcher{
		w:    w,
		exts: extensions,
		evC:  make(chan Event, 128),
		erC:  make(chan error, 1),
	}
	go fw.loop()
	return fw, nil
}

func (fw *Watcher) loop() {
	for {
		select {
		case ev, ok := <-fw.w.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !fw.matches(ev.Name) {
				continue
			}
			fw.evC <- Event{Path: ev.Name}
		case err, ok := <-fw.w.Errors:
			if !ok {
				return
			}
			fw.erC <- err
		}
	}
}

func (fw *Watcher) matches(name string) bool {
	if len(fw.exts) == 0 {
		return true
	}
	ext := filepath.Ext(name)
	for _, want := range fw.exts {
		if strings.EqualFold(ext, want) {
			return true
		}
	}
	return false
}

// AddDir registers dir and all of its subdirectories.
func (fw *Watcher) AddDir(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		return fw.w.Add(path)
	})
}

func (fw *Watcher) Events() <-chan Event  { return fw.evC }
func (fw *Watcher) Errors() <-chan error  { return fw.erC }
func (fw *Watcher) Add(name string) error { return fw.w.Add(name) }
func (fw *Watcher) Close() error          { return fw.w.Close() }
