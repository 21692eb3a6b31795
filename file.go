package argparse

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/BurntSushi/toml"
	"github.com/fsnotify/fsnotify"
	"gopkg.in/yaml.v3"
)

// LiveUpdateOpt is type restriction of L in File[T, L].
// EnableLiveUpdate and DisableLiveUpdate are the only implementations.
type LiveUpdateOpt interface {
	isWatched() bool
}

var (
	_ Parse     = &File[any, EnableLiveUpdate]{}
	_ Parse     = &File[any, DisableLiveUpdate]{}
	_ io.Closer = &File[any, EnableLiveUpdate]{}
)

// EnableLiveUpdate reloads the file whenever it changes on disk.
type EnableLiveUpdate struct{}

func (EnableLiveUpdate) isWatched() bool { return true }

// DisableLiveUpdate loads the file once.
type DisableLiveUpdate struct{}

func (DisableLiveUpdate) isWatched() bool { return false }

// File is an argument value naming a JSON, YAML or TOML file whose content is
// decoded into T. A File[[]byte, L] holds the raw content. Declare it through a pointer:
//
//	conf := argparse.Keyword[*argparse.File[Config, argparse.DisableLiveUpdate]](args, "config", "config file")
//
// With EnableLiveUpdate the file is watched and Get returns the latest
// successfully decoded content.
type File[T any, L LiveUpdateOpt] struct {
	path   string
	loaded atomic.Bool

	// Get hands out *T and a reload stores a new pointer, so a value a
	// caller already holds is never written to.
	t atomic.Pointer[T]

	liveUpdate L
	events     chan fsnotify.Event
	watcher    *fsnotify.Watcher
}

// unmarshalFn is implemented by json, yaml and toml.
type unmarshalFn func(data []byte, v any) error

// FromString loads the file at path. It may be called only once per File.
// A watched file is watched even when the first load fails, a later write
// may fix it; Close stops watching. A File argument that fails to convert
// during a parse is closed by the parser.
func (f *File[T, L]) FromString(path string) error {
	if !f.loaded.CompareAndSwap(false, true) {
		return fmt.Errorf("file %s: already loaded from %s", path, f.path)
	}
	f.path = path

	// a watched file that fails to decode is picked up by a later write
	err := f.load()
	if f.liveUpdate.isWatched() {
		f.events = make(chan fsnotify.Event, 2)
		if werr := f.watchChange(); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

// decodersFor picks the decoders to try from the file extension. Unknown
// extensions try every format in turn.
func decodersFor(path string) []unmarshalFn {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return []unmarshalFn{yaml.Unmarshal}
	case ".json":
		return []unmarshalFn{json.Unmarshal}
	case ".toml":
		return []unmarshalFn{toml.Unmarshal}
	}
	return []unmarshalFn{json.Unmarshal, yaml.Unmarshal, toml.Unmarshal}
}

func (f *File[T, L]) load() error {
	content, err := os.ReadFile(f.path)
	if err != nil {
		return err
	}
	var value T
	if raw, ok := any(&value).(*[]byte); ok {
		*raw = content
	} else if value, err = decodeByOrder[T](content, decodersFor(f.path)); err != nil {
		return err
	}
	f.t.Store(&value)
	return nil
}

// Example is shown in usage text.
func (f *File[T, L]) Example() string {
	return "config-file"
}

// String returns the path the file was loaded from.
func (f *File[T, L]) String() string {
	return f.path
}

// Get returns the decoded content, nil before a successful load.
func (f *File[T, L]) Get() *T {
	return f.t.Load()
}

// UpdateEvents returns a channel receiving an event after every reload. It
// is nil unless live update is enabled and is closed once watching stops.
func (f *File[T, L]) UpdateEvents() <-chan fsnotify.Event {
	// Channels rather than callbacks: callbacks for successive changes could
	// run concurrently.
	return f.events
}

func (f *File[T, L]) watchChange() error {
	configFile := filepath.Clean(f.path)
	configDir, _ := filepath.Split(configFile)
	if configDir == "" {
		configDir = "."
	}
	realConfigFile, _ := filepath.EvalSymlinks(f.path)

	// the directory is watched to see renames and atomic saves
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		close(f.events)
		return fmt.Errorf("watch %s: %w", f.path, err)
	}
	if err := watcher.Add(configDir); err != nil {
		watcher.Close()
		close(f.events)
		return fmt.Errorf("watch %s: %w", configDir, err)
	}
	f.watcher = watcher

	go func() {
		defer close(f.events)
		defer watcher.Close()
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				currentConfigFile, _ := filepath.EvalSymlinks(f.path)
				// reload when the file is written or created, or when the
				// symlink it resolves through changed (k8s ConfigMap)
				if (filepath.Clean(event.Name) == configFile &&
					(event.Has(fsnotify.Write) || event.Has(fsnotify.Create))) ||
					(currentConfigFile != "" && currentConfigFile != realConfigFile) {
					realConfigFile = currentConfigFile
					if err := f.load(); err != nil {
						log.Printf("reload config file %s: %v", f.path, err)
					}
					select {
					case f.events <- event:
					default:
						// nobody is listening, drop it
					}
				} else if filepath.Clean(event.Name) == configFile && event.Has(fsnotify.Remove) {
					return
				}

			case err, ok := <-watcher.Errors:
				if ok {
					log.Printf("watch config file %s: %v", f.path, err)
				}
				return
			}
		}
	}()
	return nil
}

// Close stops watching the file. The last loaded content stays available.
func (f *File[T, L]) Close() error {
	if f.watcher == nil {
		return nil
	}
	return f.watcher.Close()
}

type errList []error

func (el errList) Error() string {
	ret := []string{}
	for _, e := range el {
		ret = append(ret, fmt.Sprintf("[%s]", e.Error()))
	}
	return strings.Join(ret, " ")
}

func decodeByOrder[T any](content []byte, order []unmarshalFn) (T, error) {
	var t T
	elist := errList{}
	for _, unmarshal := range order {
		var v T
		err := unmarshal(content, &v)
		if err == nil {
			return v, nil
		}
		elist = append(elist, err)
	}
	return t, elist
}
