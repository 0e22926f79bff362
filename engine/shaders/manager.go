// Package shaders loads shader sources from disk and reloads them when
// the files change, so pipelines can be relinked without restarting.
package shaders

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/spaghettifunk/ignis/engine/containers"
	"github.com/spaghettifunk/ignis/engine/core"
	"github.com/spaghettifunk/ignis/engine/renderer/metadata"
)

// Pending reloads beyond this are dropped until the queue drains.
const reloadQueueSize = 64

// Source is one shader file tracked by the manager.
type Source struct {
	// File name without directory, used as the lookup key.
	Name  string
	Stage metadata.ShaderStage
	Path  string
	Data  []byte
}

// Manager tracks the shader files of one directory. Lookups and the
// reload queue are safe for concurrent use.
type Manager struct {
	mu      sync.Mutex
	dir     string
	sources map[string]*Source
	pending *containers.RingQueue[string]
	watcher *fsnotify.Watcher
	done    chan struct{}
}

// NewManager loads every shader file under dir and starts watching the
// directory for changes.
func NewManager(dir string) (*Manager, error) {
	m := &Manager{
		dir:     dir,
		sources: map[string]*Source{},
		pending: containers.NewRingQueue[string](reloadQueueSize),
		done:    make(chan struct{}),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read shader directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := m.load(filepath.Join(dir, entry.Name())); err != nil {
			return nil, err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	m.watcher = watcher

	go m.watch()
	core.LogInfo("tracking %d shaders in %s", len(m.sources), dir)
	return m, nil
}

// Source returns a snapshot of a tracked shader by file name.
func (m *Manager) Source(name string) (Source, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	src, ok := m.sources[name]
	if !ok {
		return Source{}, false
	}
	out := *src
	out.Data = append([]byte(nil), src.Data...)
	return out, true
}

// Names lists the tracked shader file names.
func (m *Manager) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.sources))
	for name := range m.sources {
		names = append(names, name)
	}
	return names
}

// NextReload pops the oldest pending reload, returning false when none is
// queued. Callers poll this once per frame and relink the pipelines using
// the returned shader.
func (m *Manager) NextReload() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name, err := m.pending.Dequeue()
	if err != nil {
		return "", false
	}
	return name, true
}

// Close stops the watcher.
func (m *Manager) Close() error {
	close(m.done)
	return m.watcher.Close()
}

func (m *Manager) load(path string) error {
	stage, ok := stageForFile(path)
	if !ok {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read shader %s: %w", path, err)
	}

	name := filepath.Base(path)
	m.mu.Lock()
	m.sources[name] = &Source{Name: name, Stage: stage, Path: path, Data: data}
	m.mu.Unlock()
	return nil
}

func (m *Manager) watch() {
	for {
		select {
		case <-m.done:
			return
		case event, ok := <-m.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if _, tracked := stageForFile(event.Name); !tracked {
				continue
			}
			if err := m.load(event.Name); err != nil {
				core.LogError("reload shader: %v", err)
				continue
			}
			name := filepath.Base(event.Name)
			m.mu.Lock()
			if err := m.pending.Enqueue(name); err != nil {
				core.LogWarn("reload queue full, dropping %s", name)
			}
			m.mu.Unlock()
			core.LogDebug("shader %s changed", name)
		case err, ok := <-m.watcher.Errors:
			if !ok {
				return
			}
			core.LogError("shader watcher: %v", err)
		}
	}
}

// stageForFile infers the stage from the file extension.
func stageForFile(path string) (metadata.ShaderStage, bool) {
	switch filepath.Ext(path) {
	case ".vert":
		return metadata.ShaderStageVertex, true
	case ".frag":
		return metadata.ShaderStageFragment, true
	case ".comp":
		return metadata.ShaderStageCompute, true
	case ".mesh":
		return metadata.ShaderStageMesh, true
	case ".task":
		return metadata.ShaderStageTask, true
	}
	return 0, false
}
