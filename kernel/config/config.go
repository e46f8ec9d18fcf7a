// Package config loads the address-layout configuration that
// kernel/addr otherwise hard-codes as spec defaults, and optionally
// watches the backing file for changes so a long-running demo harness
// can react to an edited layout.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"kernelsim/kernel/addr"
)

// fileLayout mirrors addr.Layout's constructor arguments for JSON
// (de)serialization, in the style of cmd/orizon-config's
// ProjectConfig: a plain struct with json tags, no magic.
type fileLayout struct {
	AddrBits     uint   `json:"addr_bits"`
	OffsetLen    uint   `json:"offset_len"`
	PageLen      uint   `json:"page_len"`
	SegmentLen   uint   `json:"segment_len"`
	NumFrames    uint32 `json:"num_frames"`
	MaxQueueSize int    `json:"max_queue_size"`
}

// Load reads a Layout from a JSON file at path.
func Load(path string) (*addr.Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	var fl fileLayout
	if err := json.Unmarshal(data, &fl); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	layout, err := addr.NewLayout(fl.AddrBits, fl.OffsetLen, fl.PageLen, fl.SegmentLen, fl.NumFrames, fl.MaxQueueSize)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return layout, nil
}

// Watch starts watching path for writes and invokes onChange with the
// freshly reloaded Layout whenever the file is rewritten. Reload
// errors are logged and onChange is not called, so a bad edit never
// tears down a running manager. The returned watcher must be closed
// by the caller when done; Watch does not block.
//
// Reloading never reshapes a Manager already under construction with
// a previous Layout — segment/page tables are sized off the Layout
// they were built with, so onChange is expected to gate a full
// restart rather than mutate live state in place.
func Watch(path string, onChange func(*addr.Layout)) (*fsnotify.Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: starting watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("config: watching %s: %w", dir, err)
	}

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != filepath.Clean(path) {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				layout, err := Load(path)
				if err != nil {
					slog.Warn("config reload failed, keeping previous layout", "path", path, "err", err)
					continue
				}
				onChange(layout)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("config watcher error", "err", err)
			}
		}
	}()

	return watcher, nil
}
