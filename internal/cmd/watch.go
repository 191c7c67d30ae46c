package cmd

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/Alia5/cs2ts/internal/codegen/common"
	"github.com/Alia5/cs2ts/internal/codegen/generator"
	"github.com/Alia5/cs2ts/internal/log"
)

// skipDirs are build and tooling directories never worth watching.
var skipDirs = map[string]bool{
	"bin":          true,
	"obj":          true,
	".git":         true,
	".vs":          true,
	"node_modules": true,
}

type Watch struct {
	Dirs     []string      `arg:"" type:"existingdir" help:"Directories to watch recursively for .cs changes"`
	OutDir   string        `help:"Write .ts files into this directory instead of next to each source" type:"path" env:"CS2TS_OUT_DIR"`
	Debounce time.Duration `help:"Quiet period before a changed file is regenerated" default:"300ms"`

	Codegen `embed:""`

	// ready is called once the initial pass is done and events are flowing.
	ready func()
}

// Run is called by Kong when the watch command is executed.
func (w *Watch) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return w.Start(ctx, logger, rawLogger)
}

// Start converts every existing source under Dirs, then regenerates on
// change until ctx is cancelled. Conversion errors are logged, not returned.
func (w *Watch) Start(ctx context.Context, logger *slog.Logger, rawLogger log.RawLogger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	s := &watchSession{
		opts:      w,
		gen:       w.newGenerator(logger),
		watcher:   watcher,
		logger:    logger,
		rawLogger: rawLogger,
		debounce:  w.Debounce,
		timers:    map[string]*time.Timer{},
		seen:      map[string]string{},
		due:       make(chan string),
		done:      make(chan struct{}),
	}
	if s.debounce <= 0 {
		s.debounce = 300 * time.Millisecond
	}

	for _, dir := range w.Dirs {
		sources, err := s.addTree(dir)
		if err != nil {
			return err
		}
		for _, src := range sources {
			s.regenerate(src)
		}
	}

	logger.Info("Watching for C# changes", "dirs", strings.Join(w.Dirs, ","), "debounce", s.debounce)
	if w.ready != nil {
		w.ready()
	}
	return s.loop(ctx)
}

type watchSession struct {
	opts      *Watch
	gen       *generator.Generator
	watcher   *fsnotify.Watcher
	logger    *slog.Logger
	rawLogger log.RawLogger
	debounce  time.Duration

	// owned by the loop goroutine
	timers map[string]*time.Timer
	seen   map[string]string

	due  chan string
	done chan struct{}
}

func (s *watchSession) loop(ctx context.Context) error {
	defer close(s.done)
	for {
		select {
		case <-ctx.Done():
			for _, t := range s.timers {
				t.Stop()
			}
			s.logger.Info("Stopping watcher")
			return nil
		case ev, ok := <-s.watcher.Events:
			if !ok {
				return nil
			}
			s.handle(ev)
		case err, ok := <-s.watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Watcher error", "error", err)
		case path := <-s.due:
			delete(s.timers, path)
			s.regenerate(path)
		}
	}
}

func (s *watchSession) handle(ev fsnotify.Event) {
	if ev.Has(fsnotify.Create) {
		if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
			sources, err := s.addTree(ev.Name)
			if err != nil {
				s.logger.Warn("Cannot watch new directory", "dir", ev.Name, "error", err)
				return
			}
			for _, src := range sources {
				s.schedule(src)
			}
			return
		}
	}
	if !isSource(ev.Name) {
		return
	}

	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		if t, ok := s.timers[ev.Name]; ok {
			t.Stop()
			delete(s.timers, ev.Name)
		}
		delete(s.seen, ev.Name)
		s.logger.Debug("Source removed", "file", ev.Name)
	case ev.Has(fsnotify.Write), ev.Has(fsnotify.Create):
		s.logger.Log(context.Background(), log.LevelTrace, "Source event", "file", ev.Name, "op", ev.Op.String())
		s.schedule(ev.Name)
	}
}

// schedule (re)arms the debounce timer for path.
func (s *watchSession) schedule(path string) {
	if t, ok := s.timers[path]; ok {
		t.Reset(s.debounce)
		return
	}
	s.timers[path] = time.AfterFunc(s.debounce, func() {
		select {
		case s.due <- path:
		case <-s.done:
		}
	})
}

// regenerate converts path unless its content is unchanged since the last run.
func (s *watchSession) regenerate(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		s.logger.Warn("Cannot read source", "file", path, "error", err)
		return
	}
	fp := common.Fingerprint(data)
	if s.seen[path] == fp {
		s.logger.Debug("Source unchanged, skipping", "file", path)
		return
	}
	s.seen[path] = fp

	out, err := s.opts.convertSource(s.gen, s.rawLogger, path, data)
	if err != nil {
		s.logger.Error("Conversion failed", "file", path, "error", err)
		return
	}
	dest := outputPath(path, s.rootFor(path), s.opts.OutDir)
	if err := writeFile(dest, s.opts.render(path, out)); err != nil {
		s.logger.Error("Cannot write output", "file", path, "error", err)
		return
	}
	s.logger.Info("Regenerated", "file", path, "output", dest)
}

// rootFor returns the watched directory containing path, preferring the
// deepest one when watched directories nest.
func (s *watchSession) rootFor(path string) string {
	root := ""
	for _, dir := range s.opts.Dirs {
		if _, ok := within(dir, path); ok && len(dir) > len(root) {
			root = dir
		}
	}
	return root
}

// addTree watches dir and its subdirectories and returns the sources found.
func (s *watchSession) addTree(dir string) ([]string, error) {
	var sources []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && skipDirs[d.Name()] {
				return filepath.SkipDir
			}
			if err := s.watcher.Add(path); err != nil {
				return fmt.Errorf("failed to watch %s: %w", path, err)
			}
			return nil
		}
		if isSource(path) {
			sources = append(sources, path)
		}
		return nil
	})
	return sources, err
}

func isSource(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".cs")
}
