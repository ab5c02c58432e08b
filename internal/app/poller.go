package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/medlux/wardgrid/internal/dataset"
)

// backgroundTask runs until its context is cancelled.
type backgroundTask func(ctx context.Context) error

// startRefreshers builds the tasks that keep the store current: a file
// watcher for local sources and a poller for everything else. A zero
// interval disables polling. When the watcher cannot start, local sources
// fall back to polling.
func startRefreshers(ws *Workspace, interval time.Duration, logger *zap.Logger) []backgroundTask {
	var tasks []backgroundTask
	local, remote := splitSources(ws.Sources)

	if len(local) > 0 {
		watcher, err := dataset.NewWatcher(ws.Store, local, logger)
		if err != nil {
			logger.Warn("file watching unavailable, polling instead", zap.Error(err))
			remote = append(remote, local...)
		} else {
			tasks = append(tasks, watcher.Run)
		}
	}

	if interval > 0 && len(remote) > 0 {
		poller := &dataset.Poller{
			Store:    ws.Store,
			Sources:  remote,
			Interval: interval,
			Logger:   logger,
		}
		tasks = append(tasks, poller.Run)
	}
	return tasks
}

// splitSources separates sources backed by local files from the rest.
func splitSources(sources []dataset.Source) (local, remote []dataset.Source) {
	for _, src := range sources {
		if _, ok := src.(dataset.FileBacked); ok {
			local = append(local, src)
		} else {
			remote = append(remote, src)
		}
	}
	return local, remote
}
