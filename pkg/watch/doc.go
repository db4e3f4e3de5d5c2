// Package watch re-runs work when CBML files change on disk.
//
// A Watcher wraps fsnotify, watches directories recursively and filters
// events by file suffix. Events arriving within the debounce interval are
// collected and delivered to the ChangeFunc as one sorted batch:
//
//	w, err := watch.New(&watch.Config{
//	    Paths:      []string{"configs"},
//	    Debounce:   100 * time.Millisecond,
//	    Extensions: []string{".cbml"},
//	}, logger)
//	err = w.Watch(ctx, func(ctx context.Context, changed []string) error {
//	    return recheck(ctx, changed)
//	})
//
// The ChangeFunc runs on a timer goroutine. Calls for one Watcher never
// overlap; events arriving during a slow call are delivered in the next batch.
package watch
