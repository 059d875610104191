/*
Package filesystem provides the directory and file access used by the gallery
indexer: listing, stat and reads that retry on NFS stale file handles and give
up after a bounded timeout.

# Retry Behavior

Only ESTALE (stale file handle) errors trigger retries, with exponential
backoff capped at MaxBackoff. All other errors fail immediately. Backoff sleeps
stop early when the context is cancelled.

# Timeouts

Every call runs under RetryConfig.Timeout. A call that does not return in time
is abandoned and reported as ErrTimeout; the blocked syscall finishes in the
background and its result is discarded. Callers treat ErrTimeout like an
unreadable directory.

	cfg := filesystem.DefaultRetryConfig()
	entries, err := filesystem.ReadDirWithRetry(ctx, dir, cfg)
	if errors.Is(err, filesystem.ErrTimeout) {
	    // degrade to an empty listing
	}

# File Times

StatTimes returns birth, modification and change times. On Linux the birth
time comes from statx(2) when the filesystem records it; elsewhere only the
modification time is reported.

# Metrics

The package does not import the metrics package. Install an Observer with
SetObserver at startup; without one, metric recording is skipped.
*/
package filesystem
