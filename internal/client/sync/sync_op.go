package sync

import "log/slog"

// SyncOp is the kind of remote operation an event implied.
type SyncOp string

const (
	OpUpload SyncOp = "upload"
	OpDelete SyncOp = "delete"
)

// SyncStatus is the explicit outcome of a single sync operation. Callers and
// tests assert on these instead of side-channel logging.
type SyncStatus string

const (
	// StatusUploaded means a new remote object was created.
	StatusUploaded SyncStatus = "uploaded"
	// StatusUpdated means an existing remote object's content was replaced.
	StatusUpdated SyncStatus = "updated"
	// StatusDeleted means the remote object was removed.
	StatusDeleted SyncStatus = "deleted"
	// StatusSkippedNoNetwork means no remote call was attempted.
	StatusSkippedNoNetwork SyncStatus = "skipped_no_network"
	// StatusNotTracked means the name has no remote identity; nothing to do.
	StatusNotTracked SyncStatus = "not_tracked"
	// StatusFailed means the operation was attempted and failed; local state
	// is unchanged so a retry can be attempted later.
	StatusFailed SyncStatus = "failed"
)

// SyncResult reports the outcome of one operation for one file.
type SyncResult struct {
	Op       SyncOp
	Name     string
	Status   SyncStatus
	ObjectID string
	Err      error
}

func (r *SyncResult) Failed() bool {
	return r.Status == StatusFailed
}

// LogValue keys every outcome by file name and operation kind.
func (r *SyncResult) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("op", string(r.Op)),
		slog.String("name", r.Name),
		slog.String("status", string(r.Status)),
	}
	if r.ObjectID != "" {
		attrs = append(attrs, slog.String("id", r.ObjectID))
	}
	if r.Err != nil {
		attrs = append(attrs, slog.Any("error", r.Err))
	}
	return slog.GroupValue(attrs...)
}
