package sync

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
)

// SyncOps are the idempotent remote actions built on the mapping store, the
// connectivity probe and the remote service. Failures are isolated to the
// single file they concern and never propagate.
type SyncOps struct {
	remote  RemoteDrive
	mapping *MappingStore
	probe   Prober
}

func NewSyncOps(remote RemoteDrive, mapping *MappingStore, probe Prober) *SyncOps {
	return &SyncOps{
		remote:  remote,
		mapping: mapping,
		probe:   probe,
	}
}

// UploadOrUpdate pushes a local file to the remote container. A name already
// in the mapping gets a content update against its existing identity; an
// unknown name gets a create, and the new identity is recorded. Calling it
// twice for the same file yields one create then one update, never two
// creates.
func (s *SyncOps) UploadOrUpdate(ctx context.Context, containerID, localPath string) *SyncResult {
	name := filepath.Base(localPath)
	res := &SyncResult{Op: OpUpload, Name: name}

	if !s.probe.IsReachable(ctx) {
		res.Status = StatusSkippedNoNetwork
		return res
	}

	file, err := os.Open(localPath)
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("open %s: %w", localPath, err)
		return res
	}
	defer file.Close()

	var size int64
	if info, err := file.Stat(); err == nil {
		size = info.Size()
	}

	if id, ok := s.mapping.Get(name); ok {
		if err := s.remote.UpdateObjectContent(ctx, id, file); err != nil {
			return s.fail(res, err)
		}
		res.Status = StatusUpdated
		res.ObjectID = id
		slog.Info("updated on remote", "name", name, "id", id, "size", humanize.Bytes(uint64(size)))
		return res
	}

	id, err := s.remote.CreateObject(ctx, name, containerID, file)
	if err != nil {
		return s.fail(res, err)
	}

	// record identity only after a successful create
	s.mapping.Put(name, id)
	res.Status = StatusUploaded
	res.ObjectID = id
	slog.Info("uploaded to remote", "name", name, "id", id, "size", humanize.Bytes(uint64(size)))
	return res
}

// Delete removes the remote object tracked for a name and drops its mapping
// record. An untracked name is a no-op, so deleting twice is safe. On
// failure the mapping is left untouched for a later retry.
func (s *SyncOps) Delete(ctx context.Context, name string) *SyncResult {
	res := &SyncResult{Op: OpDelete, Name: name}

	id, ok := s.mapping.Get(name)
	if !ok {
		res.Status = StatusNotTracked
		slog.Warn("not tracked in remote mapping", "name", name)
		return res
	}

	if err := s.remote.DeleteObject(ctx, id); err != nil {
		return s.fail(res, err)
	}

	s.mapping.Remove(name)
	res.Status = StatusDeleted
	res.ObjectID = id
	slog.Info("deleted from remote", "name", name, "id", id)
	return res
}

// fail marks a result failed, distinguishing structured remote-protocol
// errors from generic ones in the log.
func (s *SyncOps) fail(res *SyncResult, err error) *SyncResult {
	res.Status = StatusFailed
	res.Err = err

	var remoteErr RemoteError
	if errors.As(err, &remoteErr) {
		slog.Error("remote protocol error",
			"op", res.Op,
			"name", res.Name,
			"code", remoteErr.ErrorCode(),
			"detail", remoteErr.ErrorMessage(),
		)
	} else {
		slog.Error("remote operation failed", "op", res.Op, "name", res.Name, "error", err)
	}
	return res
}
