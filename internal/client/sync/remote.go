package sync

import (
	"context"
	"io"
)

// ContainerInfo identifies a remote container.
type ContainerInfo struct {
	ID   string
	Name string
}

// RemoteDrive is the capability set the sync engine needs from the remote
// storage service. Any client implementing it is substitutable, including
// the in-memory fake used by tests.
type RemoteDrive interface {
	// ListContainers returns non-trashed containers exactly matching nameFilter.
	ListContainers(ctx context.Context, nameFilter string) ([]ContainerInfo, error)

	// CreateContainer creates a container and returns its identifier.
	CreateContainer(ctx context.Context, name string) (string, error)

	// CreateObject uploads a new object into a container and returns its
	// freshly assigned identifier. Content is streamed.
	CreateObject(ctx context.Context, name, containerID string, content io.Reader) (string, error)

	// UpdateObjectContent replaces the content of an existing object.
	UpdateObjectContent(ctx context.Context, objectID string, content io.Reader) error

	// DeleteObject removes an object. May fail with a RemoteError carrying
	// a status code distinct from generic failures.
	DeleteObject(ctx context.Context, objectID string) error
}

// RemoteError is a structured error from the remote service, carrying a
// status code and message beyond a generic failure.
type RemoteError interface {
	error
	ErrorCode() string
	ErrorMessage() string
}
