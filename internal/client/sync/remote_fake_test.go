package sync

import (
	"context"
	"fmt"
	"io"
	gosync "sync"

	"github.com/google/uuid"
)

// fakeRemoteError satisfies RemoteError for structured-failure tests.
type fakeRemoteError struct {
	code    string
	message string
}

func (e *fakeRemoteError) Error() string        { return fmt.Sprintf("%s - %s", e.code, e.message) }
func (e *fakeRemoteError) ErrorCode() string    { return e.code }
func (e *fakeRemoteError) ErrorMessage() string { return e.message }

// fakeDrive is an in-memory RemoteDrive that records every call in order.
type fakeDrive struct {
	mu         gosync.Mutex
	containers map[string]string // name -> id
	objects    map[string][]byte // id -> content
	calls      []string

	listErr            error
	createContainerErr error
	createErr          error
	updateErr          error
	deleteErr          error
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{
		containers: make(map[string]string),
		objects:    make(map[string][]byte),
	}
}

func (f *fakeDrive) ListContainers(ctx context.Context, nameFilter string) ([]ContainerInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "list_containers")

	if f.listErr != nil {
		return nil, f.listErr
	}

	var out []ContainerInfo
	if id, ok := f.containers[nameFilter]; ok {
		out = append(out, ContainerInfo{ID: id, Name: nameFilter})
	}
	return out, nil
}

func (f *fakeDrive) CreateContainer(ctx context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create_container")

	if f.createContainerErr != nil {
		return "", f.createContainerErr
	}

	id := uuid.NewString()
	f.containers[name] = id
	return id, nil
}

func (f *fakeDrive) CreateObject(ctx context.Context, name, containerID string, content io.Reader) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "create_object")

	if f.createErr != nil {
		return "", f.createErr
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	f.objects[id] = data
	return id, nil
}

func (f *fakeDrive) UpdateObjectContent(ctx context.Context, objectID string, content io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "update_object")

	if f.updateErr != nil {
		return f.updateErr
	}

	if _, ok := f.objects[objectID]; !ok {
		return &fakeRemoteError{code: "E_OBJECT_NOT_FOUND", message: "no such object"}
	}

	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}

	f.objects[objectID] = data
	return nil
}

func (f *fakeDrive) DeleteObject(ctx context.Context, objectID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, "delete_object")

	if f.deleteErr != nil {
		return f.deleteErr
	}

	if _, ok := f.objects[objectID]; !ok {
		return &fakeRemoteError{code: "E_OBJECT_NOT_FOUND", message: "no such object"}
	}

	delete(f.objects, objectID)
	return nil
}

// callCount returns how many times an operation was invoked.
func (f *fakeDrive) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()

	n := 0
	for _, c := range f.calls {
		if c == op {
			n++
		}
	}
	return n
}

// objectCalls returns the ordered object-level calls, ignoring container ops.
func (f *fakeDrive) objectCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []string
	for _, c := range f.calls {
		switch c {
		case "create_object", "update_object", "delete_object":
			out = append(out, c)
		}
	}
	return out
}

var _ RemoteDrive = (*fakeDrive)(nil)

// fakeProbe reports a fixed reachability answer.
type fakeProbe struct {
	reachable bool
}

func (p *fakeProbe) IsReachable(ctx context.Context) bool { return p.reachable }
