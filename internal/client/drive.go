package client

import (
	"context"
	"io"

	"github.com/openmirror/mirrorbox/internal/client/sync"
	"github.com/openmirror/mirrorbox/internal/mirrorsdk"
)

// remoteDrive adapts the MirrorBox SDK to the capability set the sync
// engine consumes. Structured APIErrors pass through wrapped, so the engine
// can still pick out their status codes.
type remoteDrive struct {
	sdk *mirrorsdk.MirrorSDK
}

var _ sync.RemoteDrive = (*remoteDrive)(nil)

func (d *remoteDrive) ListContainers(ctx context.Context, nameFilter string) ([]sync.ContainerInfo, error) {
	resp, err := d.sdk.Containers.List(ctx, nameFilter)
	if err != nil {
		return nil, err
	}

	containers := make([]sync.ContainerInfo, 0, len(resp.Containers))
	for _, c := range resp.Containers {
		containers = append(containers, sync.ContainerInfo{ID: c.ID, Name: c.Name})
	}
	return containers, nil
}

func (d *remoteDrive) CreateContainer(ctx context.Context, name string) (string, error) {
	resp, err := d.sdk.Containers.Create(ctx, name)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (d *remoteDrive) CreateObject(ctx context.Context, name, containerID string, content io.Reader) (string, error) {
	resp, err := d.sdk.Objects.Create(ctx, name, containerID, content)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (d *remoteDrive) UpdateObjectContent(ctx context.Context, objectID string, content io.Reader) error {
	_, err := d.sdk.Objects.UpdateContent(ctx, objectID, content)
	return err
}

func (d *remoteDrive) DeleteObject(ctx context.Context, objectID string) error {
	_, err := d.sdk.Objects.Delete(ctx, objectID)
	return err
}
