package mirrorsdk

import (
	"context"

	"github.com/imroc/req/v3"
)

const (
	v1Containers = "/api/v1/containers"
)

type ContainersAPI struct {
	client *req.Client
}

func newContainersAPI(client *req.Client) *ContainersAPI {
	return &ContainersAPI{
		client: client,
	}
}

// List returns non-trashed containers whose name exactly matches nameFilter.
// An empty filter returns all non-trashed containers.
func (c *ContainersAPI) List(ctx context.Context, nameFilter string) (apiResp *ListContainersResponse, err error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParam("name", nameFilter).
		SetQueryParam("trashed", "false").
		SetSuccessResult(&apiResp).
		Get(v1Containers)

	if err := handleAPIError(resp, err, "container list"); err != nil {
		return nil, err
	}

	return apiResp, nil
}

// Create creates a new container and returns its assigned identifier
func (c *ContainersAPI) Create(ctx context.Context, name string) (apiResp *CreateContainerResponse, err error) {
	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&CreateContainerRequest{Name: name}).
		SetSuccessResult(&apiResp).
		Post(v1Containers)

	if err := handleAPIError(resp, err, "container create"); err != nil {
		return nil, err
	}

	return apiResp, nil
}
