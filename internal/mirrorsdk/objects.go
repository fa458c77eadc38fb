package mirrorsdk

import (
	"context"
	"io"

	"github.com/imroc/req/v3"
)

const (
	v1Objects       = "/api/v1/objects"
	v1ObjectContent = "/api/v1/objects/{id}/content"
	v1Object        = "/api/v1/objects/{id}"
)

type ObjectsAPI struct {
	client *req.Client
}

func newObjectsAPI(client *req.Client) *ObjectsAPI {
	return &ObjectsAPI{
		client: client,
	}
}

// Create uploads a new object into a container. Content is streamed from the
// reader; retries are disabled because the body is not replayable.
func (o *ObjectsAPI) Create(ctx context.Context, name, containerID string, content io.Reader) (apiResp *CreateObjectResponse, err error) {
	resp, err := o.client.R().
		SetContext(ctx).
		SetRetryCount(0).
		SetQueryParam("name", name).
		SetQueryParam("container_id", containerID).
		SetContentType("application/octet-stream").
		SetBody(content).
		SetSuccessResult(&apiResp).
		Post(v1Objects)

	if err := handleAPIError(resp, err, "object create"); err != nil {
		return nil, err
	}

	return apiResp, nil
}

// UpdateContent replaces the content of an existing object, keeping its identity
func (o *ObjectsAPI) UpdateContent(ctx context.Context, objectID string, content io.Reader) (apiResp *UpdateObjectResponse, err error) {
	resp, err := o.client.R().
		SetContext(ctx).
		SetRetryCount(0).
		SetPathParam("id", objectID).
		SetContentType("application/octet-stream").
		SetBody(content).
		SetSuccessResult(&apiResp).
		Put(v1ObjectContent)

	if err := handleAPIError(resp, err, "object update"); err != nil {
		return nil, err
	}

	return apiResp, nil
}

// Delete removes an object
func (o *ObjectsAPI) Delete(ctx context.Context, objectID string) (apiResp *DeleteObjectResponse, err error) {
	resp, err := o.client.R().
		SetContext(ctx).
		SetPathParam("id", objectID).
		SetSuccessResult(&apiResp).
		Delete(v1Object)

	if err := handleAPIError(resp, err, "object delete"); err != nil {
		return nil, err
	}

	return apiResp, nil
}
