package mirrorsdk

import (
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/imroc/req/v3"
	"github.com/openmirror/mirrorbox/internal/utils"
	"github.com/openmirror/mirrorbox/internal/version"
)

const (
	HeaderMirrorVersion  = "X-Mirror-Version"
	HeaderMirrorDeviceId = "X-Mirror-Device-Id"
	HeaderRequestId      = "X-Request-Id"
)

var userAgent = fmt.Sprintf("MirrorBox/%s (%s; %s; %s)", version.Version, version.Revision, runtime.GOOS, runtime.GOARCH)

// newHTTPClient builds a req client with the common values every API call needs
func newHTTPClient() *req.Client {
	return req.C().
		SetCommonRetryCount(3).
		SetCommonRetryFixedInterval(1*time.Second).
		SetUserAgent(userAgent).
		SetCommonHeader(HeaderMirrorVersion, version.Version).
		SetCommonHeader(HeaderMirrorDeviceId, utils.HWID).
		SetCommonErrorResult(&APIError{}).
		SetJsonMarshal(jsonMarshal).
		SetJsonUnmarshal(jsonUnmarshal).
		OnBeforeRequest(func(c *req.Client, r *req.Request) error {
			r.SetHeader(HeaderRequestId, uuid.NewString())
			return nil
		})
}

// ContainerInfo describes a remote container as returned by the API
type ContainerInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ListContainersResponse struct {
	Containers []ContainerInfo `json:"containers"`
}

type CreateContainerRequest struct {
	Name string `json:"name"`
}

type CreateContainerResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CreateObjectResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Size int64  `json:"size"`
}

type UpdateObjectResponse struct {
	ID   string `json:"id"`
	Size int64  `json:"size"`
}

type DeleteObjectResponse struct {
	ID string `json:"id"`
}
