package mirrorsdk

import (
	"net/url"

	"github.com/imroc/req/v3"
)

// MirrorSDK is the main client for the MirrorBox storage API
type MirrorSDK struct {
	client     *req.Client
	baseURL    string
	Containers *ContainersAPI
	Objects    *ObjectsAPI
}

// New creates a new MirrorSDK client
func New(baseURL string) (*MirrorSDK, error) {
	if baseURL == "" {
		return nil, ErrNoServerURL
	}

	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, ErrInvalidServerURL
	}

	client := newHTTPClient().SetBaseURL(baseURL)

	return &MirrorSDK{
		client:     client,
		baseURL:    baseURL,
		Containers: newContainersAPI(client),
		Objects:    newObjectsAPI(client),
	}, nil
}

// SetToken sets the bearer token used for all API calls
func (s *MirrorSDK) SetToken(token string) {
	s.client.SetCommonBearerAuthToken(token)
}

// Close terminates idle connections held by the client
func (s *MirrorSDK) Close() {
	s.client.GetClient().CloseIdleConnections()
}
