package mirrorsdk

import (
	"errors"
	"fmt"

	"github.com/imroc/req/v3"
)

var (
	// sdk common
	ErrNoServerURL      = errors.New("sdk: server url missing")
	ErrInvalidServerURL = errors.New("sdk: server url invalid")
)

const (
	// Generic request/server errors
	CodeInvalidRequest = "E_INVALID_REQUEST" // bad or invalid request
	CodeRateLimited    = "E_RATE_LIMITED"    // rate limit exceeded
	CodeInternalError  = "E_INTERNAL_ERROR"  // internal server error
	CodeAccessDenied   = "E_ACCESS_DENIED"   // access denied
	CodeUnknownError   = "E_UNKNOWN_ERR"     // unknown error

	// Container errors
	CodeContainerNotFound     = "E_CONTAINER_NOT_FOUND"     // the specified container could not be found.
	CodeContainerListFailed   = "E_CONTAINER_LIST_FAILED"   // a failure during the operation to list containers.
	CodeContainerCreateFailed = "E_CONTAINER_CREATE_FAILED" // a failure during the operation to create a container.

	// Object errors
	CodeObjectNotFound     = "E_OBJECT_NOT_FOUND"     // the specified object could not be found.
	CodeObjectPutFailed    = "E_OBJECT_PUT_FAILED"    // a failure during the operation to create/update an object.
	CodeObjectDeleteFailed = "E_OBJECT_DELETE_FAILED" // a failure during the operation to delete an object.
)

type SDKError interface {
	error
	ErrorCode() string
	ErrorMessage() string
}

// BaseError provides common error functionality
type BaseError struct {
	Code    string `json:"code"`
	Message string `json:"error"`
}

func (e *BaseError) ErrorCode() string    { return e.Code }
func (e *BaseError) ErrorMessage() string { return e.Message }

// APIError represents MirrorBox API errors
type APIError struct {
	BaseError
}

func NewAPIError(code, message string) *APIError {
	return &APIError{
		BaseError: BaseError{
			Code:    code,
			Message: message,
		},
	}
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error: %s - %s", e.Code, e.Message)
}

var _ SDKError = (*APIError)(nil)

// handleAPIError is a helper function that handles the common error pattern
func handleAPIError(resp *req.Response, requestErr error, operation string) error {
	if requestErr != nil {
		return fmt.Errorf("http request error: %s %w", operation, requestErr)
	}

	// got a response, but api returned an error
	if resp.IsErrorState() {
		if err, ok := resp.ErrorResult().(*APIError); ok {
			return fmt.Errorf("%s %w", operation, err)
		}

		return fmt.Errorf("api error: %s %s", operation, resp.Dump())
	}

	return nil
}
