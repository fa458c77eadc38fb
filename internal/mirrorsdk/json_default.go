//go:build !sonic

package mirrorsdk

import (
	"github.com/goccy/go-json"
)

// for imroc/req
var jsonMarshal = json.Marshal
var jsonUnmarshal = json.Unmarshal
