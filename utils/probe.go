package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

var probeClient = resty.New().SetTimeout(5 * time.Second)

// ProbeURL checks whether a media url answers a HEAD request. Advisory only;
// callers log and carry on when it fails.
func ProbeURL(url string) bool {
	resp, err := probeClient.R().Head(url)
	if err != nil {
		return false
	}
	return resp.StatusCode() < http.StatusBadRequest
}
