package fetch

import (
	"net/http"
	"strconv"
	"time"
)

// retryAfterHeader parses a Retry-After header, which may carry either a
// delay in seconds or an HTTP date.
func retryAfterHeader(resp *http.Response) (time.Duration, map[string]any) {
	if resp == nil || resp.Header == nil {
		return 0, nil
	}

	retry := resp.Header.Get("Retry-After")
	if retry == "" {
		return 0, nil
	}

	extra := map[string]any{"retry_after": retry}

	if seconds, err := strconv.ParseFloat(retry, 64); err == nil {
		return time.Duration(seconds * float64(time.Second)), extra
	}
	if parsed, err := http.ParseTime(retry); err == nil {
		return time.Until(parsed), extra
	}

	return 0, extra
}
