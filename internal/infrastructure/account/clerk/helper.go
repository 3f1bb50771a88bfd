package clerk

import (
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/fasthttp"
)

func isCircuitFailure(err error) bool {
	return crerr.Is(err, errClerkTransient)
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusTooManyRequests || status >= fasthttp.StatusInternalServerError
}

func truncate(value string, limit int) string {
	if limit <= 0 || len(value) <= limit {
		return value
	}
	return value[:limit] + "..."
}
