// Package httputil provides the JSON plumbing shared by the HTTP API and the
// retry helper used when connecting to backing services.
//
// # Responses
//
// [WriteJSON] and [WriteError] write JSON bodies. [WriteError] picks the
// status from the error code carried by a [errors.Error]:
//
//   - INVALID_*: 400 Bad Request
//   - NOT_FOUND, FILE_NOT_FOUND: 404 Not Found
//   - anything else: 500 Internal Server Error
//
// Internal errors are reported without their message.
//
// # Requests
//
// [DecodeJSON] reads a size-limited JSON body and reports malformed input as
// INVALID_INPUT.
//
// # Retry
//
// [Retry] runs an operation with exponential backoff, retrying only errors
// wrapped in [RetryableError]:
//
//	err := httputil.Retry(ctx, 5, 200*time.Millisecond, func() error {
//	    c, err := cache.NewRedisCache(ctx, addr)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    store = c
//	    return nil
//	})
package httputil
