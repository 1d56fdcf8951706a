package client

import "errors"

// ErrUploadsFailed marks a run that finished but left at least one image
// behind. The report is still written before this is returned; callers map it
// to a non-zero exit code rather than a crash.
var ErrUploadsFailed = errors.New("some uploads failed")
