package launcher

import "errors"

// Fatal launcher failures. Each is reported once with a remediation
// hint and terminates the invocation with exit code 1. The backend's
// own nonzero exit codes are not errors of the launcher and are
// propagated verbatim instead.
var (
	ErrRuntimeNotFound    = errors.New("no compatible Python 3 runtime found")
	ErrProvisioningFailed = errors.New("environment provisioning failed")
	ErrEnvironmentMissing = errors.New("provisioned environment not found")
	ErrSpawn              = errors.New("failed to start backend process")
)
