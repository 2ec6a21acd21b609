package errs

import "errors"

// Sentinel errors shared across usecase layers. Handlers map these onto
// HTTP statuses; infra marks its failures with the matching sentinel.
var (
	// Posting / microtask errors
	ErrPostingNotFound   = errors.New("posting not found")
	ErrMicrotaskNotFound = errors.New("microtask not found")
	ErrNotPostingOwner   = errors.New("caller is not the posting owner")
	ErrNotAssignee       = errors.New("caller is not the task assignee")
	ErrTaskUnassigned    = errors.New("task has no assignee")

	// Application errors
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already submitted")

	// Notification errors
	ErrNotificationNotFound = errors.New("notification not found")

	// Validation errors
	ErrDomainValidation = errors.New("domain validation error")

	// Operation errors
	ErrDatabaseOperationFailed = errors.New("database operation failed")
	ErrVersionConflict         = errors.New("aggregate version conflict")
)
