package constants

// Session and request context keys
const (
	SessionCookieName = "task_session"

	// ContextKeyUserID holds the authenticated user's internal id.
	ContextKeyUserID = "user_id"
	// ContextKeyUserPublicID holds the authenticated user's public id.
	// It is also the value stored in the session.
	ContextKeyUserPublicID = "user_public_id"
)

// Field limits
const (
	MaxCaptionLength     = 100
	MaxDescriptionLength = 1000
)

// DateLayout is the wire format of task due dates.
const DateLayout = "2006-01-02"

// MaxAISuggestedSubtasks caps the number of subtasks accepted from the AI service.
const MaxAISuggestedSubtasks = 10
