package constant

const (
	DefaultPageLimit = 10
)

const (
	EmptyString = ""
)

// Message roles as stored in session history and message logs.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleBot       = "bot"
	RoleSystem    = "system"
)

// User roles carried on the User-Role request header.
const (
	UserRoleTourist = "tourist"
	UserRoleGuide   = "guide"
)

const (
	HeaderUserRole  = "User-Role"
	HeaderRequestID = "X-Request-ID"
)

// Maximum accepted length of a single chat input message.
const MaxInputMessageLength = 5000
