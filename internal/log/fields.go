package log

// Common field names for structured logging
const (
	FieldComponent = "component"
	FieldError     = "error"
	FieldUserID    = "user_id"
	FieldAccount   = "account"
	FieldLabel     = "label"
	FieldAmount    = "amount"
	FieldCommand   = "command"
	FieldAction    = "action"
	FieldBackend   = "backend"
)

// Standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentRouter  = "router"
	ComponentStorage = "storage"
	ComponentEvents  = "events"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
)
