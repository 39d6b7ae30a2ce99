package constants

const (
	TaskStatusOpen   = "open"
	TaskStatusClosed = "closed"
)
