package web

const (
	HeaderContentType = "Content-Type"
	MimeJSON          = "application/json"
)
