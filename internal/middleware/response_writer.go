package middleware

import "net/http"

// StatusResponseWriter records the status code for the request logger.
type StatusResponseWriter struct {
	http.ResponseWriter
	status        int
	headerWritten bool
}

func NewStatusResponseWriter(w http.ResponseWriter) *StatusResponseWriter {
	return &StatusResponseWriter{
		ResponseWriter: w,
		status:         http.StatusOK,
	}
}

func (w *StatusResponseWriter) WriteHeader(statusCode int) {
	if w.headerWritten {
		return
	}
	w.ResponseWriter.WriteHeader(statusCode)
	w.status = statusCode
	w.headerWritten = true
}

func (w *StatusResponseWriter) Write(b []byte) (int, error) {
	if !w.headerWritten {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

func (w *StatusResponseWriter) Status() int {
	return w.status
}
