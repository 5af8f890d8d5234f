package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strconv"
)

// captureReader tees a request body into a bounded buffer while the inner
// handler reads it. When the running total exceeds the ceiling the partial
// buffer is discarded and capture stops; the handler keeps reading the
// stream unaffected.
type captureReader struct {
	rc        io.ReadCloser
	buf       bytes.Buffer
	max       int64
	capturing bool
}

func newCaptureReader(rc io.ReadCloser, max int64, capturing bool) *captureReader {
	return &captureReader{rc: rc, max: max, capturing: capturing}
}

func (cr *captureReader) Read(p []byte) (int, error) {
	n, err := cr.rc.Read(p)
	if n > 0 && cr.capturing {
		if int64(cr.buf.Len()+n) <= cr.max {
			cr.buf.Write(p[:n])
		} else {
			cr.capturing = false
			cr.buf.Reset()
		}
	}
	return n, err
}

func (cr *captureReader) Close() error {
	return cr.rc.Close()
}

// body returns the captured bytes, or nil when capture was skipped or
// abandoned.
func (cr *captureReader) body() []byte {
	if !cr.capturing {
		return nil
	}
	return cr.buf.Bytes()
}

// captureWriter wraps http.ResponseWriter to record the status code and a
// bounded copy of the response body. It delegates Flush and Unwrap so
// streaming and http.ResponseController keep working on the original writer.
type captureWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	buf         bytes.Buffer
	max         int64
	capturing   bool
}

func newCaptureWriter(w http.ResponseWriter, max int64) *captureWriter {
	return &captureWriter{ResponseWriter: w, status: http.StatusOK, max: max, capturing: true}
}

func (cw *captureWriter) WriteHeader(code int) {
	if !cw.wroteHeader {
		cw.status = code
		cw.wroteHeader = true
		// A declared length above the ceiling means the body is never worth
		// buffering.
		if cl := cw.Header().Get("Content-Length"); cl != "" {
			if n, err := strconv.ParseInt(cl, 10, 64); err == nil && n > cw.max {
				cw.capturing = false
			}
		}
	}
	cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
	if !cw.wroteHeader {
		cw.WriteHeader(http.StatusOK)
	}
	if cw.capturing {
		if int64(cw.buf.Len()+len(b)) <= cw.max {
			cw.buf.Write(b)
		} else {
			cw.capturing = false
			cw.buf.Reset()
		}
	}
	return cw.ResponseWriter.Write(b)
}

// Flush implements http.Flusher for streaming responses.
func (cw *captureWriter) Flush() {
	if f, ok := cw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap returns the underlying ResponseWriter so http.ResponseController
// can discover optional interfaces on the original writer.
func (cw *captureWriter) Unwrap() http.ResponseWriter {
	return cw.ResponseWriter
}

// body returns the captured bytes, or nil when capture was abandoned.
func (cw *captureWriter) body() []byte {
	if !cw.capturing {
		return nil
	}
	return cw.buf.Bytes()
}
