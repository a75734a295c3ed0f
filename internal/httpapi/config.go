package httpapi

import "time"

// maxBodyBytes controls the maximum allowed request body size for JSON endpoints.
var maxBodyBytes int64 = 1 << 20

// SetMaxBodyBytes allows configuring the maximum request body size.
func SetMaxBodyBytes(n int64) {
	if n <= 0 {
		maxBodyBytes = 1 << 20
		return
	}
	maxBodyBytes = n
}

// readyTimeout bounds the backend probe behind /readyz.
var readyTimeout = 3 * time.Second

// SetReadyTimeout sets the /readyz probe bound (non-positive restores the default).
func SetReadyTimeout(d time.Duration) {
	if d <= 0 {
		d = 3 * time.Second
	}
	readyTimeout = d
}

// CORS configuration. A single browser origin is expected; credentials are allowed.
var (
	corsAllowedOrigins = []string{"http://localhost:5173"}
	corsAllowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	corsAllowedHeaders = []string{"*"}
)

// SetCORSOptions configures CORS behavior for the HTTP server. Nil methods or
// headers keep the allow-all defaults.
func SetCORSOptions(origins, methods, headers []string) {
	corsAllowedOrigins = append([]string(nil), origins...)
	if methods != nil {
		corsAllowedMethods = append([]string(nil), methods...)
	}
	if headers != nil {
		corsAllowedHeaders = append([]string(nil), headers...)
	}
}
