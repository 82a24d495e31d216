package utils

import (
	"fmt"
	"log"
	"strings"
)

// LogEvent prints one key=value line tagged with the module name.
// Keep passenger details out of message.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	if req == "" {
		req = "-"
	}
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

func LogEventf(requestID, module, action, format string, args ...any) {
	LogEvent(requestID, module, action, fmt.Sprintf(format, args...))
}
