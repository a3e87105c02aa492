package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

const genericServerError = "An unexpected error occurred. Please try again later."

// SendJSONError sends a standardized JSON error response and logs the internal error.
// For 5xx errors the internal error is never echoed to the client.
// Extra fields (for example field errors or the wizard state) are merged into the body.
func SendJSONError(c *gin.Context, statusCode int, publicMsg string, internalError error, extra ...gin.H) {
	response := gin.H{"code": statusCode, "error": publicMsg}
	for _, e := range extra {
		for k, v := range e {
			response[k] = v
		}
	}

	if internalError != nil {
		log.Printf("ERROR: Handler error: status_code=%d, public_message='%s', internal_error='%v', path='%s', request_id='%s'",
			statusCode, publicMsg, internalError, c.Request.URL.Path, c.GetString("request_id"))
	} else {
		log.Printf("INFO: Handler response: status_code=%d, public_message='%s', path='%s', request_id='%s'",
			statusCode, publicMsg, c.Request.URL.Path, c.GetString("request_id"))
	}

	if statusCode >= http.StatusInternalServerError {
		if publicMsg == "" || (internalError != nil && publicMsg == internalError.Error()) {
			response["error"] = genericServerError
		}
	}

	c.AbortWithStatusJSON(statusCode, response)
}

// SendJSON writes the standard success envelope.
func SendJSON(c *gin.Context, statusCode int, message string, data any) {
	c.JSON(statusCode, gin.H{
		"code":    statusCode,
		"message": message,
		"data":    data,
	})
}
