package util

import "github.com/gin-gonic/gin"

// Error writes the uniform failure body. err may be nil for pure
// validation failures where the message says everything.
func Error(c *gin.Context, httpStatus int, msg string, err error) {
	body := gin.H{"message": msg}
	if err != nil {
		body["error"] = err.Error()
	} else {
		body["error"] = ""
	}
	c.JSON(httpStatus, body)
}

// Message writes a bare confirmation body, used by delete endpoints.
func Message(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"message": msg})
}
