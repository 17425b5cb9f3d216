package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the JSON envelope written by every handler.
type Response struct {
	Message   string      `json:"message"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

func write(c *gin.Context, status int, r Response) {
	r.RequestID = c.GetString("request_id")
	c.JSON(status, r)
}

func Success(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusOK, Response{Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	write(c, http.StatusCreated, Response{Message: message, Data: data})
}

// Error writes message and, when err is set, its text under "error".
func Error(c *gin.Context, status int, message string, err error) {
	r := Response{Message: message}
	if err != nil {
		r.Error = err.Error()
	}
	write(c, status, r)
}
