package utils

import "github.com/gin-gonic/gin"

// ErrorResponse is the envelope for every failed request.
func ErrorResponse(message string) gin.H {
	return gin.H{
		"success": false,
		"error":   message,
	}
}

func SuccessResponse(message string, data any) gin.H {
	res := gin.H{
		"success": true,
		"message": message,
	}
	if data != nil {
		res["data"] = data
	}
	return res
}
