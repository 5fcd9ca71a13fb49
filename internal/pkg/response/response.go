// Package response writes the JSON envelope every endpoint speaks:
// {"success":true,"data":...} on the happy path and
// {"success":false,"error":{"code","message"[,"details"]}} otherwise.
// Clients branch on the machine-readable code, not the HTTP status alone.
package response

import "github.com/gin-gonic/gin"

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message},
	})
}

// ErrorWithDetails carries a payload alongside the error, for validation
// field maps and duplicate-conflict rows.
func ErrorWithDetails(c *gin.Context, statusCode int, code, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error":   gin.H{"code": code, "message": message, "details": details},
	})
}
