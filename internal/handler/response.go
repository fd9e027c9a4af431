package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Services return errors shaped "code:message" where the first three
// digits of the code are the HTTP status. Anything else maps to 500 with
// a generic body so storage detail never leaks to clients.

func parseErrorCode(err error) (int, string) {
	msg := err.Error()
	if len(msg) > 5 && msg[5] == ':' {
		code, e := strconv.Atoi(msg[:5])
		if e == nil {
			return code, msg[6:]
		}
	}
	return 50001, "Internal server error"
}

func httpStatus(code int) int {
	status := code / 100
	if status < 400 || status > 599 {
		return http.StatusInternalServerError
	}
	return status
}

// Fail renders a service error as {"msg": ...}.
func Fail(c *gin.Context, err error) {
	code, msg := parseErrorCode(err)
	c.JSON(httpStatus(code), gin.H{"msg": msg})
}

// FailError renders a service error as {"error": ...}, the shape the feed
// and admin-stats endpoints use.
func FailError(c *gin.Context, err error) {
	code, msg := parseErrorCode(err)
	c.JSON(httpStatus(code), gin.H{"error": msg})
}

func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, gin.H{"msg": "Unauthorized"})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": msg})
}

func parseID(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 64)
	return uint(id)
}
