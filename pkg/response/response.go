package response

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/discord"
	"github.com/rodgerswisdom/safegal-guardian-alert/pkg/errors"
)

// OK writes a 200 response with the standard envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Resp{
		ErrorCode: codeSuccess,
		Message:   "Success",
		Data:      data,
	})
}

// Error writes an error response. *errors.HTTPError values keep their
// status code; anything else becomes a 500 and pages the Discord webhook
// so infrastructure faults are never silently swallowed.
func Error(c *gin.Context, err error, discordClient discord.IDiscord) {
	if httpErr, ok := err.(*errors.HTTPError); ok {
		c.JSON(httpErr.Code, Resp{
			ErrorCode: httpErr.Code,
			Message:   httpErr.Message,
		})
		return
	}

	if discordClient != nil {
		_ = discordClient.SendError(context.WithoutCancel(c.Request.Context()),
			"Internal Server Error",
			fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path),
			err,
		)
	}

	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: codeInternal,
		Message:   "Internal server error",
	})
}

// BadRequest writes a 400 response with field-level errors.
func BadRequest(c *gin.Context, errs any) {
	c.JSON(http.StatusBadRequest, Resp{
		ErrorCode: codeBadRequest,
		Message:   "Bad request",
		Errors:    errs,
	})
}

// Unauthorized writes a 401 response.
func Unauthorized(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, Resp{
		ErrorCode: codeUnauthorized,
		Message:   "Unauthorized",
	})
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, Resp{
		ErrorCode: codeForbidden,
		Message:   "Forbidden",
	})
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context) {
	c.JSON(http.StatusNotFound, Resp{
		ErrorCode: codeNotFound,
		Message:   "Not found",
	})
}

// TooManyRequests writes a 429 response. The data payload carries the
// denial details (reason, next allowed time).
func TooManyRequests(c *gin.Context, message string, data any) {
	c.JSON(http.StatusTooManyRequests, Resp{
		ErrorCode: codeTooManyRequests,
		Message:   message,
		Data:      data,
	})
}

// PanicError reports a recovered panic to Discord and writes a 500.
func PanicError(c *gin.Context, recovered any, discordClient discord.IDiscord) {
	if discordClient != nil {
		_ = discordClient.SendError(context.WithoutCancel(c.Request.Context()),
			"Panic Recovered",
			fmt.Sprintf("%s %s", c.Request.Method, c.Request.URL.Path),
			fmt.Errorf("%v", recovered),
		)
	}

	c.JSON(http.StatusInternalServerError, Resp{
		ErrorCode: codeInternal,
		Message:   "Internal server error",
	})
}
