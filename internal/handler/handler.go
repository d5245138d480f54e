package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/RehanShaikh007/TextileERP-sub000/internal/logger"
	"github.com/RehanShaikh007/TextileERP-sub000/internal/service"
	"github.com/RehanShaikh007/TextileERP-sub000/pkg/pagination"
	"github.com/RehanShaikh007/TextileERP-sub000/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError maps service errors onto status codes. Unexpected errors
// are logged and answered with a generic message.
func respondError(c *gin.Context, err error) {
	var status int
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidTransition):
		status = http.StatusConflict
	default:
		_ = c.Error(err)
		logger.App().WithError(err).WithField("path", c.FullPath()).Error("request failed")
		c.JSON(http.StatusInternalServerError, response.Error("Internal server error"))
		return
	}
	c.JSON(status, response.Error(err.Error()))
}

// respondBindError reports a request body that failed to decode or validate
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fe.Field()+" failed on "+fe.Tag())
		}
		c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: "+strings.Join(fields, "; ")))
		return
	}
	c.JSON(http.StatusBadRequest, response.Error("Invalid request payload: malformed JSON"))
}

func pageOf(c *gin.Context) (pagination.Params, service.Page) {
	p := pagination.Parse(c)
	return p, service.Page{Page: p.Page, Limit: p.Limit}
}
