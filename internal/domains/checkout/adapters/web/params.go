package web

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/pioneercards/storefront/internal/shared/errors"
)

func parseIDParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		apierrors.DefaultResponder.BadRequest(c, name+" must be an integer")
		return 0, false
	}
	return id, true
}
