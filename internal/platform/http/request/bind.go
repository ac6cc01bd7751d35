// Package request holds request-decoding helpers shared by the feature handlers.
package request

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/Dalfonso062004/gestion-productos/internal/shared/apperror"
)

// BindJSON decodes the JSON body into dst. An empty body leaves dst at its zero
// value so that field validation reports what is missing; malformed JSON yields
// apperror.ErrInvalidBody.
func BindJSON(c *gin.Context, dst any) error {
	if err := c.ShouldBindJSON(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperror.ErrInvalidBody
	}
	return nil
}
