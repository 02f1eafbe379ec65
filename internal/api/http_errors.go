package api

import (
	"errors"
	"net/http"

	"github.com/hugo-lorenzo-mato/splitview/internal/core"
)

func httpStatusForDomainError(err error) (int, bool) {
	var domErr *core.DomainError
	if !errors.As(err, &domErr) || domErr == nil {
		return 0, false
	}

	switch domErr.Category {
	case core.ErrCatValidation:
		return http.StatusUnprocessableEntity, true
	case core.ErrCatNotFound:
		return http.StatusNotFound, true
	case core.ErrCatConflict, core.ErrCatState:
		return http.StatusConflict, true
	default:
		return http.StatusInternalServerError, true
	}
}

// respondDomainError writes err with the status its category maps to.
func respondDomainError(w http.ResponseWriter, err error) {
	status, ok := httpStatusForDomainError(err)
	if !ok {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, status, map[string]string{
		"error": err.Error(),
		"code":  core.GetCode(err),
	})
}
