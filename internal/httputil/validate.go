package httputil

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator is the shared request validator. Handlers call Validator.Struct
// on decoded request bodies before doing any work.
var Validator = validator.New(validator.WithRequiredStructEnabled())

// ValidationError writes a 400 with one line per failed field.
func ValidationError(log *slog.Logger, w http.ResponseWriter, err error) {
	var fields []string
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field())+" failed "+fe.Tag())
		}
	}
	msg := "invalid request"
	if len(fields) > 0 {
		msg = "invalid request: " + strings.Join(fields, "; ")
	}
	Fail(log, w, msg, err, http.StatusBadRequest)
}
