package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/SAP-F-2025/trainee-dashboard/internal/form"
	"github.com/SAP-F-2025/trainee-dashboard/internal/repositories/strapi"
	"github.com/SAP-F-2025/trainee-dashboard/internal/utils"
)

var (
	ErrNotFound        = errors.New("record not found")
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
	ErrSectionDenied   = errors.New("section not available for this role")
)

// UserMessage is the notification text for a failed operation.
func UserMessage(err error) string {
	var verrs utils.ValidationErrors
	switch {
	case err == nil:
		return ""
	case errors.As(err, &verrs):
		return strings.Join(verrs.Messages(), ", ")
	case errors.Is(err, form.ErrIncomplete):
		return err.Error()
	case errors.Is(err, form.ErrUploadFailed):
		return fmt.Sprintf("File upload failed: %s", strapi.Message(err))
	case errors.Is(err, strapi.ErrDeleteNotConfirmed):
		return "Delete was not confirmed by the server"
	case errors.Is(err, ErrNotFound):
		return "Record not found"
	}
	return strapi.Message(err)
}
