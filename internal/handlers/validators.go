package handlers

import (
	"fmt"

	"github.com/SscSPs/credit_notes_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators installs the ledger's custom binding tags on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("notenumber", func(fl validator.FieldLevel) bool {
		return domain.IsNoteNumber(fl.Field().String())
	}); err != nil {
		return err
	}
	return v.RegisterValidation("commitmentnumber", func(fl validator.FieldLevel) bool {
		return domain.IsCommitmentNumber(fl.Field().String())
	})
}
