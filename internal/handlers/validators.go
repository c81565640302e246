package handlers

import (
	"regexp"
	"sync"

	"github.com/SscSPs/club_finance_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	registerOnce   sync.Once
	yearMonthRegex = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)
)

// registerValidators adds the club specific binding rules to gin's validator.
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("playerposition", validatePosition)
		_ = v.RegisterValidation("playerlevel", validateLevel)
		_ = v.RegisterValidation("yearmonth", validateYearMonth)
		_ = v.RegisterValidation("monthindex", validateMonthIndex)
	})
}

func validatePosition(fl validator.FieldLevel) bool {
	return domain.PlayerPosition(fl.Field().String()).IsValid()
}

func validateLevel(fl validator.FieldLevel) bool {
	return domain.PlayerLevel(fl.Field().String()).IsValid()
}

// validateYearMonth accepts YYYY-MM.
func validateYearMonth(fl validator.FieldLevel) bool {
	return yearMonthRegex.MatchString(fl.Field().String())
}

func validateMonthIndex(fl validator.FieldLevel) bool {
	return domain.ValidMonthIndex(int(fl.Field().Int()))
}
