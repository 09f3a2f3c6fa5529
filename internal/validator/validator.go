// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"reflect"
	"strings"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"fintrack/internal/models"
	"fintrack/internal/patch"
)

// validCurrencies contains the ISO 4217 codes users may pick as their currency.
var validCurrencies = map[string]bool{
	"AED": true, "ARS": true, "AUD": true, "BDT": true, "BGN": true,
	"BRL": true, "CAD": true, "CHF": true, "CLP": true, "CNY": true,
	"COP": true, "CZK": true, "DKK": true, "EGP": true, "EUR": true,
	"GBP": true, "GHS": true, "HKD": true, "HUF": true, "IDR": true,
	"ILS": true, "INR": true, "ISK": true, "JPY": true, "KES": true,
	"KRW": true, "KWD": true, "LKR": true, "MAD": true, "MXN": true,
	"MYR": true, "NGN": true, "NOK": true, "NZD": true, "PEN": true,
	"PHP": true, "PKR": true, "PLN": true, "QAR": true, "RON": true,
	"RUB": true, "SAR": true, "SEK": true, "SGD": true, "THB": true,
	"TRY": true, "TWD": true, "UAH": true, "USD": true, "VND": true,
	"ZAR": true,
}

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn installs the custom tags and type functions on v.
func RegisterOn(v *validator.Validate) {
	v.RegisterTagNameFunc(fieldName)

	_ = v.RegisterValidation("iso4217", validateISO4217)
	_ = v.RegisterValidation("transaction_type", validateTransactionType)
	_ = v.RegisterValidation("budget_period", validateBudgetPeriod)

	v.RegisterCustomTypeFunc(dateValue, models.Date{})
	v.RegisterCustomTypeFunc(patchValue,
		patch.Field[string]{},
		patch.Field[*string]{},
		patch.Field[float64]{},
		patch.Field[models.Date]{},
		patch.Field[models.TransactionType]{},
		patch.Field[models.BudgetPeriod]{},
	)
}

// fieldName reports fields by their JSON (or form) key in validation errors.
func fieldName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
		if name != "" && name != "-" {
			return name
		}
	}
	return f.Name
}

// dateValue exposes a Date as time.Time so "required" treats the zero date as missing.
func dateValue(field reflect.Value) interface{} {
	d, ok := field.Interface().(models.Date)
	if !ok || d.IsZero() {
		return nil
	}
	return time.Time(d)
}

// patchValue validates the wrapped value of a sent field and skips absent
// ones. A sent value is returned behind a pointer so omitempty only skips
// absent fields, not explicit zeros.
func patchValue(field reflect.Value) interface{} {
	p, ok := field.Interface().(patch.Presence)
	if !ok {
		return nil
	}
	value, set := p.Present()
	if !set || value == nil {
		return nil
	}
	ptr := reflect.New(reflect.TypeOf(value))
	ptr.Elem().Set(reflect.ValueOf(value))
	return ptr.Interface()
}

// validateISO4217 accepts codes in either case; services store them upper-cased.
func validateISO4217(fl validator.FieldLevel) bool {
	return validCurrencies[strings.ToUpper(fl.Field().String())]
}

func validateTransactionType(fl validator.FieldLevel) bool {
	switch models.TransactionType(fl.Field().String()) {
	case models.TransactionTypeIncome, models.TransactionTypeExpense:
		return true
	}
	return false
}

func validateBudgetPeriod(fl validator.FieldLevel) bool {
	switch models.BudgetPeriod(fl.Field().String()) {
	case models.BudgetPeriodMonthly, models.BudgetPeriodWeekly, models.BudgetPeriodYearly:
		return true
	}
	return false
}
