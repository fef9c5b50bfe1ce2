package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-ArtistScheduling/internal/domain"
	"github.com/m04kA/SMC-ArtistScheduling/pkg/types"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// В ошибках используются имена полей из json тегов
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Время суток HH:MM (допускается 24:00)
	_ = v.RegisterValidation("timeofday", func(fl validator.FieldLevel) bool {
		_, err := types.NewTimeStringFromString(fl.Field().String())
		return err == nil
	})

	// Дата YYYY-MM-DD
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := ParseDate(fl.Field().String())
		return err == nil
	})

	// Событие жизненного цикла бронирования
	_ = v.RegisterValidation("booking_event", func(fl validator.FieldLevel) bool {
		return domain.BookingEvent(fl.Field().String()).IsValid()
	})

	return v
}

// Validate проверяет структуру по validate тегам.
// Возвращает nil или карту "поле -> описание ошибки".
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Field()] = describe(fe)
	}
	return details
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "gt", "gte", "min":
		return fmt.Sprintf("должно быть не меньше %s", fe.Param())
	case "lt", "lte", "max":
		return fmt.Sprintf("должно быть не больше %s", fe.Param())
	case "timeofday":
		return "ожидается время в формате HH:MM"
	case "isodate":
		return "ожидается дата в формате YYYY-MM-DD"
	case "booking_event":
		return "допустимые значения: accept, reject, complete, cancel"
	case "oneof":
		return fmt.Sprintf("допустимые значения: %s", fe.Param())
	}
	return fmt.Sprintf("не прошло проверку %s", fe.Tag())
}
