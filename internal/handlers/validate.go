package handlers

import (
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Werneck0live/shukatsu-tracker/internal/apierror"
	"github.com/Werneck0live/shukatsu-tracker/internal/models"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// erros usam o nome do campo no JSON
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// Field[T] é validado pelo valor; ausente/null cai no omitempty
	v.RegisterCustomTypeFunc(fieldValue,
		models.Field[string]{},
		models.Field[int]{},
		models.Field[bool]{},
		models.Field[models.Status]{},
	)

	_ = v.RegisterValidation("company_status", func(fl validator.FieldLevel) bool {
		return models.Status(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("interview_time", func(fl validator.FieldLevel) bool {
		_, err := models.ParseInterviewTime(fl.Field().String(), time.Local)
		return err == nil
	})
	return v
}

func fieldValue(v reflect.Value) any {
	if f, ok := v.Interface().(interface{ ValidationValue() any }); ok {
		return f.ValidationValue()
	}
	return nil
}

// validateStruct devolve nil quando s é válido.
func validateStruct(s any) apierror.ErrorResponse {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	if se := apierror.FromValidationError(err); se != nil {
		return se
	}
	return apierror.BadRequest("%s", err.Error())
}

// checkNonNullable rejeita null em colunas NOT NULL.
func checkNonNullable(u models.CompanyUpdate) apierror.ErrorResponse {
	se := apierror.NewStructured(http.StatusBadRequest)
	if u.CompanyName.Null {
		se.Add("company_name", "This field cannot be null")
	}
	if u.Status.Null {
		se.Add("status", "This field cannot be null")
	}
	if u.Priority.Null {
		se.Add("priority", "This field cannot be null")
	}
	if u.ESSubmitted.Null {
		se.Add("es_submitted", "This field cannot be null")
	}
	if u.InterviewCount.Null {
		se.Add("interview_count", "This field cannot be null")
	}
	if se.Empty() {
		return nil
	}
	return se
}
