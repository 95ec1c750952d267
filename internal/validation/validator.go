package validation

import (
	"errors"

	"github.com/agamariel/uniformes/internal/models"
	validatorv10 "github.com/go-playground/validator/v10"
)

// Validator адаптирует go-playground/validator к интерфейсу echo.Validator.
type Validator struct {
	v *validatorv10.Validate
}

// New создаёт валидатор с зарегистрированными правилами предметной области.
func New() *Validator {
	v := validatorv10.New()

	// таблица размеров: garment или pants
	_ = v.RegisterValidation("chart", func(fl validatorv10.FieldLevel) bool {
		kind := models.SizeChartKind(fl.Field().String())
		return kind == models.ChartGarment || kind == models.ChartPants
	})

	v.RegisterStructValidation(recommendSizeRequestLevel, models.RecommendSizeRequest{})

	return &Validator{v: v}
}

// обхват груди обязателен для всех таблиц, кроме pants
func recommendSizeRequestLevel(sl validatorv10.StructLevel) {
	req := sl.Current().Interface().(models.RecommendSizeRequest)
	if req.Chart.RequiresChest() && req.Chest <= 0 {
		sl.ReportError(req.Chest, "Chest", "Chest", "required_for_chart", string(req.Chart))
	}
}

// Validate проверяет структуру по тегам validate.
func (cv *Validator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

// Fields переводит ошибки валидации в карту поле -> правило.
func Fields(err error) map[string]string {
	out := map[string]string{}
	var ve validatorv10.ValidationErrors
	if errors.As(err, &ve) {
		for _, fe := range ve {
			out[fe.Namespace()] = fe.Tag()
		}
	} else if err != nil {
		out["error"] = err.Error()
	}
	return out
}
