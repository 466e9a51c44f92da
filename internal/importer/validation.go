package importer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"arari/internal/model"
	"arari/internal/period"
	"arari/internal/service/calculator"
)

// newValidator JSON 名でフィールドを報告する validator
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// fieldErrors validator のエラーを業務エラー形式に変換
func fieldErrors(err error) []model.ValidationError {
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []model.ValidationError{{Message: err.Error(), Severity: model.SeverityError}}
	}

	out := make([]model.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, model.ValidationError{
			Field:    fe.Field(),
			Message:  tagMessage(fe),
			Severity: model.SeverityError,
		})
	}
	return out
}

func tagMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "必須項目です"
	case "gte":
		return fmt.Sprintf("%s 以上である必要があります", fe.Param())
	case "oneof":
		return fmt.Sprintf("%s のいずれかである必要があります", fe.Param())
	case "datetime":
		return fmt.Sprintf("日付形式（%s）ではありません", fe.Param())
	default:
		return fmt.Sprintf("%s を満たしていません", fe.Tag())
	}
}

// checkEmployee 構造検証＋単価ルール
// 負の時給・単価は validator 側でエラーになるので、単価ルールは警告として足す
func (im *Importer) checkEmployee(e *model.Employee) []model.ValidationError {
	errs := fieldErrors(im.validate.Struct(e))
	for _, msg := range calculator.ValidateEmployee(e) {
		errs = append(errs, model.ValidationError{Field: "billingRate", Message: msg, Severity: model.SeverityWarning})
	}
	return errs
}

// checkRecord 構造検証＋明細の業務ルール
func (im *Importer) checkRecord(r *model.PayrollRecord) []model.ValidationError {
	errs := fieldErrors(im.validate.Struct(r))
	errs = append(errs, r.Validate()...)
	if r.Period != "" && !period.Valid(r.Period) {
		errs = append(errs, model.ValidationError{
			Field:    "period",
			Message:  "期間を年月として解析できません（推移・最新月の集計から除外されます）",
			Severity: model.SeverityWarning,
		})
	}
	return errs
}

// split エラーと警告に分ける
func split(kind string, index int, key string, errs []model.ValidationError) (blocking, warnings *model.RowError) {
	var b, w []model.ValidationError
	for _, e := range errs {
		if e.Severity == model.SeverityError {
			b = append(b, e)
		} else {
			w = append(w, e)
		}
	}
	if len(b) > 0 {
		blocking = &model.RowError{Kind: kind, Index: index, Key: key, Errors: b}
	}
	if len(w) > 0 {
		warnings = &model.RowError{Kind: kind, Index: index, Key: key, Errors: w}
	}
	return blocking, warnings
}
