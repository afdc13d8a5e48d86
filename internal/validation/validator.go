package validation

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	govalidator "github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	phonePattern = regexp.MustCompile(`^(\+66|0)\d{8,9}$`)
)

// Validator - проверка форм бота с английскими сообщениями об ошибках
type Validator struct {
	validate *govalidator.Validate
	trans    ut.Translator
}

// FieldErrors - ошибки по полям формы (json имя поля -> сообщение)
type FieldErrors map[string]string

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fe[k])
	}
	return strings.Join(parts, "; ")
}

// New создаёт валидатор с кастомными тегами thai_citizen_id, hhmm и thai_phone
func New() *Validator {
	v := govalidator.New(govalidator.WithRequiredStructEnabled())

	// Используем имя из json тега в сообщениях об ошибках
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(v, trans)

	custom := []struct {
		tag     string
		fn      govalidator.Func
		message string
	}{
		{"thai_citizen_id", validateCitizenID, "{0} must be a valid 13-digit Thai citizen ID"},
		{"hhmm", validateClock, "{0} must be a time in HH:MM format"},
		{"thai_phone", validatePhone, "{0} must be a Thai phone number like 0812345678"},
	}
	for _, c := range custom {
		_ = v.RegisterValidation(c.tag, c.fn)
		registerTranslation(v, trans, c.tag, c.message)
	}

	return &Validator{validate: v, trans: trans}
}

func registerTranslation(v *govalidator.Validate, trans ut.Translator, tag, message string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error {
			return t.Add(tag, message, true)
		},
		func(t ut.Translator, fe govalidator.FieldError) string {
			msg, _ := t.T(tag, fe.Field())
			return msg
		},
	)
}

// Struct проверяет форму целиком. Возвращает FieldErrors или nil.
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}
	return v.translate(err)
}

// Var проверяет одно поле диалога, name используется в сообщении
func (v *Validator) Var(name string, value interface{}, tag string) error {
	err := v.validate.Var(value, tag)
	if err == nil {
		return nil
	}
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return err
	}
	// у одиночного значения имя поля пустое, подставляем своё
	msg := strings.TrimSpace(ve[0].Translate(v.trans))
	return FieldErrors{name: name + " " + msg}
}

func (v *Validator) translate(err error) error {
	var ve govalidator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	fields := make(FieldErrors, len(ve))
	for _, fe := range ve {
		fields[fe.Field()] = fe.Translate(v.trans)
	}
	return fields
}

func validateCitizenID(fl govalidator.FieldLevel) bool {
	return ValidCitizenID(fl.Field().String())
}

func validateClock(fl govalidator.FieldLevel) bool {
	return clockPattern.MatchString(fl.Field().String())
}

func validatePhone(fl govalidator.FieldLevel) bool {
	return phonePattern.MatchString(NormalizePhone(fl.Field().String()))
}

// ValidCitizenID проверяет 13-значный номер гражданина Таиланда по контрольной цифре mod 11
func ValidCitizenID(id string) bool {
	id = strings.ReplaceAll(strings.TrimSpace(id), "-", "")
	if len(id) != 13 {
		return false
	}

	sum := 0
	for i := 0; i < 13; i++ {
		c := id[i]
		if c < '0' || c > '9' {
			return false
		}
		if i < 12 {
			sum += int(c-'0') * (13 - i)
		}
	}

	check := (11 - sum%11) % 10
	return check == int(id[12]-'0')
}

// NormalizePhone убирает пробелы и дефисы из номера
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(strings.TrimSpace(phone))
}
