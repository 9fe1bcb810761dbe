package i18n

import (
	"sort"
	"strings"
	"sync"
)

// Message codes shared by the validation, masking and lint passes.
const (
	UnexpectedField      = "unexpected_field"
	UnexpectedFields     = "unexpected_fields"
	MissingField         = "missing_field"
	MissingFields        = "missing_fields"
	WrongType            = "wrong_type"
	NonNullable          = "non_nullable"
	RequiredNotFound     = "required_not_found"
	UndefinedStatus      = "undefined_status"
	NoMatchingAlt        = "no_matching_alternative"
	UnsupportedValidator = "unsupported_validator"
	InvalidObject        = "invalid_object"
	InvalidItem          = "invalid_item"
	ExactLength          = "exact_length"
	TooShort             = "too_short"
	TooLong              = "too_long"
	Pattern              = "pattern"
	SocialSecurity       = "social_security_number"
	Email                = "email"
	URL                  = "url"
	UUID                 = "uuid"
	OutOfRange           = "out_of_range"
)

// Translator retrieves localized messages for message codes.
// data provides the values substituted into the {placeholders} of the message.
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var en = map[string]string{
	UnexpectedField:      "An unexpected field was sent to the server: {name}",
	UnexpectedFields:     "Unexpected fields were sent to the server: {names}",
	MissingField:         "A required field is missing: {name}",
	MissingFields:        "Required fields are missing: {names}",
	WrongType:            "The value {value} from field '{field}' is the wrong type, expected: {expected}",
	NonNullable:          "Non nullable field '{field}' is null!",
	RequiredNotFound:     "The field '{field}' is required but not found in the body!",
	UndefinedStatus:      "Endpoint does not define http status code {status} in the output schema!",
	NoMatchingAlt:        "The value {value} from field '{field}' is not valid for one of the defined props for the following reasons: {reasons}",
	UnsupportedValidator: "{validator} is not supported for class {kind}!!",
	InvalidObject:        "The object in field '{field}' is invalid: {reason}",
	InvalidItem:          "The item at index {index} in field '{field}' is invalid: {reason}",
	ExactLength:          "String is not the correct length! The string '{value}' is {length} characters long, not {expected}!",
	TooShort:             "String is too short! The string '{value}' is {length} characters long, the minimum is {min}!",
	TooLong:              "String is too long! The string '{value}' is {length} characters long, the maximum is {max}!",
	Pattern:              "The string '{value}' does not match the pattern {pattern}!",
	SocialSecurity:       "{value} is not a valid social security number!",
	Email:                "{value} is not a valid email address!",
	URL:                  "{value} is not a valid URL!",
	UUID:                 "{value} is not a valid UUID!",
	OutOfRange:           "The value {value} is not between {min} and {max}!",
}

var ja = map[string]string{
	UnexpectedField:      "想定外のフィールドが送信されました: {name}",
	UnexpectedFields:     "想定外のフィールドが送信されました: {names}",
	MissingField:         "必須フィールドが不足しています: {name}",
	MissingFields:        "必須フィールドが不足しています: {names}",
	WrongType:            "フィールド '{field}' の値 {value} は型が不正です。期待する型: {expected}",
	NonNullable:          "null を許可しないフィールド '{field}' が null です",
	RequiredNotFound:     "必須フィールド '{field}' がボディに存在しません",
	UndefinedStatus:      "エンドポイントの出力スキーマに HTTP ステータス {status} が定義されていません",
	NoMatchingAlt:        "フィールド '{field}' の値 {value} はいずれの定義にも一致しません。理由: {reasons}",
	UnsupportedValidator: "{validator} は {kind} に対応していません",
	InvalidObject:        "フィールド '{field}' のオブジェクトが不正です: {reason}",
	InvalidItem:          "フィールド '{field}' の {index} 番目の要素が不正です: {reason}",
	ExactLength:          "文字列 '{value}' の長さは {length} 文字です。{expected} 文字である必要があります",
	TooShort:             "文字列 '{value}' の長さは {length} 文字です。最小は {min} 文字です",
	TooLong:              "文字列 '{value}' の長さは {length} 文字です。最大は {max} 文字です",
	Pattern:              "文字列 '{value}' はパターン {pattern} に一致しません",
	SocialSecurity:       "{value} は有効な社会保障番号ではありません",
	Email:                "{value} は有効なメールアドレスではありません",
	URL:                  "{value} は有効な URL ではありません",
	UUID:                 "{value} は有効な UUID ではありません",
	OutOfRange:           "値 {value} は {min} から {max} の範囲外です",
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	dict := en
	if t.lang == "ja" {
		dict = ja
	}
	tmpl, ok := dict[code]
	if !ok {
		return code
	}
	return render(tmpl, data)
}

// render substitutes {key} placeholders. Keys are applied in sorted order so
// the output does not depend on map iteration.
func render(tmpl string, data map[string]string) string {
	if len(data) == 0 {
		return tmpl
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, "{"+k+"}", data[k])
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
