package book

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"bookstore/internal/apperr"
)

type fieldKind int

const (
	kindString fieldKind = iota
	kindInteger
)

func (k fieldKind) String() string {
	if k == kindInteger {
		return "an integer"
	}
	return "a string"
}

type schemaField struct {
	name string
	kind fieldKind
	set  func(b *Book, v any)
}

func stringField(name string, set func(b *Book, s string)) schemaField {
	return schemaField{name: name, kind: kindString, set: func(b *Book, v any) { set(b, v.(string)) }}
}

func integerField(name string, set func(b *Book, n int)) schemaField {
	return schemaField{name: name, kind: kindInteger, set: func(b *Book, v any) { set(b, v.(int)) }}
}

// bookSchema lists the fields of a book payload in reporting order. All of
// them are required; extra properties are ignored.
var bookSchema = []schemaField{
	stringField("isbn", func(b *Book, s string) { b.ISBN = s }),
	stringField("amazon_url", func(b *Book, s string) { b.AmazonURL = s }),
	stringField("author", func(b *Book, s string) { b.Author = s }),
	stringField("language", func(b *Book, s string) { b.Language = s }),
	integerField("pages", func(b *Book, n int) { b.Pages = n }),
	stringField("publisher", func(b *Book, s string) { b.Publisher = s }),
	stringField("title", func(b *Book, s string) { b.Title = s }),
	integerField("year", func(b *Book, n int) { b.Year = n }),
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// ValidatePayload checks a raw request body against the book schema and
// returns the decoded book. On failure the error is an
// *apperr.ValidationError listing every violated rule, or a bad request
// error when the body is not JSON at all.
func ValidatePayload(raw []byte) (Book, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return Book{}, apperr.BadRequest("invalid JSON body", err)
	}

	obj, ok := doc.(map[string]any)
	if !ok {
		return Book{}, apperr.NewValidationError([]string{"body must be a JSON object"})
	}

	var b Book
	perField := make(map[string][]string)
	for _, field := range bookSchema {
		v, err := field.check(obj[field.name])
		if err != nil {
			perField[field.name] = append(perField[field.name], err.Error())
			continue
		}
		field.set(&b, v)
	}

	var fieldErrs validator.ValidationErrors
	if err := validate.Struct(b); errors.As(err, &fieldErrs) {
		for _, fe := range fieldErrs {
			// missing or mistyped fields are not checked for format
			if _, failed := perField[fe.Field()]; failed {
				continue
			}
			perField[fe.Field()] = append(perField[fe.Field()], formatMessage(fe))
		}
	}

	var violations []string
	for _, field := range bookSchema {
		violations = append(violations, perField[field.name]...)
	}
	if len(violations) > 0 {
		return Book{}, apperr.NewValidationError(violations)
	}
	return b, nil
}

func (f schemaField) check(v any) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("%s is required", f.name)
	}
	switch f.kind {
	case kindString:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case kindInteger:
		// integer columns are INTEGER (int4) in the books table
		if n, ok := v.(json.Number); ok {
			if i, err := strconv.ParseInt(n.String(), 10, 32); err == nil {
				return int(i), nil
			}
		}
	}
	return nil, fmt.Errorf("%s must be %s", f.name, f.kind)
}

func formatMessage(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s must not be empty", field)
	case "url":
		return fmt.Sprintf("%s must be a valid URL", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
