package diagram

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/nnetplot/pkg/errors"
)

// validate is a singleton validator instance reporting fields by their
// document key.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and cross references: layer names are
// unique and valid, and every alignment and connection names known layers.
func Validate(doc *Document) error {
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidDiagram, "document cannot be nil")
	}
	if err := validate.Struct(doc); err != nil {
		return formatValidationError(err)
	}

	seen := make(map[string]int, len(doc.Layers))
	for i, l := range doc.Layers {
		if err := errors.ValidateLayerName(l.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "layers[%d]", i)
		}
		if j, dup := seen[l.Name]; dup {
			return errors.New(errors.ErrCodeInvalidDiagram, "layers[%d]: duplicate layer name %q (first declared at layers[%d])", i, l.Name, j)
		}
		seen[l.Name] = i
	}

	known := func(section string, i int, name string) error {
		if _, ok := seen[name]; !ok {
			return errors.New(errors.ErrCodeUnknownLayer, "%s[%d]: unknown layer %q", section, i, name)
		}
		return nil
	}
	for i, a := range doc.Align {
		if err := known("align", i, a.From); err != nil {
			return err
		}
		if err := known("align", i, a.To); err != nil {
			return err
		}
		if a.From == a.To {
			return errors.New(errors.ErrCodeInvalidDiagram, "align[%d]: layer %q cannot be aligned to itself", i, a.From)
		}
	}
	for i, c := range doc.Connect {
		if err := known("connect", i, c.From); err != nil {
			return err
		}
		if err := known("connect", i, c.To); err != nil {
			return err
		}
	}
	return validateSize(doc, seen)
}

// validateSize bounds the work a document can ask for: the total node count
// and the number of connector segments.
func validateSize(doc *Document, index map[string]int) error {
	nodes := 0
	for _, l := range doc.Layers {
		nodes += l.Rows * l.Columns
	}
	if nodes > MaxNodes {
		return errors.New(errors.ErrCodeInvalidDiagram, "layers: %d nodes exceed the limit of %d", nodes, MaxNodes)
	}

	segments := 0
	for _, c := range doc.Connect {
		segments += endpoints(doc.Layers[index[c.From]]) * endpoints(doc.Layers[index[c.To]])
		if segments > MaxConnectors {
			return errors.New(errors.ErrCodeInvalidDiagram, "connect: more than %d connector segments", MaxConnectors)
		}
	}
	return nil
}

// endpoints is the number of attachment points on one side of a layer.
func endpoints(l LayerSpec) int {
	if l.Draw == DrawRect {
		return 2
	}
	return l.Rows * l.Columns
}

// formatValidationError converts validator errors to a user-friendly form,
// reporting the first failing field.
func formatValidationError(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidDiagram, err, "invalid document")
	}

	e := validationErrs[0]
	field := strings.TrimPrefix(e.Namespace(), "Document.")
	param := e.Param()

	var msg string
	switch e.Tag() {
	case "required":
		msg = "field is required"
	case "min":
		msg = fmt.Sprintf("must have at least %s entries", param)
	case "gt":
		msg = fmt.Sprintf("must be greater than %s", param)
	case "gte":
		msg = fmt.Sprintf("must be at least %s", param)
	case "lte":
		msg = fmt.Sprintf("must not exceed %s", param)
	case "oneof":
		msg = fmt.Sprintf("must be one of [%s], got %q", strings.ReplaceAll(param, " ", ", "), fmt.Sprint(e.Value()))
	default:
		msg = fmt.Sprintf("validation failed (%s)", e.Tag())
	}
	return errors.New(errors.ErrCodeInvalidDiagram, "%s: %s", field, msg)
}
