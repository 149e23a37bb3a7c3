package services

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/franciscosanchezn/pizzaone-api/internal/models"
)

// newValidator reports fields by their JSON names, e.g. "customer.phone"
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

// fieldErrors flattens validator output into field -> message
func fieldErrors(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fields
	}
	for _, fe := range verrs {
		fields[fieldPath(fe.Namespace())] = validationMessage(fe)
	}
	return fields
}

// fieldPath drops the root struct name from a namespace
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return "must be at least " + fe.Param()
	default:
		return "is invalid"
	}
}

func trimCustomer(c models.Customer) models.Customer {
	return models.Customer{
		Name:    strings.TrimSpace(c.Name),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
		TaxID:   strings.TrimSpace(c.TaxID),
	}
}

func trimSelection(sel models.Selection) models.Selection {
	sel.ProductID = strings.TrimSpace(sel.ProductID)
	sel.Size = strings.TrimSpace(sel.Size)
	sel.Note = strings.TrimSpace(sel.Note)
	sel.Customer = trimCustomer(sel.Customer)
	return sel
}

// checkRemoved reports the first removed ingredient the product does not contain
func checkRemoved(product models.Product, removed []string) string {
	for _, name := range removed {
		if !product.HasIngredient(name) {
			return fmt.Sprintf("%q is not an ingredient of %s", name, product.Name)
		}
	}
	return ""
}

// requiredText trims a set optional string and flags it when blank
func requiredText(fields map[string]string, key string, opt models.Optional[string]) models.Optional[string] {
	v, ok := opt.Get()
	if !ok {
		return opt
	}
	v = strings.TrimSpace(v)
	if v == "" {
		fields[key] = "is required"
	}
	return models.Some(v)
}
