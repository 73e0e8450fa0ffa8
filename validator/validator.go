// Package validator validates configuration, requests and destination addresses.
package validator

import "errors"

// Validator is any type capable to validate and having Validate method attached.
type Validator interface {
	Validate() error
}

// Validate validates every non-nil v and joins the errors.
func Validate(vs ...Validator) error {
	var errs []error
	for _, v := range vs {
		if v == nil {
			continue
		}
		if err := v.Validate(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
