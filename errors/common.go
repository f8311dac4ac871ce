package errors

import "fmt"

func InvalidParamsErr(err error) error {
	return E(Invalid, "invalid params", err)
}

func InvalidBodyErr(err error) error {
	return E(Invalid, "invalid request body", err)
}

func ValidationFailedErr(err error) error {
	return E(Invalid, "validation failed", err)
}

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// ResourceLoadErr reports a model or dataset that could not be loaded from path
func ResourceLoadErr(what, path string, err error) error {
	return E(ResourceLoad, fmt.Sprintf("could not load %s from %s", what, path), err)
}

// InferenceErr wraps a failed classifier call with its underlying cause
func InferenceErr(err error) error {
	return E(Inference, "prediction failed", err)
}

// EmptyAggregateWarning signals an analytics step with nothing to compute
func EmptyAggregateWarning(msg string) error {
	return E(EmptyAggregate, msg, nil)
}
