package marker

import "fmt"

// InputError reports an identifier list that could not be read.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	return fmt.Sprintf("reading identifiers from %s: %v", e.Path, e.Err)
}

func (e *InputError) Unwrap() error {
	return e.Err
}

// ServiceError reports a failed pathway service call. Op is one of "lookup", "mark" or "save",
// ID is the enzyme or pathway identifier the call was made for.
type ServiceError struct {
	Op  string
	ID  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.ID, e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
