package iplist

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration  = errors.New("exactly one of file path or address list must be provided")
	ErrInvalidAddress = errors.New("invalid IP address")
	ErrIPv4Only       = errors.New("IPv6 address found and not ignored")
	ErrFileAccess     = errors.New("cannot read IP list file")
	ErrNoBackingFile  = errors.New("no backing file")
	ErrExport         = errors.New("cannot export IP list")
)

// AddressError reports a rejected input line. Kind is ErrInvalidAddress or ErrIPv4Only.
type AddressError struct {
	Kind error
	Line int
	Text string
}

func (e *AddressError) Error() string {
	if e.Line == 0 {
		return fmt.Sprintf("%v: %s", e.Kind, e.Text)
	}
	return fmt.Sprintf("%v at line %d: %s", e.Kind, e.Line, e.Text)
}

func (e *AddressError) Unwrap() error {
	return e.Kind
}

// PathError reports a filesystem failure while loading or exporting.
// It matches both its Kind and the underlying cause under errors.Is.
type PathError struct {
	Kind error
	Path string
	Err  error
}

func (e *PathError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%v %s: %v", e.Kind, e.Path, e.Err)
}

func (e *PathError) Unwrap() error {
	return e.Err
}

func (e *PathError) Is(target error) bool {
	return target == e.Kind
}
