package app

import "errors"

// ExitError carries the process exit code for an error returned by a command.
type ExitError struct {
	Code int
	Err  error
}

func (e ExitError) Error() string {
	if e.Err == nil {
		return "exit"
	}
	return e.Err.Error()
}

func (e ExitError) Unwrap() error {
	return e.Err
}

func Exit(code int) error {
	return ExitError{Code: code}
}

func ExitWithError(code int, err error) error {
	return ExitError{Code: code, Err: err}
}

func asExitError(err error) (ExitError, bool) {
	var ee ExitError
	if errors.As(err, &ee) {
		return ee, true
	}
	return ExitError{}, false
}

// exitCode maps a command error to a process exit code and whether it should be printed.
func exitCode(err error) (int, bool) {
	if err == nil {
		return 0, false
	}
	if ee, ok := asExitError(err); ok {
		return ee.Code, ee.Err != nil && ee.Code != 0
	}
	return 1, true
}
