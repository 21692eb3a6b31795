package argparse

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingArgument matches every *MissingArgumentError.
	ErrMissingArgument = errors.New("argument missing")
	// ErrConversion matches every *ConversionError.
	ErrConversion = errors.New("invalid argument")
	// ErrUnrecognizedArgument matches every *UnrecognizedArgumentError.
	ErrUnrecognizedArgument = errors.New("unrecognized argument")
	// ErrAmbiguousSchema matches every *SchemaError.
	ErrAmbiguousSchema = errors.New("ambiguous schema")
	// ErrHelp is returned (wrapped in *HelpError) when -h or --help is given.
	ErrHelp = errors.New("argument is help message")
	// ErrCheck matches every *CheckError.
	ErrCheck = errors.New("argument check failed")
)

const ( // runtime errors
	errMissingArgument = "Argument missing: %s (%s)"
	errConversion      = "Invalid argument, could not convert \"%s\" for %s (%s)"
	errUnrecognized    = `Unrecognized argument "%s" in %s`
	errCheck           = "argument parse success, post check failed: %v"
	errHelpRequested   = "help requested for %s"
)

const ( // build time errors
	errSchema          = "ambiguous schema %s: %s"
	errMultiAfterMulti = "multi argument %s follows multi argument %s"
	errMultiNotSlice   = "multi argument %s must be declared with a slice type, found %s"
	errMultiWithSubcmd = "multi argument %s cannot be combined with subcommands"
	errImplicitOnArg   = "%s cannot have an implicit value, only keywords can"
	errFlagDefault     = "flag %s can only default to false"
	errNoConverter     = "no converter registered for type %s of %s"
	errBadDefault      = "error parsing default value \"%s\" of %s: %v"
	errBadImplicit     = "error parsing implicit value \"%s\" of %s: %v"
	errEmptyName       = "empty option name in %q"
	errReservedName    = `"help" is a reserved word, please rename %s`
	errArgRedefined    = "option %s is redefined by %s"
	errCmdRedefined    = "subcommand %s is redefined"
	errBadCmdName      = "invalid subcommand name %q"
)

// MissingArgumentError reports a required positional or keyword that received
// no value and has no default.
type MissingArgumentError struct {
	Name    string
	Help    string
	Command string // schema path the declaration belongs to
}

func (e *MissingArgumentError) Error() string {
	return fmt.Sprintf(errMissingArgument, e.Name, e.Help)
}

func (e *MissingArgumentError) Is(target error) bool {
	return target == ErrMissingArgument
}

// ConversionError reports a value token the declared type could not be built
// from. Raw holds the text exactly as it was supplied.
type ConversionError struct {
	Name    string
	Help    string
	Raw     string
	Command string
	Err     error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf(errConversion, e.Raw, e.Name, e.Help)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

func (e *ConversionError) Is(target error) bool {
	return target == ErrConversion
}

// UnrecognizedArgumentError reports a token that matched no declaration.
type UnrecognizedArgumentError struct {
	Raw     string
	Command string
}

func (e *UnrecognizedArgumentError) Error() string {
	return fmt.Sprintf(errUnrecognized, e.Raw, e.Command)
}

func (e *UnrecognizedArgumentError) Is(target error) bool {
	return target == ErrUnrecognizedArgument
}

// SchemaError is a defect found while declaring arguments. It is reported by
// (*Args).Err as soon as the declaration is made.
type SchemaError struct {
	Command string
	Reason  string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf(errSchema, e.Command, e.Reason)
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrAmbiguousSchema
}

// HelpError is returned when help was requested. Args is the schema whose
// usage should be shown.
type HelpError struct {
	Args *Args
}

func (e *HelpError) Error() string {
	return fmt.Sprintf(errHelpRequested, e.Args.Name())
}

func (e *HelpError) Is(target error) bool {
	return target == ErrHelp
}

// CheckError wraps the error returned by a checker registered with
// (*Args).Checker.
type CheckError struct {
	Command string
	Err     error
}

func (e *CheckError) Error() string {
	return fmt.Sprintf(errCheck, e.Err)
}

func (e *CheckError) Unwrap() error {
	return e.Err
}

func (e *CheckError) Is(target error) bool {
	return target == ErrCheck
}

// commandOf returns the schema path an engine error was raised in.
func commandOf(err error) (string, bool) {
	var (
		missing *MissingArgumentError
		conv    *ConversionError
		unrec   *UnrecognizedArgumentError
		check   *CheckError
	)
	switch {
	case errors.As(err, &missing):
		return missing.Command, true
	case errors.As(err, &conv):
		return conv.Command, true
	case errors.As(err, &unrec):
		return unrec.Command, true
	case errors.As(err, &check):
		return check.Command, true
	}
	return "", false
}
