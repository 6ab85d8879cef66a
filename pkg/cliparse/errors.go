// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliparse

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per failure kind. Every typed error below unwraps to
// exactly one of these so callers can use errors.Is for the kind and
// errors.As for the context.
var (
	ErrCommandNotFound    = errors.New("command not found")
	ErrRequiredFlag       = errors.New("required flag not provided")
	ErrUnknownFlag        = errors.New("unknown flag")
	ErrInvalidFlagValue   = errors.New("invalid flag value")
	ErrFlagValueMissing   = errors.New("flag value missing")
	ErrTooManyArguments   = errors.New("too many arguments")
	ErrNotEnoughArguments = errors.New("not enough arguments")
	ErrInternal           = errors.New("internal parse error")
	ErrConfiguration      = errors.New("invalid command configuration")
)

// CommandNotFoundError is returned when a bare token is neither a flag, a
// known subcommand, nor absorbable as a positional argument.
type CommandNotFoundError struct {
	Command string
}

func (e *CommandNotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Command)
}

func (e *CommandNotFoundError) Unwrap() error { return ErrCommandNotFound }

// RequiredFlagError is returned when a required flag has no value after
// parsing and no default.
type RequiredFlagError struct {
	Flag string
}

func (e *RequiredFlagError) Error() string {
	return fmt.Sprintf("required flag not provided: --%s", e.Flag)
}

func (e *RequiredFlagError) Unwrap() error { return ErrRequiredFlag }

// UnknownFlagError is returned when --name or -c does not resolve to a flag
// declared on the current command. For short flags Flag holds the character.
type UnknownFlagError struct {
	Flag string
}

func (e *UnknownFlagError) Error() string {
	if len([]rune(e.Flag)) == 1 {
		return fmt.Sprintf("unknown flag: -%s", e.Flag)
	}
	return fmt.Sprintf("unknown flag: --%s", e.Flag)
}

func (e *UnknownFlagError) Unwrap() error { return ErrUnknownFlag }

// InvalidFlagValueError is returned when a value fails type coercion, is not
// in the flag's possible values, or several values are given to a scalar flag.
type InvalidFlagValueError struct {
	Flag     string
	Value    string
	Expected string
}

func (e *InvalidFlagValueError) Error() string {
	return fmt.Sprintf("invalid value for flag --%s: %s (expected %s)", e.Flag, e.Value, e.Expected)
}

func (e *InvalidFlagValueError) Unwrap() error { return ErrInvalidFlagValue }

// FlagValueMissingError is returned when a non-boolean flag is the last token.
type FlagValueMissingError struct {
	Flag string
}

func (e *FlagValueMissingError) Error() string {
	return fmt.Sprintf("flag --%s requires a value", e.Flag)
}

func (e *FlagValueMissingError) Unwrap() error { return ErrFlagValueMissing }

// TooManyArgumentsError is returned when more positional tokens are given
// than the command declares.
type TooManyArgumentsError struct {
	Max      int
	Received int
}

func (e *TooManyArgumentsError) Error() string {
	return fmt.Sprintf("too many positional arguments: at most %d, got %d", e.Max, e.Received)
}

func (e *TooManyArgumentsError) Unwrap() error { return ErrTooManyArguments }

// NotEnoughArgumentsError is returned when fewer positional tokens are given
// than the command's required slots.
type NotEnoughArgumentsError struct {
	Expected int
	Received int
}

func (e *NotEnoughArgumentsError) Error() string {
	return fmt.Sprintf("not enough positional arguments: expected %d, got %d", e.Expected, e.Received)
}

func (e *NotEnoughArgumentsError) Unwrap() error { return ErrNotEnoughArguments }

// InternalError reports a broken parser invariant, such as merging list
// values of different element types. It is unreachable for trees that pass
// Validate.
type InternalError struct {
	Message string
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal parse error: %s", e.Message)
}

func (e *InternalError) Unwrap() error { return ErrInternal }

// ConfigurationError is returned by Validate for a malformed command tree.
type ConfigurationError struct {
	Command string
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Command != "" {
		return fmt.Sprintf("invalid configuration for command %q: %s", e.Command, e.Message)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Message)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// Kind returns a short stable name for the failure kind of err, or "" if err
// is not one of this package's errors.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCommandNotFound):
		return "CommandNotFound"
	case errors.Is(err, ErrRequiredFlag):
		return "RequiredFlagNotProvided"
	case errors.Is(err, ErrUnknownFlag):
		return "UnknownFlag"
	case errors.Is(err, ErrInvalidFlagValue):
		return "InvalidFlagValue"
	case errors.Is(err, ErrFlagValueMissing):
		return "FlagValueMissing"
	case errors.Is(err, ErrTooManyArguments):
		return "TooManyArguments"
	case errors.Is(err, ErrNotEnoughArguments):
		return "NotEnoughArguments"
	case errors.Is(err, ErrInternal):
		return "ParseError"
	case errors.Is(err, ErrConfiguration):
		return "ConfigurationError"
	}
	return ""
}

// WantsHelpHint reports whether err is the kind of mistake where pointing the
// user at --help is useful (a mistyped command or flag).
func WantsHelpHint(err error) bool {
	return errors.Is(err, ErrCommandNotFound) || errors.Is(err, ErrUnknownFlag)
}
