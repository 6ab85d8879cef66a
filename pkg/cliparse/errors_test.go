// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cliparse

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{&CommandNotFoundError{Command: "foo"}, "command not found: foo"},
		{&RequiredFlagError{Flag: "name"}, "required flag not provided: --name"},
		{&UnknownFlagError{Flag: "nope"}, "unknown flag: --nope"},
		{&UnknownFlagError{Flag: "x"}, "unknown flag: -x"},
		{&InvalidFlagValueError{Flag: "n", Value: "x", Expected: "integer"}, "invalid value for flag --n: x (expected integer)"},
		{&FlagValueMissingError{Flag: "name"}, "flag --name requires a value"},
		{&TooManyArgumentsError{Max: 1, Received: 2}, "too many positional arguments: at most 1, got 2"},
		{&NotEnoughArgumentsError{Expected: 2, Received: 1}, "not enough positional arguments: expected 2, got 1"},
		{&InternalError{Message: "boom"}, "internal parse error: boom"},
		{&ConfigurationError{Command: "app", Message: "bad"}, `invalid configuration for command "app": bad`},
		{&ConfigurationError{Message: "bad"}, "invalid configuration: bad"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
}

func TestKind(t *testing.T) {
	tests := []struct {
		err      error
		want     string
		wantHint bool
	}{
		{nil, "", false},
		{errors.New("other"), "", false},
		{&CommandNotFoundError{}, "CommandNotFound", true},
		{&RequiredFlagError{}, "RequiredFlagNotProvided", false},
		{&UnknownFlagError{}, "UnknownFlag", true},
		{&InvalidFlagValueError{}, "InvalidFlagValue", false},
		{&FlagValueMissingError{}, "FlagValueMissing", false},
		{&TooManyArgumentsError{}, "TooManyArguments", false},
		{&NotEnoughArgumentsError{}, "NotEnoughArguments", false},
		{&InternalError{}, "ParseError", false},
		{&ConfigurationError{}, "ConfigurationError", false},
		{fmt.Errorf("wrapped: %w", &UnknownFlagError{Flag: "x"}), "UnknownFlag", true},
	}
	for _, tt := range tests {
		if got := Kind(tt.err); got != tt.want {
			t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
		}
		if got := WantsHelpHint(tt.err); got != tt.wantHint {
			t.Errorf("WantsHelpHint(%v) = %v, want %v", tt.err, got, tt.wantHint)
		}
	}
}
