package config

import (
	"fmt"
	"strconv"

	kerrors "multibody-kinematics/pkg/errors"
)

// ErrMissingOption reports a required option that is absent.
func ErrMissingOption(section, option string) *kerrors.KinError {
	return kerrors.ConfigOptionError(section, option)
}

// ErrMissingSection reports a required section that is absent.
func ErrMissingSection(section string) *kerrors.KinError {
	return kerrors.ConfigSectionError(section)
}

// ErrInvalidValue reports a value that does not parse as expected.
func ErrInvalidValue(section, option, value, expected string, cause error) *kerrors.KinError {
	return kerrors.ConfigTypeError(section, option, value, expected, cause)
}

// ErrOutOfRange reports a value outside its bounds.
func ErrOutOfRange(section, option string, value float64, constraint string) *kerrors.KinError {
	return kerrors.ConfigValidationError(section, option,
		fmt.Sprintf("value %s %s", strconv.FormatFloat(value, 'g', -1, 64), constraint))
}

// ErrInvalidChoice reports a value outside a fixed set.
func ErrInvalidChoice(section, option, value string, choices []string) *kerrors.KinError {
	return kerrors.ConfigValidationError(section, option,
		fmt.Sprintf("'%s' is not a valid choice (valid: %v)", value, choices))
}
