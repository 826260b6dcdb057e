package config

import (
	"errors"

	"csfix/internal/diag"
	"csfix/internal/finder"
	"csfix/internal/rule"
)

// CodeOf maps configuration errors to diagnostic codes.
func CodeOf(err error) diag.Code {
	switch {
	case err == nil:
		return diag.UnknownCode
	case errors.Is(err, rule.ErrDuplicateRule):
		return diag.CfgDuplicateRule
	case errors.Is(err, ErrEmptyLevel):
		return diag.CfgEmptyLevel
	case errors.Is(err, rule.ErrUnknownRule):
		return diag.CfgUnknownRule
	case errors.Is(err, finder.ErrBadRoot):
		return diag.CfgBadRoot
	case errors.Is(err, finder.ErrBadPattern):
		return diag.CfgBadPattern
	case errors.Is(err, ErrBadCustomRule):
		return diag.CfgBadCustomRule
	}
	return diag.CfgInfo
}
