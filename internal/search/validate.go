package search

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// MaxTitleLength is the exclusive upper bound on title length, counted in
// Unicode code points.
const MaxTitleLength = 500

var titleRules = []validation.Rule{
	validation.Required.Error(MsgTitleRequired),
	validation.RuneLength(0, MaxTitleLength-1).Error(MsgTitleTooLong),
}

// ValidateTitle returns the title carried by req, or an invalid request error
// when it is absent, empty or too long.
func ValidateTitle(req Request) (string, error) {
	if err := validation.Validate(req.Title, titleRules...); err != nil {
		return "", invalidRequestError(err.Error(), nil)
	}
	return *req.Title, nil
}
