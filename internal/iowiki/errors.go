package iowiki

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gntree/pkg/errcode"
)

func RequestError(title string, err error) error {
	msg := "Cannot reach Wikispecies for <em>%s</em>"
	vars := []any{title}
	return &gn.Error{
		Code: errcode.WikiRequestError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("wikispecies request for %q: %w", title, err),
	}
}

func ResponseError(title string, err error) error {
	msg := "Cannot read Wikispecies answer for <em>%s</em>"
	vars := []any{title}
	return &gn.Error{
		Code: errcode.WikiResponseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("wikispecies response for %q: %w", title, err),
	}
}
