package engine

import (
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	ugcPolicyOnce sync.Once
	ugcPolicy     *bluemonday.Policy

	strictPolicyOnce sync.Once
	strictPolicy     *bluemonday.Policy
)

// FuncMap returns the helpers installed into html/template based engines.
//
//	sanitize   keeps user-generated markup (links, emphasis, lists) and marks it safe
//	striptags  removes every tag, returning plain text
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"sanitize":  func(in any) template.HTML { return template.HTML(Sanitize(in)) },
		"striptags": StripTags,
	}
}

// Sanitize cleans untrusted markup with a user-generated-content policy.
func Sanitize(in any) string {
	raw := stringify(in)
	if raw == "" {
		return ""
	}
	return ugcSanitizer().Sanitize(raw)
}

// StripTags removes all markup from the input.
func StripTags(in any) string {
	raw := stringify(in)
	if raw == "" {
		return ""
	}
	return strings.TrimSpace(strictSanitizer().Sanitize(raw))
}

func ugcSanitizer() *bluemonday.Policy {
	ugcPolicyOnce.Do(func() {
		ugcPolicy = bluemonday.UGCPolicy()
	})
	return ugcPolicy
}

func strictSanitizer() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

func stringify(in any) string {
	switch v := in.(type) {
	case nil:
		return ""
	case string:
		return v
	case template.HTML:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}
