package common

import (
	"errors"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultPageSize  = 10
	MaxPageSize      = 100
	MaxMessageLength = 4000
	MaxSearchLength  = 100
	MaxAttachments   = 10
)

var regexMeta = regexp.MustCompile(`[-\[\]{}()*+?.,\\^$|#\s]`)

// EscapeRegex escapes user input for use inside a regular expression.
func EscapeRegex(s string) string {
	return regexMeta.ReplaceAllString(s, `\$0`)
}

// Page converts 1-based page/limit input into skip/limit, applying the default and the upper bound.
func Page(page, limit, defaultLimit int) (skip int64, size int64) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	// pages past the int64 range just land beyond the last row
	if int64(page-1) > math.MaxInt64/int64(limit) {
		return math.MaxInt64 / int64(limit) * int64(limit), int64(limit)
	}
	return int64(page-1) * int64(limit), int64(limit)
}

func ValidateMessageBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return errors.New("message cannot be empty")
	}
	if utf8.RuneCountInString(body) > MaxMessageLength {
		return errors.New("message is too long")
	}
	return nil
}

func NormalizeSearch(search string) string {
	search = strings.TrimSpace(search)
	if utf8.RuneCountInString(search) > MaxSearchLength {
		search = string([]rune(search)[:MaxSearchLength])
	}
	return search
}
