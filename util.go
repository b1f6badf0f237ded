package adbhost

import (
	"regexp"
)

var (
	whitespaceRegex = regexp.MustCompile(`^\s*$`)
)

func isBlank(str string) bool {
	return whitespaceRegex.MatchString(str)
}
