package config

import (
	"fmt"
	"strings"
)

const (
	FamilyBasic  = "basic"
	FamilyBert   = "bert"
	FamilyMarian = "marian"
)

func NormalizeFamily(raw string) (string, error) {
	family := strings.ToLower(strings.TrimSpace(raw))
	if family == "" {
		family = FamilyBert
	}
	switch family {
	case FamilyBasic, FamilyBert, FamilyMarian:
		return family, nil
	case "wordpiece":
		return FamilyBert, nil
	case "sentencepiece":
		return FamilyMarian, nil
	default:
		return "", fmt.Errorf(
			"invalid family %q (expected %s|%s|%s|wordpiece|sentencepiece)",
			raw,
			FamilyBasic,
			FamilyBert,
			FamilyMarian,
		)
	}
}
