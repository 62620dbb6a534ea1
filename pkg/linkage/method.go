package linkage

import (
	"strings"

	"github.com/matzehuels/treelink/pkg/errors"
)

// Method selects the linkage table shape.
type Method string

const (
	// MethodSerial addresses nodes by synthetic identifier.
	MethodSerial Method = "serial"
	// MethodResolved addresses nodes by name and explicit depth.
	MethodResolved Method = "resolved"
)

// Methods lists the supported methods in display order.
var Methods = []Method{MethodSerial, MethodResolved}

var methodAliases = map[string]Method{
	"serial":   MethodSerial,
	"option1":  MethodSerial,
	"resolved": MethodResolved,
	"string":   MethodResolved,
	"option2":  MethodResolved,
}

// ParseMethod resolves a method name, case-insensitively.
func ParseMethod(s string) (Method, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "")
	if m, ok := methodAliases[key]; ok {
		return m, nil
	}
	return "", errors.New(errors.ErrCodeInvalidMethod, "unknown linkage method %q (must be 'serial' or 'resolved')", s)
}

// Banner is the report line naming the method.
func (m Method) Banner() string {
	switch m {
	case MethodSerial:
		return "Method: conversion for serial to string."
	case MethodResolved:
		return "Method: check validity of node names."
	}
	return "Method: unknown."
}

// Describe is a short label for interactive pickers.
func (m Method) Describe() string {
	switch m {
	case MethodSerial:
		return "Serial numbers (from_id, to_id, weight)"
	case MethodResolved:
		return "Written strings (node_depth, from_node, to_node, weight)"
	}
	return string(m)
}

// Columns is the number of columns the method's table must have.
func (m Method) Columns() int {
	if m == MethodResolved {
		return 4
	}
	return 3
}
