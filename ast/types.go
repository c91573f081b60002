package ast

import (
	"fmt"
	"strconv"
	"strings"
)

// Type names are plain strings drawn from the closed vocabulary in
// spec §3: the primitives, "struct NAME"/"class NAME", and the
// recursive array form "array<ELEM,N>". These helpers compose and
// decompose that vocabulary; the semantic analyzer owns the
// assignability/promotion rules built on top of it (sema package).

const (
	Int   = "int"
	Float = "float"
	Bool  = "bool"
	Text  = "text"
	Void  = "void"
)

// IsPrimitive reports whether t names one of the five primitive types.
func IsPrimitive(t string) bool {
	switch t {
	case Int, Float, Bool, Text, Void:
		return true
	}
	return false
}

// CompositeName returns (name, true) if t is "struct NAME" or "class NAME".
func CompositeName(t string) (name string, ok bool) {
	for _, prefix := range []string{"struct ", "class "} {
		if strings.HasPrefix(t, prefix) {
			return strings.TrimPrefix(t, prefix), true
		}
	}
	return "", false
}

// ArrayType builds the "array<ELEM,N>" spelling for an element type
// and a positive size.
func ArrayType(elem string, n int) string {
	return fmt.Sprintf("array<%s,%d>", elem, n)
}

// ArrayElemAndSize decomposes "array<ELEM,N>" back into its element
// type and size; ok is false if t is not an array type.
func ArrayElemAndSize(t string) (elem string, n int, ok bool) {
	if !strings.HasPrefix(t, "array<") || !strings.HasSuffix(t, ">") {
		return "", 0, false
	}
	inner := t[len("array<") : len(t)-1]
	idx := strings.LastIndex(inner, ",")
	if idx < 0 {
		return "", 0, false
	}
	elem = inner[:idx]
	size, err := strconv.Atoi(inner[idx+1:])
	if err != nil {
		return "", 0, false
	}
	return elem, size, true
}

// IsArray reports whether t is an array type.
func IsArray(t string) bool {
	_, _, ok := ArrayElemAndSize(t)
	return ok
}
