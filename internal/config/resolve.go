package config

import "strings"

// resolveLast returns the value of the last non-nil layer, or def when every
// layer is unset. Layers are ordered from weakest to strongest.
func resolveLast[T any](def T, layers ...*T) T {
	result := def
	for _, v := range layers {
		if v != nil {
			result = *v
		}
	}
	return result
}

// ResolveString resolves a string setting verbatim; delimiters rely on this
// to keep their surrounding spaces.
func ResolveString(def string, layers ...*string) string {
	return resolveLast(def, layers...)
}

func ResolveInt(def int, layers ...*int) int {
	return resolveLast(def, layers...)
}

func ResolveBool(def bool, layers ...*bool) bool {
	return resolveLast(def, layers...)
}

// ResolveStrings resolves a list setting. A set but empty layer clears the
// list, so a stronger layer can drop paths or excludes from a weaker one.
// The result never aliases a layer's slice.
func ResolveStrings(def []string, layers ...*[]string) []string {
	result := cloneStrings(def)
	for _, v := range layers {
		if v == nil {
			continue
		}
		if len(*v) == 0 {
			result = []string{}
			continue
		}
		result = cloneStrings(*v)
	}
	return result
}

// ResolveAndTrim is ResolveString for names and modes, where padding is noise.
func ResolveAndTrim(def string, layers ...*string) string {
	return strings.TrimSpace(ResolveString(def, layers...))
}
