package noderesolve

import (
	"strings"
)

// resolveExports maps a package subpath ("." or "./x/y") through the package's
// "exports" field. It returns the target relative to the package directory
// ("./dist/weslBundle.js") or false when the subpath is not exported.
func resolveExports(exports any, subpath string, conditions map[string]bool) (string, bool) {
	if isConditionalSugar(exports) {
		if subpath != "." {
			return "", false
		}
		return resolveTarget(exports, "", conditions)
	}

	obj := exports.(*object)

	if target, ok := obj.get(subpath); ok && !strings.Contains(subpath, "*") {
		return resolveTarget(target, "", conditions)
	}

	key, match, ok := bestPatternMatch(obj, subpath)
	if !ok {
		return "", false
	}
	target, _ := obj.get(key)
	return resolveTarget(target, match, conditions)
}

// isConditionalSugar reports whether exports is the shorthand for {".": exports}:
// a string, an array, or an object whose keys do not start with ".".
func isConditionalSugar(exports any) bool {
	obj, ok := exports.(*object)
	if !ok {
		return true
	}
	for _, k := range obj.keys {
		if strings.HasPrefix(k, ".") {
			return false
		}
	}
	return len(obj.keys) > 0
}

// bestPatternMatch finds the "*" key that matches subpath, preferring the
// longest prefix before the star and then the longest key overall.
func bestPatternMatch(obj *object, subpath string) (key, match string, ok bool) {
	for _, k := range obj.keys {
		star := strings.Index(k, "*")
		if star < 0 || strings.Count(k, "*") != 1 {
			continue
		}
		prefix, suffix := k[:star], k[star+1:]
		if !strings.HasPrefix(subpath, prefix) || subpath == prefix {
			continue
		}
		// The star matches at least one character.
		if len(subpath) < len(k) || !strings.HasSuffix(subpath, suffix) {
			continue
		}
		if ok && !patternKeyLess(key, k) {
			continue
		}
		key = k
		match = subpath[len(prefix) : len(subpath)-len(suffix)]
		ok = true
	}
	return key, match, ok
}

// patternKeyLess reports whether b is a more specific pattern key than a.
func patternKeyLess(a, b string) bool {
	aBase := strings.Index(a, "*")
	bBase := strings.Index(b, "*")
	if aBase != bBase {
		return bBase > aBase
	}
	return len(b) > len(a)
}

// resolveTarget walks a target value: strings are paths, arrays are fallbacks
// and objects are condition maps matched in key order.
func resolveTarget(target any, match string, conditions map[string]bool) (string, bool) {
	switch t := target.(type) {
	case string:
		return validTarget(t, match)
	case []any:
		for _, alt := range t {
			if resolved, ok := resolveTarget(alt, match, conditions); ok {
				return resolved, true
			}
		}
		return "", false
	case *object:
		for _, cond := range t.keys {
			if cond != "default" && !conditions[cond] {
				continue
			}
			v, _ := t.get(cond)
			if resolved, ok := resolveTarget(v, match, conditions); ok {
				return resolved, true
			}
		}
		return "", false
	default:
		// null excludes the subpath
		return "", false
	}
}

// validTarget substitutes the pattern match and rejects targets that leave the
// package directory or point into node_modules.
func validTarget(target, match string) (string, bool) {
	if !strings.HasPrefix(target, "./") {
		return "", false
	}
	if match != "" {
		target = strings.ReplaceAll(target, "*", match)
	}
	for _, seg := range strings.Split(target[2:], "/") {
		if seg == ".." || seg == "." || seg == "node_modules" {
			return "", false
		}
	}
	return target, true
}
