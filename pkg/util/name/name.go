/*
Copyright 2026 Numtide.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package name converts unit names into names Kubernetes accepts for
// Services and Deployments.
//
// Unit names are derived from user supplied Pod names ("My_Encoder-0"), so they
// may contain upper case letters, underscores, dots or slashes. ToServiceName
// maps those onto the DNS-1035 label alphabet. Characters that have no sensible
// mapping are rejected with a NamingError rather than silently replaced, since
// two different Pods must never end up with the same Service name.
//
// Names longer than the Service limit are truncated and suffixed with a hash of
// the raw input, so truncation keeps names unique and deterministic.
package name

import (
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"k8s.io/apimachinery/pkg/util/validation"
)

const (
	// hashBytes is the number of bytes included in the result of Hash().
	// This must never be changed since it would break backwards compatibility.
	hashBytes = 4

	// hashLength is the number of characters in the hex-encoded string returned from Hash().
	hashLength = 2 * hashBytes

	// truncationMark is a special separator used when appending the hash to a
	// truncated name to indicate that truncation occurred.
	truncationMark = "---"

	// ServiceMaxLength is the maximum length of a Service name.
	ServiceMaxLength = validation.DNS1035LabelMaxLength
)

// ErrInvalidName is matched by every NamingError.
var ErrInvalidName = errors.New("invalid unit name")

// NamingError reports a raw unit name that cannot be turned into a Service name.
type NamingError struct {
	// Name is the offending raw name.
	Name string
	// Reason explains why normalization failed.
	Reason string
}

func (e *NamingError) Error() string {
	return fmt.Sprintf("cannot derive service name from %q: %s", e.Name, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidName) true for any NamingError.
func (e *NamingError) Is(target error) bool {
	return target == ErrInvalidName
}

// Hash computes a hash suffix for the given name parts.
func Hash(parts []string) string {
	h := md5.New()
	for _, part := range parts {
		h.Write([]byte(part))
		// The separator must not be '-' so that moving a substring across
		// parts changes the hash.
		h.Write([]byte{0})
	}
	sum := h.Sum(nil)
	return hex.EncodeToString(sum[:hashBytes])
}

// ToServiceName converts a raw unit name into a valid Service name.
//
// Upper case letters are lowered; '_', '/', '.' and ' ' become '-'. A name
// that starts with a digit is prefixed with "x". Any other character outside
// [a-z0-9-] is an error, as are empty names and names ending in '-'.
func ToServiceName(raw string) (string, error) {
	if raw == "" {
		return "", &NamingError{Name: raw, Reason: "name is empty"}
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case isLowercaseAlphanumeric(r), r == '-':
			b.WriteRune(r)
		case isUppercaseLetter(r):
			b.WriteRune(r - 'A' + 'a')
		case r == '_', r == '/', r == '.', r == ' ':
			b.WriteRune('-')
		default:
			return "", &NamingError{Name: raw, Reason: fmt.Sprintf("character %q cannot be mapped", r)}
		}
	}
	out := b.String()

	if !isLowercaseLetter(rune(out[0])) {
		if !isDigit(rune(out[0])) {
			return "", &NamingError{Name: raw, Reason: "name must start with a letter or digit"}
		}
		out = "x" + out
	}
	if strings.HasSuffix(out, "-") {
		return "", &NamingError{Name: raw, Reason: "name must end with a letter or digit"}
	}

	if len(out) > ServiceMaxLength {
		out = truncate(out, Hash([]string{raw}), ServiceMaxLength)
	}

	if errs := validation.IsDNS1035Label(out); len(errs) > 0 {
		return "", &NamingError{Name: raw, Reason: strings.Join(errs, "; ")}
	}
	return out, nil
}

// truncate cuts s so that s, the truncation mark and the hash fit in maxLength.
func truncate(s, hash string, maxLength int) string {
	keep := maxLength - len(truncationMark) - hashLength
	s = strings.TrimRight(s[:keep], "-")
	return s + truncationMark + hash
}

func isLowercaseLetter(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isUppercaseLetter(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isLowercaseAlphanumeric(r rune) bool {
	return isLowercaseLetter(r) || isDigit(r)
}
