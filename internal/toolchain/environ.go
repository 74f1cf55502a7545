// SPDX-License-Identifier: MPL-2.0

package toolchain

import "strings"

// Environ is a process environment in os.Environ form. Order is preserved
// so the environment can be handed to the compiler untouched.
type Environ []string

// Lookup returns the value of key. As with the C library, the first
// occurrence of a duplicated key wins.
func (e Environ) Lookup(key string) (string, bool) {
	prefix := key + "="
	for _, kv := range e {
		if value, ok := strings.CutPrefix(kv, prefix); ok {
			return value, true
		}
	}
	return "", false
}

// Get returns the value of key, or "" when it is unset.
func (e Environ) Get(key string) string {
	v, _ := e.Lookup(key)
	return v
}
