// SPDX-License-Identifier: MPL-2.0

package platform

import (
	"path/filepath"
	"runtime"
	"sync"
)

const (
	// LibcGNU is the GNU C library (glibc).
	LibcGNU Libc = "gnu"
	// LibcMusl is the musl C library.
	LibcMusl Libc = "musl"
	// LibcNone means the triplet carries no libc component (darwin, BSDs).
	LibcNone Libc = ""
)

// muslLoaderGlob matches the musl dynamic loader, which is only present on
// musl-based systems such as Alpine.
const muslLoaderGlob = "/lib/ld-musl-*.so.1"

// hostLibcOnce caches the libc detection for the lifetime of the process.
// The libc of a running system does not change under us.
var hostLibcOnce = sync.OnceValue(func() Libc {
	return detectLibcFrom(runtime.GOOS, filepath.Glob)
})

// Libc identifies the C library flavour encoded in a GNU triplet.
type Libc string

// gnuArch maps GOARCH values to the architecture field of a GNU triplet.
var gnuArch = map[string]string{
	"amd64":    "x86_64",
	"386":      "i686",
	"arm64":    "aarch64",
	"arm":      "arm",
	"ppc64le":  "powerpc64le",
	"ppc64":    "powerpc64",
	"riscv64":  "riscv64",
	"s390x":    "s390x",
	"loong64":  "loongarch64",
	"mips64le": "mips64el",
	"mipsle":   "mipsel",
}

// HostTriplet returns the GNU target triplet of the running system.
func HostTriplet() string {
	return TripletFor(runtime.GOOS, runtime.GOARCH, hostLibcOnce())
}

// TripletFor builds a GNU triplet from Go platform names. It is a pure
// function so that every combination is testable on any host.
//
// Linux triplets follow the Debian multiarch spelling (x86_64-linux-gnu,
// arm-linux-gnueabihf, x86_64-linux-musl). Other systems use the vendor
// field conventional there (aarch64-apple-darwin, x86_64-unknown-freebsd).
func TripletFor(goos, goarch string, libc Libc) string {
	arch, ok := gnuArch[goarch]
	if !ok {
		arch = goarch
	}

	switch goos {
	case Linux:
		if libc == LibcNone {
			libc = LibcGNU
		}
		abi := string(libc)
		switch goarch {
		case "arm":
			abi += "eabihf"
		case "mips64le":
			abi += "abi64"
		}
		return arch + "-linux-" + abi
	case Darwin:
		if goarch == "arm64" {
			// Apple spells it arm64 in its own triplets; clang accepts both.
			arch = "arm64"
		}
		return arch + "-apple-darwin"
	case Windows:
		return arch + "-w64-mingw32"
	default:
		return arch + "-unknown-" + goos
	}
}

// detectLibcFrom reports which libc the system uses. Accepting the glob
// function keeps tests independent of the host filesystem.
func detectLibcFrom(goos string, glob func(string) ([]string, error)) Libc {
	if goos != Linux {
		return LibcNone
	}
	if matches, err := glob(muslLoaderGlob); err == nil && len(matches) > 0 {
		return LibcMusl
	}
	return LibcGNU
}
