//go:build !amd64 && !arm64

package simd

func detect() Capability {
	return None
}
