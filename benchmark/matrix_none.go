//go:build nomatrix

package benchmark

// DetectMatrix reports the linear-algebra backend compiled into the binary.
func DetectMatrix() MatrixCapability {
	return Unavailable("built with the nomatrix tag")
}
