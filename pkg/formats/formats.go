// Package formats parses model files into GPU-ready vertex arrays.
package formats
