package main

import (
	"os"

	"github.com/brandon-arrendondo/knots/internal/matrix"
	"github.com/brandon-arrendondo/knots/internal/scan"
)

func printMatrix(result scan.Result) {
	matrix.Render(os.Stdout, scan.Matrix(result.Functions))
}
