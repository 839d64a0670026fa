// Package lib provide small helpers that are not tied to any particular
// ordered map implementation, like histograms for depth and height
// samples. Package shall not import anything other than golang's
// standard packages.
package lib
