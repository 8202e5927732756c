// Package intersection defines the parametric model of a road intersection.
// The model is a pure function of its Config: four connection flags decide
// which corners exist and how they face, which sides carry a footpath, and
// where the roadway core begins. It is rebuilt wholesale on every change and
// never mutated in place.
package intersection
