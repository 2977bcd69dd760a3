// Package sample converts host sample representations into the float64
// wave domain consumed by the meters in this module.
//
// Integer formats are scaled so that full scale maps to approximately
// [-1, 1]. Unsigned 8-bit audio is offset binary and is re-centred around
// zero before scaling. Float formats are passed through unchanged.
package sample
