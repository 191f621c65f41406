// Package domain contains the core model types, the sentiment
// classification rule, and the repository contracts. It has no
// dependencies on transport or storage packages.
package domain
