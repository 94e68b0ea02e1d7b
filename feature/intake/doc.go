// Package intake registers newly received units as Available stock.
//
// A batch carries a label, an import document reference, a model name and a
// newline-delimited list of origin serials. Each serial is inserted on its own; a serial
// already present is skipped and the batch continues. The result only counts insertions.
package intake
