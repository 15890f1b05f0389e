// Package whitebg removes near-white backgrounds from images.
//
// Every pixel whose red, green and blue channels are all above a brightness
// threshold (240 by default) is replaced with fully transparent white. All
// other pixels, including their alpha, are left untouched. The package works
// entirely in memory; the directory pass lives in internal/batch.
package whitebg
