// Package visual resolves each primary sentence to zero or more local image
// files.
//
// A Resolver walks a query plan in order. For every (query, category) entry it
// asks each configured provider concurrently, merges the ranked candidates,
// and downloads distinct source URLs through the artifact cache until it has
// the requested number of images. Explicit #tags on a line are tried before
// the NLP-derived plan. A sentence that exhausts its plan resolves to no
// image, which the slideshow renders as a solid background.
package visual
