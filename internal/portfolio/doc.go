// Package portfolio holds the content of the portfolio page and the small
// behaviours around it: project filtering, navbar state, reveal on scroll,
// smooth-scroll targets, and the copy-to-clipboard toast.
//
// Nothing here draws. Hosts feed in scroll offsets, clock readings and key
// presses and render whatever state comes back.
package portfolio
