// Package pkg holds the stickypack libraries.
//
// # Overview
//
// Stickypack lays out grids of sticky-note stacks ("packs") next to a
// reference item on a whiteboard and creates them through a board host.
//
// # Packages
//
//   - [github.com/matzehuels/stickypack/pkg/pack]: configuration, layout engine,
//     reference resolution, content and tag generation, orchestration
//   - [github.com/matzehuels/stickypack/pkg/board/memory]: in-memory host
//   - [github.com/matzehuels/stickypack/pkg/board/miro]: Miro REST API host
//   - [github.com/matzehuels/stickypack/pkg/settings]: saved configuration (file, Redis, MongoDB)
//   - [github.com/matzehuels/stickypack/pkg/analytics]: event trackers and sinks
//   - [github.com/matzehuels/stickypack/pkg/preview]: SVG and Graphviz previews
//   - [github.com/matzehuels/stickypack/pkg/server]: HTTP API
//
// Supporting packages: errors, httputil, observability, buildinfo.
package pkg
