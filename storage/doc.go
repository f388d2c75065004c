// SPDX-License-Identifier: EPL-2.0

// Package storage gives the engine locked access to its two media, the
// internal flash and the removable card, through afero filesystems.
package storage
