// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	ErrInvalidSlot    = errors.New("invalid stream slot")
	ErrNoDecoder      = errors.New("no free decoder")
	ErrNoMedium       = errors.New("no storage medium for path")
	ErrInvalidOptions = errors.New("invalid engine options")
)
