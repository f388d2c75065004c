// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrUnsupportedRate = errors.New("unsupported source sample rate")
	ErrUnknownPolicy   = errors.New("unknown rate policy")
)
