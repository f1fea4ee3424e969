//go:build tools

package locomotion

import (
	_ "golang.org/x/tools/cmd/stringer"
)
