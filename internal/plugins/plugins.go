// Package plugins lists the handler providers linked into the binary.
package plugins

import (
	"github.com/idelchi/fileinfo/internal/fileinfo"
	"github.com/idelchi/fileinfo/internal/plugins/csvinfo"
	"github.com/idelchi/fileinfo/internal/plugins/textinfo"
)

// All returns the providers in discovery order.
func All() []fileinfo.Provider {
	return []fileinfo.Provider{
		csvinfo.Provider{},
		textinfo.Provider{},
	}
}
