// buildinfoprint is imported for the side effect of printing the build info
// to os.Stderr
package buildinfoprint

import "github.com/carbocation/genes2terms/buildinfo"

func init() {
	buildinfo.PrintToStdErr()
}
