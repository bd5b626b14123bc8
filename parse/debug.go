package parse

import (
	"os"

	"github.com/dhamidi/pear/input"
	"github.com/tliron/commonlog"
)

// DebugEnv names the environment variable that turns on tracing. Set it to
// a parser name to trace only that parser.
const DebugEnv = "PARSE_DEBUG"

var (
	log       = commonlog.GetLogger("pear.parse")
	debugOnly string
)

// DebugFromEnv enables debug tracing of Switch and Try when DebugEnv is set
// and reports whether it did.
func DebugFromEnv() bool {
	v, ok := os.LookupEnv(DebugEnv)
	if !ok {
		return false
	}
	switch v {
	case "", "1", "all":
		debugOnly = ""
	default:
		debugOnly = v
	}
	log.SetMaxLevel(commonlog.Debug)
	return true
}

// traced reports whether the parser named by info passes the PARSE_DEBUG
// filter.
func traced(info input.ParserInfo) bool {
	return debugOnly == "" || debugOnly == info.Name
}

func tracef(info input.ParserInfo, format string, args ...any) {
	if !traced(info) || !log.AllowLevel(commonlog.Debug) {
		return
	}
	log.Debugf("%s: "+format, append([]any{info}, args...)...)
}
