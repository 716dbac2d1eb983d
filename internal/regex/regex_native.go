package regex

import "regexp"

// Native is a placeholder engine registered under the name "native",
// held open for a future matcher backed by something other than
// regexp.Regexp (e.g. a library with native support for MongoDB's own
// $regexMatch PCRE dialect, which RE2 only approximates). For now it
// compiles the same Go-syntax pattern Go does.
type Native struct {
	reg *regexp.Regexp
}

// Match implements Matcher interface.
func (r *Native) Match(s string) bool {
	return r.reg.MatchString(s)
}

// Dispose implements Disposer interface; regexp.Regexp owns no
// off-heap resources.
func (*Native) Dispose() {}

// NewNative creates a new Matcher using the native regex engine slot.
func NewNative(re string) (Matcher, Disposer, error) {
	reg, err := regexp.Compile(re)
	if err != nil {
		return nil, nil, err
	}

	r := Native{
		reg: reg,
	}

	return &r, &r, nil
}

func init() {
	err := Register("native", NewNative)
	if err != nil {
		panic(err.Error())
	}
}
