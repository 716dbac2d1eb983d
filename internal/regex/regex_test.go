package regex

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func dummy(s string) (Matcher, Disposer, error) { return nil, nil, nil }

func getDefault() string {
	for _, n := range Engines() {
		if n == "go" {
			return "go"
		}
	}

	return "native"
}

func TestRegistration(t *testing.T) {
	require := require.New(t)

	engines := Engines()
	require.NotNil(engines)
	number := len(engines)

	defaultEngine := getDefault()
	require.Equal(defaultEngine, Default())

	err := Register("", dummy)
	require.Equal(true, ErrRegexNameEmpty.Is(err))
	engines = Engines()
	require.Len(engines, number)

	err = Register("go", dummy)
	require.Equal(true, ErrRegexAlreadyRegistered.Is(err))

	err = Register("nil", dummy)
	require.NoError(err)
	require.Len(Engines(), number+1)

	matcher, _, err := New("nil", "")
	require.NoError(err)
	require.Nil(matcher)
}

func TestDefault(t *testing.T) {
	require := require.New(t)

	def := getDefault()
	require.Equal(def, Default())

	SetDefault("default")
	require.Equal("default", Default())

	SetDefault("")
	require.Equal(def, Default())
}

func TestNewDisposableMatcher(t *testing.T) {
	m, err := NewDisposableMatcher("go", "^A_.*$")
	require.NoError(t, err)
	defer m.Dispose()

	require.True(t, m.Match("A_foo"))
	require.False(t, m.Match("Bfoo"))
}

func TestMatcher(t *testing.T) {
	for _, name := range Engines() {
		if name == "nil" {
			continue
		}

		t.Run(name, func(t *testing.T) {
			m, d, err := New(name, "a{3}")
			require.NoError(t, err)
			defer d.Dispose()

			require.Equal(t, true, m.Match("ooaaaoo"))
			require.Equal(t, false, m.Match("ooaaoo"))
		})
	}
}
