package commands

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	require.ElementsMatch(t, []string{"start", "register", "unregister", "version"}, names)
	require.NotNil(t, root.PersistentFlags().Lookup("log-level"))
}

func TestVersionCmd(t *testing.T) {
	root := NewRootCmd()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "cblbot dev")
}
